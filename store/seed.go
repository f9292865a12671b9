package store

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Baseline catalog for a fresh installation, expressed as data rather than
// branching. EnsureBaseline only fills gaps; it never overwrites rows an
// operator has already changed.

type seedProduct struct {
	name  string
	price float64
	// initial inventory count; < 0 means no inventory row (source-backed)
	initialStock float64
}

type seedMapping struct {
	productName string
	factor      float64
}

type seedUser struct {
	username string
	password string
	role     string
}

const (
	seedTankName     = "Main Tank"
	seedTankUnit     = "L"
	seedTankQuantity = 10000
)

var seedProducts = []seedProduct{
	{"5L water", 40, -1},
	{"10L water", 70, -1},
	{"20L water", 120, -1},
	{"Empty 5L bottle", 0, 120},
	{"Empty 10L bottle", 0, 80},
	{"Empty 20L bottle", 0, 40},
}

var seedMappings = []seedMapping{
	{"5L water", 5},
	{"10L water", 10},
	{"20L water", 20},
}

var seedUsers = []seedUser{
	{"admin", "admin", RoleAdmin},
	{"user", "user", RoleUser},
}

// EnsureBaseline idempotently seeds the default catalog: the main tank, the
// water products mapped to it, bottle SKUs with starting counts, and the
// default accounts.
func (db *DB) EnsureBaseline() error {
	tank, err := db.findSourceByName(seedTankName)
	if err != nil {
		return err
	}
	if tank == nil {
		tank, err = db.CreateSource(seedTankName, seedTankUnit, seedTankQuantity)
		if err != nil {
			return err
		}
	}

	for _, sp := range seedProducts {
		p, err := db.GetProductByName(sp.name)
		if err != nil {
			return err
		}
		if p == nil {
			p, err = db.CreateProduct(sp.name, sp.price)
			if err != nil {
				return err
			}
		}
		if sp.initialStock >= 0 {
			inv, err := db.GetInventory(p.ID)
			if err != nil {
				return err
			}
			if inv == nil {
				if _, err := db.SetInventory(p.ID, sp.initialStock); err != nil {
					return err
				}
			}
		}
	}

	for _, sm := range seedMappings {
		p, err := db.GetProductByName(sm.productName)
		if err != nil {
			return err
		}
		if p == nil {
			continue
		}
		existing, err := db.GetProductSource(p.ID)
		if err != nil {
			return err
		}
		if existing == nil {
			if _, err := db.SetProductSource(p.ID, tank.ID, sm.factor); err != nil {
				return err
			}
		}
	}

	for _, su := range seedUsers {
		u, err := db.GetUserByUsername(su.username)
		if err != nil {
			return err
		}
		if u != nil {
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(su.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash seed password: %w", err)
		}
		if _, err := db.CreateUser(su.username, string(hash), su.role); err != nil {
			return err
		}
	}
	return nil
}

func (db *DB) findSourceByName(name string) (*Source, error) {
	sources, err := db.ListSources()
	if err != nil {
		return nil, err
	}
	for i := range sources {
		if sources[i].Name == name {
			return &sources[i], nil
		}
	}
	return nil, nil
}
