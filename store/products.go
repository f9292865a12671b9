package store

import (
	"database/sql"
	"errors"
	"fmt"
)

// Product is a sellable catalog entry. Container SKUs ("Empty 5L bottle")
// are ordinary products whose stock lives in the inventory table.
type Product struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
}

func (db *DB) ListProducts() ([]Product, error) {
	rows, err := db.Query(`SELECT id, name, unit_price FROM products ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var products []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.UnitPrice); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (db *DB) GetProduct(id int64) (*Product, error) {
	p := &Product{}
	err := db.QueryRow(db.Q(`SELECT id, name, unit_price FROM products WHERE id = ?`), id).
		Scan(&p.ID, &p.Name, &p.UnitPrice)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// GetProductTx reads a product inside an open transaction.
func (db *DB) GetProductTx(tx *sql.Tx, id int64) (*Product, error) {
	p := &Product{}
	err := tx.QueryRow(db.Q(`SELECT id, name, unit_price FROM products WHERE id = ?`), id).
		Scan(&p.ID, &p.Name, &p.UnitPrice)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (db *DB) GetProductByName(name string) (*Product, error) {
	p := &Product{}
	err := db.QueryRow(db.Q(`SELECT id, name, unit_price FROM products WHERE name = ?`), name).
		Scan(&p.ID, &p.Name, &p.UnitPrice)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (db *DB) CreateProduct(name string, unitPrice float64) (*Product, error) {
	var id int64
	err := db.QueryRow(db.Q(`INSERT INTO products (name, unit_price) VALUES (?, ?) RETURNING id`),
		name, unitPrice).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return &Product{ID: id, Name: name, UnitPrice: unitPrice}, nil
}

func (db *DB) UpdateProduct(id int64, name string, unitPrice float64) (*Product, error) {
	res, err := db.Exec(db.Q(`UPDATE products SET name = ?, unit_price = ? WHERE id = ?`),
		name, unitPrice, id)
	if err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, nil
	}
	return &Product{ID: id, Name: name, UnitPrice: unitPrice}, nil
}

func (db *DB) DeleteProduct(id int64) (bool, error) {
	res, err := db.Exec(db.Q(`DELETE FROM products WHERE id = ?`), id)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// FindContainerProductTx resolves the container SKU for an order inside an
// open transaction. A source-mapped product looks for its size-matched
// bottle by exact name ("Empty 5L bottle" for factor 5); otherwise, or when
// no exact match exists, the first product whose name contains "Empty"
// (lowest id) is used. Returns nil when the catalog has no container SKU.
func (db *DB) FindContainerProductTx(tx *sql.Tx, factor float64) (*Product, error) {
	p := &Product{}
	if factor > 0 {
		name := fmt.Sprintf("Empty %dL bottle", int64(factor))
		err := tx.QueryRow(db.Q(`SELECT id, name, unit_price FROM products WHERE name = ?`), name).
			Scan(&p.ID, &p.Name, &p.UnitPrice)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
	}
	err := tx.QueryRow(db.Q(`SELECT id, name, unit_price FROM products WHERE name LIKE ? ORDER BY id LIMIT 1`), "%Empty%").
		Scan(&p.ID, &p.Name, &p.UnitPrice)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}
