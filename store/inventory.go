package store

import (
	"database/sql"
	"errors"
	"fmt"
)

// Inventory is a per-product stock count: direct stock for unmapped products
// and bottle counts for container SKUs.
type Inventory struct {
	ID          int64   `json:"id"`
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name,omitempty"`
	Quantity    float64 `json:"quantity"`
	LastUpdated string  `json:"last_updated"`
}

func (db *DB) ListInventory() ([]Inventory, error) {
	rows, err := db.Query(`SELECT i.id, i.product_id, p.name, i.quantity, i.last_updated
		FROM inventory i JOIN products p ON p.id = i.product_id ORDER BY p.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Inventory
	for rows.Next() {
		var inv Inventory
		if err := rows.Scan(&inv.ID, &inv.ProductID, &inv.ProductName, &inv.Quantity, &inv.LastUpdated); err != nil {
			return nil, err
		}
		items = append(items, inv)
	}
	return items, rows.Err()
}

func (db *DB) GetInventory(productID int64) (*Inventory, error) {
	inv := &Inventory{}
	err := db.QueryRow(db.Q(`SELECT id, product_id, quantity, last_updated FROM inventory WHERE product_id = ?`), productID).
		Scan(&inv.ID, &inv.ProductID, &inv.Quantity, &inv.LastUpdated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// SetInventory creates or replaces the stock count for a product.
func (db *DB) SetInventory(productID int64, quantity float64) (*Inventory, error) {
	now := NowUTC()
	existing, err := db.GetInventory(productID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		var id int64
		err := db.QueryRow(db.Q(`INSERT INTO inventory (product_id, quantity, last_updated) VALUES (?, ?, ?) RETURNING id`),
			productID, quantity, now).Scan(&id)
		if err != nil {
			return nil, fmt.Errorf("create inventory: %w", err)
		}
		return &Inventory{ID: id, ProductID: productID, Quantity: quantity, LastUpdated: now}, nil
	}
	_, err = db.Exec(db.Q(`UPDATE inventory SET quantity = ?, last_updated = ? WHERE product_id = ?`),
		quantity, now, productID)
	if err != nil {
		return nil, fmt.Errorf("update inventory: %w", err)
	}
	existing.Quantity = quantity
	existing.LastUpdated = now
	return existing, nil
}

func (db *DB) DeleteInventory(productID int64) (bool, error) {
	res, err := db.Exec(db.Q(`DELETE FROM inventory WHERE product_id = ?`), productID)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
