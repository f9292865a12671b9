package store

import (
	"database/sql"
	"errors"
	"fmt"
)

// ProductSource maps a product to the source it draws from, with the number
// of source units consumed per product unit sold. At most one mapping exists
// per product.
type ProductSource struct {
	ProductID   int64   `json:"product_id"`
	SourceID    int64   `json:"source_id"`
	Factor      float64 `json:"factor"`
	ProductName string  `json:"product_name,omitempty"`
	SourceName  string  `json:"source_name,omitempty"`
}

// GetProductSource resolves a product's mapping. Returns nil for unmapped
// products, which fall back to direct inventory tracking.
func (db *DB) GetProductSource(productID int64) (*ProductSource, error) {
	ps := &ProductSource{}
	err := db.QueryRow(db.Q(`SELECT product_id, source_id, factor FROM product_sources WHERE product_id = ?`), productID).
		Scan(&ps.ProductID, &ps.SourceID, &ps.Factor)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ps, nil
}

// GetProductSourceTx is GetProductSource inside an open transaction.
func (db *DB) GetProductSourceTx(tx *sql.Tx, productID int64) (*ProductSource, error) {
	ps := &ProductSource{}
	err := tx.QueryRow(db.Q(`SELECT product_id, source_id, factor FROM product_sources WHERE product_id = ?`), productID).
		Scan(&ps.ProductID, &ps.SourceID, &ps.Factor)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ps, nil
}

// SetProductSource upserts a product's mapping. Last write wins; no history
// is kept.
func (db *DB) SetProductSource(productID, sourceID int64, factor float64) (*ProductSource, error) {
	existing, err := db.GetProductSource(productID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		_, err = db.Exec(db.Q(`INSERT INTO product_sources (product_id, source_id, factor) VALUES (?, ?, ?)`),
			productID, sourceID, factor)
	} else {
		_, err = db.Exec(db.Q(`UPDATE product_sources SET source_id = ?, factor = ? WHERE product_id = ?`),
			sourceID, factor, productID)
	}
	if err != nil {
		return nil, fmt.Errorf("set product source: %w", err)
	}
	return &ProductSource{ProductID: productID, SourceID: sourceID, Factor: factor}, nil
}

func (db *DB) ListProductSources() ([]ProductSource, error) {
	rows, err := db.Query(`SELECT ps.product_id, ps.source_id, ps.factor, p.name, s.name
		FROM product_sources ps
		JOIN products p ON p.id = ps.product_id
		JOIN sources s ON s.id = ps.source_id
		ORDER BY p.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var mappings []ProductSource
	for rows.Next() {
		var ps ProductSource
		if err := rows.Scan(&ps.ProductID, &ps.SourceID, &ps.Factor, &ps.ProductName, &ps.SourceName); err != nil {
			return nil, err
		}
		mappings = append(mappings, ps)
	}
	return mappings, rows.Err()
}

func (db *DB) DeleteProductSource(productID int64) (bool, error) {
	res, err := db.Exec(db.Q(`DELETE FROM product_sources WHERE product_id = ?`), productID)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
