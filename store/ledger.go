package store

import (
	"database/sql"
	"errors"
	"fmt"
)

// Pool kinds for stock adjustments and movement rows.
const (
	PoolSource    = "source"
	PoolInventory = "inventory"
)

// ErrInsufficientStock is returned when an adjustment would drive a source
// or inventory quantity below zero. The row is left unchanged.
var ErrInsufficientStock = errors.New("insufficient stock")

// AdjustSource applies delta to a source quantity inside tx and returns the
// new quantity. A missing row is treated as zero stock: a positive delta
// bootstraps the row, a negative one fails. The caller is responsible for
// recording the matching movement in the same transaction.
func (db *DB) AdjustSource(tx *sql.Tx, sourceID int64, delta float64, now string) (float64, error) {
	var current float64
	err := tx.QueryRow(db.Q(`SELECT quantity FROM sources WHERE id = ?`)+db.forUpdate(), sourceID).
		Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		if delta < 0 {
			return 0, ErrInsufficientStock
		}
		_, err := tx.Exec(db.Q(`INSERT INTO sources (id, name, unit, quantity, last_updated) VALUES (?, ?, ?, ?, ?)`),
			sourceID, "source", "L", delta, now)
		if err != nil {
			return 0, fmt.Errorf("bootstrap source %d: %w", sourceID, err)
		}
		return delta, nil
	}
	if err != nil {
		return 0, err
	}
	next := current + delta
	if next < 0 {
		return 0, ErrInsufficientStock
	}
	_, err = tx.Exec(db.Q(`UPDATE sources SET quantity = ?, last_updated = ? WHERE id = ?`),
		next, now, sourceID)
	if err != nil {
		return 0, fmt.Errorf("adjust source %d: %w", sourceID, err)
	}
	return next, nil
}

// AdjustInventory applies delta to a product's inventory quantity inside tx,
// with the same missing-row and negative-result semantics as AdjustSource.
func (db *DB) AdjustInventory(tx *sql.Tx, productID int64, delta float64, now string) (float64, error) {
	var current float64
	err := tx.QueryRow(db.Q(`SELECT quantity FROM inventory WHERE product_id = ?`)+db.forUpdate(), productID).
		Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		if delta < 0 {
			return 0, ErrInsufficientStock
		}
		_, err := tx.Exec(db.Q(`INSERT INTO inventory (product_id, quantity, last_updated) VALUES (?, ?, ?)`),
			productID, delta, now)
		if err != nil {
			return 0, fmt.Errorf("bootstrap inventory %d: %w", productID, err)
		}
		return delta, nil
	}
	if err != nil {
		return 0, err
	}
	next := current + delta
	if next < 0 {
		return 0, ErrInsufficientStock
	}
	_, err = tx.Exec(db.Q(`UPDATE inventory SET quantity = ?, last_updated = ? WHERE product_id = ?`),
		next, now, productID)
	if err != nil {
		return 0, fmt.Errorf("adjust inventory %d: %w", productID, err)
	}
	return next, nil
}
