package store

import "fmt"

// PriceChange records one product price change. Appends are best-effort side
// logging: callers log failures but never fail the primary operation on them.
type PriceChange struct {
	ID        int64    `json:"id"`
	ProductID int64    `json:"product_id"`
	OldPrice  *float64 `json:"old_price"`
	NewPrice  float64  `json:"new_price"`
	ChangedBy *int64   `json:"changed_by"`
	Reason    string   `json:"reason"`
	Timestamp string   `json:"timestamp"`
}

func (db *DB) AppendPriceChange(productID int64, oldPrice *float64, newPrice float64, changedBy *int64, reason string) error {
	_, err := db.Exec(db.Q(`INSERT INTO price_history (product_id, old_price, new_price, changed_by, reason, timestamp)
		VALUES (?, ?, ?, ?, ?, ?)`),
		productID, oldPrice, newPrice, changedBy, reason, NowUTC())
	if err != nil {
		return fmt.Errorf("append price change: %w", err)
	}
	return nil
}

func (db *DB) ListPriceHistory(productID int64) ([]PriceChange, error) {
	rows, err := db.Query(db.Q(`SELECT id, product_id, old_price, new_price, changed_by, reason, timestamp
		FROM price_history WHERE product_id = ? ORDER BY id DESC`), productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var changes []PriceChange
	for rows.Next() {
		var c PriceChange
		if err := rows.Scan(&c.ID, &c.ProductID, &c.OldPrice, &c.NewPrice, &c.ChangedBy, &c.Reason, &c.Timestamp); err != nil {
			return nil, err
		}
		changes = append(changes, c)
	}
	return changes, rows.Err()
}
