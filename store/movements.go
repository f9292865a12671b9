package store

import (
	"database/sql"
	"fmt"
)

// Movement is an immutable audit row for a single signed stock change.
type Movement struct {
	ID        int64   `json:"id"`
	Kind      string  `json:"kind"` // "source" or "inventory"
	RefID     int64   `json:"ref_id"`
	Delta     float64 `json:"delta"`
	Reason    string  `json:"reason"`
	Timestamp string  `json:"timestamp"`
	UserID    *int64  `json:"user_id"`
}

// InsertMovement appends a movement inside tx. Movements are never updated
// or deleted.
func (db *DB) InsertMovement(tx *sql.Tx, kind string, refID int64, delta float64, reason string, userID *int64, now string) error {
	if kind != PoolSource && kind != PoolInventory {
		return fmt.Errorf("invalid movement kind: %s", kind)
	}
	_, err := tx.Exec(db.Q(`INSERT INTO movements (kind, ref_id, delta, reason, timestamp, user_id) VALUES (?, ?, ?, ?, ?, ?)`),
		kind, refID, delta, reason, now, userID)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// ListMovements returns recent movements newest first, optionally filtered
// by kind and/or ref id.
func (db *DB) ListMovements(limit int, kind string, refID *int64) ([]Movement, error) {
	if limit <= 0 {
		limit = 100
	}
	query := `SELECT id, kind, ref_id, delta, reason, timestamp, user_id FROM movements`
	var args []any
	var where []string
	if kind != "" {
		where = append(where, "kind = ?")
		args = append(args, kind)
	}
	if refID != nil {
		where = append(where, "ref_id = ?")
		args = append(args, *refID)
	}
	for i, w := range where {
		if i == 0 {
			query += " WHERE " + w
		} else {
			query += " AND " + w
		}
	}
	query += " ORDER BY id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := db.Query(db.Q(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var movements []Movement
	for rows.Next() {
		var m Movement
		if err := rows.Scan(&m.ID, &m.Kind, &m.RefID, &m.Delta, &m.Reason, &m.Timestamp, &m.UserID); err != nil {
			return nil, err
		}
		movements = append(movements, m)
	}
	return movements, rows.Err()
}

// CountMovements returns the total number of movement rows.
func (db *DB) CountMovements() (int, error) {
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM movements`).Scan(&n)
	return n, err
}
