package store

import (
	"database/sql"
	"errors"
	"fmt"
)

// Source is a shared stock reservoir (a tank) that mapped products draw from.
type Source struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Unit        string  `json:"unit"`
	Quantity    float64 `json:"quantity"`
	LastUpdated string  `json:"last_updated"`
}

func (db *DB) ListSources() ([]Source, error) {
	rows, err := db.Query(`SELECT id, name, unit, quantity, last_updated FROM sources ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var sources []Source
	for rows.Next() {
		var s Source
		if err := rows.Scan(&s.ID, &s.Name, &s.Unit, &s.Quantity, &s.LastUpdated); err != nil {
			return nil, err
		}
		sources = append(sources, s)
	}
	return sources, rows.Err()
}

func (db *DB) GetSource(id int64) (*Source, error) {
	s := &Source{}
	err := db.QueryRow(db.Q(`SELECT id, name, unit, quantity, last_updated FROM sources WHERE id = ?`), id).
		Scan(&s.ID, &s.Name, &s.Unit, &s.Quantity, &s.LastUpdated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (db *DB) CreateSource(name, unit string, quantity float64) (*Source, error) {
	now := NowUTC()
	var id int64
	err := db.QueryRow(db.Q(`INSERT INTO sources (name, unit, quantity, last_updated) VALUES (?, ?, ?, ?) RETURNING id`),
		name, unit, quantity, now).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("create source: %w", err)
	}
	return &Source{ID: id, Name: name, Unit: unit, Quantity: quantity, LastUpdated: now}, nil
}

// UpdateSource updates only the provided fields; nil means keep the current
// value. Returns nil when the source does not exist.
func (db *DB) UpdateSource(id int64, name, unit *string, quantity *float64) (*Source, error) {
	s, err := db.GetSource(id)
	if err != nil || s == nil {
		return nil, err
	}
	if name != nil {
		s.Name = *name
	}
	if unit != nil {
		s.Unit = *unit
	}
	if quantity != nil {
		s.Quantity = *quantity
	}
	s.LastUpdated = NowUTC()
	_, err = db.Exec(db.Q(`UPDATE sources SET name = ?, unit = ?, quantity = ?, last_updated = ? WHERE id = ?`),
		s.Name, s.Unit, s.Quantity, s.LastUpdated, id)
	if err != nil {
		return nil, fmt.Errorf("update source: %w", err)
	}
	return s, nil
}

func (db *DB) DeleteSource(id int64) (bool, error) {
	res, err := db.Exec(db.Q(`DELETE FROM sources WHERE id = ?`), id)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
