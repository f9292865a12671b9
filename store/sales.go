package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// Sale is a persisted order: quantities and prices are snapshots taken at
// sale time. Immutable once created.
type Sale struct {
	ID            int64   `json:"id"`
	UUID          string  `json:"uuid"`
	ProductID     int64   `json:"product_id"`
	ProductName   string  `json:"product_name"`
	Quantity      float64 `json:"quantity"`
	UnitPrice     float64 `json:"unit_price"`
	Total         float64 `json:"total"`
	PaymentMethod string  `json:"payment_method"`
	Timestamp     string  `json:"timestamp"`
	CreatedBy     *int64  `json:"created_by"`
	BottlesUsed   int     `json:"bottles_used"`
	BottlePrice   float64 `json:"bottle_price"`
}

// DailySummary aggregates a single UTC day of sales.
type DailySummary struct {
	Date          string  `json:"date"`
	TotalQuantity float64 `json:"total_quantity"`
	TotalMoney    float64 `json:"total_money"`
}

const saleSelectCols = `s.id, s.uuid, s.product_id, p.name, s.quantity, s.unit_price, s.total,
	s.payment_method, s.timestamp, s.created_by, s.bottles_used, s.bottle_price`

const saleJoin = `FROM sales s JOIN products p ON p.id = s.product_id`

// InsertSale persists a sale row inside tx and returns its id.
func (db *DB) InsertSale(tx *sql.Tx, s *Sale) (int64, error) {
	var id int64
	err := tx.QueryRow(db.Q(`INSERT INTO sales
		(uuid, product_id, quantity, unit_price, total, payment_method, timestamp, created_by, bottles_used, bottle_price)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`),
		s.UUID, s.ProductID, s.Quantity, s.UnitPrice, s.Total, s.PaymentMethod,
		s.Timestamp, s.CreatedBy, s.BottlesUsed, s.BottlePrice).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert sale: %w", err)
	}
	return id, nil
}

func (db *DB) GetSale(id int64) (*Sale, error) {
	s := &Sale{}
	err := db.QueryRow(db.Q(`SELECT `+saleSelectCols+` `+saleJoin+` WHERE s.id = ?`), id).
		Scan(&s.ID, &s.UUID, &s.ProductID, &s.ProductName, &s.Quantity, &s.UnitPrice, &s.Total,
			&s.PaymentMethod, &s.Timestamp, &s.CreatedBy, &s.BottlesUsed, &s.BottlePrice)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// ListSales returns sales newest first. dateISO filters to a single UTC day
// (YYYY-MM-DD prefix match); userID restricts to a creator.
func (db *DB) ListSales(dateISO string, userID *int64) ([]Sale, error) {
	query := `SELECT ` + saleSelectCols + ` ` + saleJoin
	var args []any
	var where []string
	if dateISO != "" {
		where = append(where, "s.timestamp LIKE ?")
		args = append(args, dateISO+"%")
	}
	if userID != nil {
		where = append(where, "s.created_by = ?")
		args = append(args, *userID)
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY s.id DESC"

	rows, err := db.Query(db.Q(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var sales []Sale
	for rows.Next() {
		var s Sale
		if err := rows.Scan(&s.ID, &s.UUID, &s.ProductID, &s.ProductName, &s.Quantity, &s.UnitPrice, &s.Total,
			&s.PaymentMethod, &s.Timestamp, &s.CreatedBy, &s.BottlesUsed, &s.BottlePrice); err != nil {
			return nil, err
		}
		sales = append(sales, s)
	}
	return sales, rows.Err()
}

// CountSales returns the total number of sale rows.
func (db *DB) CountSales() (int, error) {
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM sales`).Scan(&n)
	return n, err
}

// GetDailySummary sums quantity and money for one UTC date (YYYY-MM-DD).
func (db *DB) GetDailySummary(dateISO string) (*DailySummary, error) {
	var qty, money sql.NullFloat64
	err := db.QueryRow(db.Q(`SELECT SUM(quantity), SUM(total) FROM sales WHERE timestamp LIKE ?`), dateISO+"%").
		Scan(&qty, &money)
	if err != nil {
		return nil, err
	}
	return &DailySummary{Date: dateISO, TotalQuantity: qty.Float64, TotalMoney: money.Float64}, nil
}
