package sales

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"aquapos/store"

	"github.com/google/uuid"
)

// Manager coordinates order fulfillment: pricing, stock deduction, movement
// audit and the sale row, committed as one transaction.
type Manager struct {
	db         *store.DB
	salesTopic string
}

// NewManager creates an order manager. salesTopic may be empty to disable
// outbound sale events.
func NewManager(db *store.DB, salesTopic string) *Manager {
	return &Manager{db: db, salesTopic: salesTopic}
}

// PlaceOrder fulfills one order atomically. On any failure after validation
// the transaction is rolled back and no stock, movement or sale mutation
// remains visible.
func (m *Manager) PlaceOrder(req PlaceOrderRequest) (*store.Sale, error) {
	if req.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = "Cash"
	}

	now := time.Now().UTC()
	orderTS, err := resolveOrderTimestamp(req.OrderDate, now)
	if err != nil {
		return nil, err
	}
	nowTS := now.Truncate(time.Second).Format(time.RFC3339)

	tx, err := m.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin order tx: %w", err)
	}
	defer tx.Rollback()

	product, err := m.db.GetProductTx(tx, req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("lookup product %d: %w", req.ProductID, err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	total, bottles, err := priceOrder(product.UnitPrice, req.Quantity, req.UseBottle, req.BottlesUsed, req.BottlePrice)
	if err != nil {
		return nil, err
	}

	mapping, err := m.db.GetProductSourceTx(tx, req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("resolve source mapping: %w", err)
	}

	reason := fmt.Sprintf("order:%d", req.ProductID)
	if mapping != nil {
		required := req.Quantity * mapping.Factor
		if _, err := m.db.AdjustSource(tx, mapping.SourceID, -required, nowTS); err != nil {
			return nil, err
		}
		if err := m.db.InsertMovement(tx, store.PoolSource, mapping.SourceID, -required, reason, req.CreatedBy, nowTS); err != nil {
			return nil, err
		}
	} else {
		if _, err := m.db.AdjustInventory(tx, req.ProductID, -req.Quantity, nowTS); err != nil {
			return nil, err
		}
		if err := m.db.InsertMovement(tx, store.PoolInventory, req.ProductID, -req.Quantity, reason, req.CreatedBy, nowTS); err != nil {
			return nil, err
		}
	}

	if bottles > 0 {
		var factor float64
		if mapping != nil {
			factor = mapping.Factor
		}
		bottleSKU, err := m.db.FindContainerProductTx(tx, factor)
		if err != nil {
			return nil, fmt.Errorf("resolve container product: %w", err)
		}
		// No container SKU in the catalog: the surcharge stands but there is
		// no bottle stock to track.
		if bottleSKU != nil {
			if _, err := m.db.AdjustInventory(tx, bottleSKU.ID, -float64(bottles), nowTS); err != nil {
				if errors.Is(err, store.ErrInsufficientStock) {
					return nil, ErrInsufficientBottleStock
				}
				return nil, err
			}
			bottleReason := fmt.Sprintf("order_bottle:%d", req.ProductID)
			if err := m.db.InsertMovement(tx, store.PoolInventory, bottleSKU.ID, -float64(bottles), bottleReason, req.CreatedBy, nowTS); err != nil {
				return nil, err
			}
		}
	}

	bottlePrice := 0.0
	if req.UseBottle {
		bottlePrice = req.BottlePrice
	}
	sale := &store.Sale{
		UUID:          uuid.New().String(),
		ProductID:     req.ProductID,
		Quantity:      req.Quantity,
		UnitPrice:     product.UnitPrice,
		Total:         total,
		PaymentMethod: paymentMethod,
		Timestamp:     orderTS,
		CreatedBy:     req.CreatedBy,
		BottlesUsed:   bottles,
		BottlePrice:   bottlePrice,
	}
	saleID, err := m.db.InsertSale(tx, sale)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit order: %w", err)
	}

	persisted, err := m.db.GetSale(saleID)
	if err != nil {
		return nil, fmt.Errorf("read back sale %d: %w", saleID, err)
	}

	m.emitSaleEvent(persisted)
	return persisted, nil
}

// emitSaleEvent enqueues a sale event to the outbox. Best-effort: failures
// are logged, never surfaced to the order.
func (m *Manager) emitSaleEvent(s *store.Sale) {
	if m.salesTopic == "" {
		return
	}
	msg := SaleMessage{
		SaleUUID:      s.UUID,
		ProductID:     s.ProductID,
		ProductName:   s.ProductName,
		Quantity:      s.Quantity,
		Total:         s.Total,
		PaymentMethod: s.PaymentMethod,
		BottlesUsed:   s.BottlesUsed,
		Timestamp:     s.Timestamp,
	}
	payload, _ := json.Marshal(msg)
	if _, err := m.db.EnqueueOutbox(m.salesTopic, payload, "sale_recorded"); err != nil {
		log.Printf("enqueue sale event %s: %v", s.UUID, err)
	}
}

// resolveOrderTimestamp turns an optional client-supplied order date into the
// stored RFC 3339 UTC timestamp. A bare date takes the current time of day;
// future instants are rejected.
func resolveOrderTimestamp(orderDate string, now time.Time) (string, error) {
	if orderDate == "" {
		return now.Truncate(time.Second).Format(time.RFC3339), nil
	}
	var t time.Time
	var parsed bool
	for _, layout := range []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
	} {
		if v, err := time.Parse(layout, orderDate); err == nil {
			t = v.UTC()
			parsed = true
			break
		}
	}
	if !parsed {
		d, err := time.Parse("2006-01-02", orderDate)
		if err != nil {
			return "", ErrInvalidOrderDate
		}
		t = time.Date(d.Year(), d.Month(), d.Day(),
			now.Hour(), now.Minute(), now.Second(), 0, time.UTC)
	}
	if t.After(now) {
		return "", ErrInvalidOrderDate
	}
	return t.Truncate(time.Second).Format(time.RFC3339), nil
}
