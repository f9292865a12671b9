package sales

import (
	"errors"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"aquapos/config"
	"aquapos/store"
)

func testDB(t *testing.T) *store.DB {
	t.Helper()
	cfg := &config.DatabaseConfig{
		Driver: "sqlite",
		SQLite: config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "test.db")},
	}
	db, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

type fixture struct {
	db     *store.DB
	mgr    *Manager
	tank   *store.Source
	water  *store.Product // mapped, factor 5
	loose  *store.Product // unmapped, inventory-backed
	bottle *store.Product // container SKU
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testDB(t)

	tank, err := db.CreateSource("Main Tank", "L", 10000)
	if err != nil {
		t.Fatalf("create tank: %v", err)
	}
	water, err := db.CreateProduct("5L water", 40)
	if err != nil {
		t.Fatalf("create water: %v", err)
	}
	if _, err := db.SetProductSource(water.ID, tank.ID, 5); err != nil {
		t.Fatalf("map water: %v", err)
	}
	loose, err := db.CreateProduct("Water filter", 250)
	if err != nil {
		t.Fatalf("create loose product: %v", err)
	}
	if _, err := db.SetInventory(loose.ID, 10); err != nil {
		t.Fatalf("stock loose product: %v", err)
	}
	bottle, err := db.CreateProduct("Empty 5L bottle", 0)
	if err != nil {
		t.Fatalf("create bottle: %v", err)
	}
	if _, err := db.SetInventory(bottle.ID, 120); err != nil {
		t.Fatalf("stock bottles: %v", err)
	}

	return &fixture{
		db:     db,
		mgr:    NewManager(db, "aquapos/sales"),
		tank:   tank,
		water:  water,
		loose:  loose,
		bottle: bottle,
	}
}

func (f *fixture) tankQuantity(t *testing.T) float64 {
	t.Helper()
	s, err := f.db.GetSource(f.tank.ID)
	if err != nil || s == nil {
		t.Fatalf("read tank: %v", err)
	}
	return s.Quantity
}

func (f *fixture) inventoryQuantity(t *testing.T, productID int64) float64 {
	t.Helper()
	inv, err := f.db.GetInventory(productID)
	if err != nil {
		t.Fatalf("read inventory: %v", err)
	}
	if inv == nil {
		return 0
	}
	return inv.Quantity
}

func TestPlaceOrderSourceBacked(t *testing.T) {
	f := newFixture(t)

	sale, err := f.mgr.PlaceOrder(PlaceOrderRequest{ProductID: f.water.ID, Quantity: 10})
	if err != nil {
		t.Fatalf("place order: %v", err)
	}

	if sale.Total != 400 {
		t.Errorf("total = %v, want 400", sale.Total)
	}
	if sale.ProductName != "5L water" {
		t.Errorf("product name = %q", sale.ProductName)
	}
	if sale.PaymentMethod != "Cash" {
		t.Errorf("payment method = %q, want default Cash", sale.PaymentMethod)
	}
	if sale.UUID == "" {
		t.Error("sale has no UUID")
	}

	// 10 units at factor 5 draw 50 from the tank.
	if got := f.tankQuantity(t); got != 9950 {
		t.Errorf("tank = %v, want 9950", got)
	}

	movements, err := f.db.ListMovements(10, store.PoolSource, &f.tank.ID)
	if err != nil {
		t.Fatalf("list movements: %v", err)
	}
	if len(movements) != 1 {
		t.Fatalf("movements = %d, want 1", len(movements))
	}
	if movements[0].Delta != -50 || movements[0].Reason != "order:"+itoa(f.water.ID) {
		t.Errorf("movement = %+v, want delta -50 reason order:%d", movements[0], f.water.ID)
	}
}

func TestPlaceOrderInventoryFallback(t *testing.T) {
	f := newFixture(t)

	sale, err := f.mgr.PlaceOrder(PlaceOrderRequest{ProductID: f.loose.ID, Quantity: 4})
	if err != nil {
		t.Fatalf("place order: %v", err)
	}
	if sale.Total != 1000 {
		t.Errorf("total = %v, want 1000", sale.Total)
	}

	if got := f.inventoryQuantity(t, f.loose.ID); got != 6 {
		t.Errorf("inventory = %v, want 6", got)
	}
	// The tank is untouched by an unmapped product.
	if got := f.tankQuantity(t); got != 10000 {
		t.Errorf("tank = %v, want 10000", got)
	}

	movements, _ := f.db.ListMovements(10, store.PoolInventory, &f.loose.ID)
	if len(movements) != 1 || movements[0].Delta != -4 {
		t.Errorf("movements = %+v, want one row delta -4", movements)
	}
}

func TestPlaceOrderInsufficientStockAtomic(t *testing.T) {
	f := newFixture(t)

	movementsBefore, _ := f.db.CountMovements()
	salesBefore, _ := f.db.CountSales()

	// 2001 units at factor 5 need 10005 L; the tank holds 10000.
	_, err := f.mgr.PlaceOrder(PlaceOrderRequest{ProductID: f.water.ID, Quantity: 2001})
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("err = %v, want ErrInsufficientStock", err)
	}

	if got := f.tankQuantity(t); got != 10000 {
		t.Errorf("tank after failed order = %v, want 10000", got)
	}
	if n, _ := f.db.CountMovements(); n != movementsBefore {
		t.Errorf("movements = %d, want %d", n, movementsBefore)
	}
	if n, _ := f.db.CountSales(); n != salesBefore {
		t.Errorf("sales = %d, want %d", n, salesBefore)
	}
}

func TestPlaceOrderBottleSurcharge(t *testing.T) {
	f := newFixture(t)

	sale, err := f.mgr.PlaceOrder(PlaceOrderRequest{
		ProductID:   f.water.ID,
		Quantity:    2.5,
		UseBottle:   true,
		BottlePrice: 15,
	})
	if err != nil {
		t.Fatalf("place order: %v", err)
	}

	// 2.5 units round up to 3 bottles: 40*2.5 + 15*3.
	if sale.BottlesUsed != 3 {
		t.Errorf("bottles used = %d, want 3", sale.BottlesUsed)
	}
	if sale.Total != 145 {
		t.Errorf("total = %v, want 145", sale.Total)
	}
	if sale.BottlePrice != 15 {
		t.Errorf("bottle price = %v, want 15", sale.BottlePrice)
	}

	if got := f.inventoryQuantity(t, f.bottle.ID); got != 117 {
		t.Errorf("bottle stock = %v, want 117", got)
	}
	if got := f.tankQuantity(t); got != 9987.5 {
		t.Errorf("tank = %v, want 9987.5", got)
	}

	// One source movement plus one bottle movement.
	movements, _ := f.db.ListMovements(10, "", nil)
	if len(movements) != 2 {
		t.Fatalf("movements = %d, want 2", len(movements))
	}
	if movements[0].Reason != "order_bottle:"+itoa(f.water.ID) {
		t.Errorf("bottle movement reason = %q", movements[0].Reason)
	}
}

func TestPlaceOrderBottleStockInsufficientAtomic(t *testing.T) {
	f := newFixture(t)
	if _, err := f.db.SetInventory(f.bottle.ID, 1); err != nil {
		t.Fatalf("set bottle stock: %v", err)
	}

	_, err := f.mgr.PlaceOrder(PlaceOrderRequest{
		ProductID:   f.water.ID,
		Quantity:    2,
		UseBottle:   true,
		BottlePrice: 15,
	})
	if !errors.Is(err, ErrInsufficientBottleStock) {
		t.Fatalf("err = %v, want ErrInsufficientBottleStock", err)
	}

	// The tank draw from earlier in the transaction is rolled back too.
	if got := f.tankQuantity(t); got != 10000 {
		t.Errorf("tank = %v, want 10000", got)
	}
	if got := f.inventoryQuantity(t, f.bottle.ID); got != 1 {
		t.Errorf("bottle stock = %v, want 1", got)
	}
	if n, _ := f.db.CountSales(); n != 0 {
		t.Errorf("sales = %d, want 0", n)
	}
}

func TestPlaceOrderNoContainerSKU(t *testing.T) {
	f := newFixture(t)
	if _, err := f.db.DeleteProduct(f.bottle.ID); err != nil {
		t.Fatalf("delete bottle SKU: %v", err)
	}
	f.db.DeleteInventory(f.bottle.ID)

	sale, err := f.mgr.PlaceOrder(PlaceOrderRequest{
		ProductID:   f.water.ID,
		Quantity:    1,
		UseBottle:   true,
		BottlePrice: 15,
	})
	if err != nil {
		t.Fatalf("place order: %v", err)
	}
	// The surcharge stands even with no bottle stock to track.
	if sale.Total != 55 || sale.BottlesUsed != 1 {
		t.Errorf("sale = total %v bottles %d, want 55 and 1", sale.Total, sale.BottlesUsed)
	}
	movements, _ := f.db.ListMovements(10, store.PoolInventory, nil)
	if len(movements) != 0 {
		t.Errorf("inventory movements = %+v, want none", movements)
	}
}

func TestPlaceOrderValidation(t *testing.T) {
	f := newFixture(t)

	if _, err := f.mgr.PlaceOrder(PlaceOrderRequest{ProductID: f.water.ID, Quantity: 0}); !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("zero quantity: err = %v, want ErrInvalidQuantity", err)
	}
	if _, err := f.mgr.PlaceOrder(PlaceOrderRequest{ProductID: f.water.ID, Quantity: -2}); !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("negative quantity: err = %v, want ErrInvalidQuantity", err)
	}
	if _, err := f.mgr.PlaceOrder(PlaceOrderRequest{ProductID: 9999, Quantity: 1}); !errors.Is(err, ErrProductNotFound) {
		t.Errorf("unknown product: err = %v, want ErrProductNotFound", err)
	}
}

func TestPlaceOrderBackdated(t *testing.T) {
	f := newFixture(t)

	yesterday := time.Now().UTC().Add(-24 * time.Hour).Truncate(time.Second).Format(time.RFC3339)
	sale, err := f.mgr.PlaceOrder(PlaceOrderRequest{
		ProductID: f.water.ID,
		Quantity:  1,
		OrderDate: yesterday,
	})
	if err != nil {
		t.Fatalf("place order: %v", err)
	}
	if sale.Timestamp != yesterday {
		t.Errorf("timestamp = %q, want %q", sale.Timestamp, yesterday)
	}
}

func TestPlaceOrderFutureDateRejected(t *testing.T) {
	f := newFixture(t)

	future := time.Now().UTC().Add(48 * time.Hour).Format(time.RFC3339)
	_, err := f.mgr.PlaceOrder(PlaceOrderRequest{
		ProductID: f.water.ID,
		Quantity:  1,
		OrderDate: future,
	})
	if !errors.Is(err, ErrInvalidOrderDate) {
		t.Fatalf("err = %v, want ErrInvalidOrderDate", err)
	}
	if got := f.tankQuantity(t); got != 10000 {
		t.Errorf("tank = %v, want untouched 10000", got)
	}
}

func TestPlaceOrderGarbageDateRejected(t *testing.T) {
	f := newFixture(t)
	_, err := f.mgr.PlaceOrder(PlaceOrderRequest{
		ProductID: f.water.ID,
		Quantity:  1,
		OrderDate: "not-a-date",
	})
	if !errors.Is(err, ErrInvalidOrderDate) {
		t.Errorf("err = %v, want ErrInvalidOrderDate", err)
	}
}

func TestPlaceOrderEnqueuesSaleEvent(t *testing.T) {
	f := newFixture(t)

	if _, err := f.mgr.PlaceOrder(PlaceOrderRequest{ProductID: f.water.ID, Quantity: 1}); err != nil {
		t.Fatalf("place order: %v", err)
	}
	pending, err := f.db.ListPendingOutbox(10)
	if err != nil {
		t.Fatalf("list outbox: %v", err)
	}
	if len(pending) != 1 || pending[0].Topic != "aquapos/sales" {
		t.Errorf("outbox = %+v, want one message on aquapos/sales", pending)
	}
}

func TestResolveOrderTimestampDateOnly(t *testing.T) {
	now := time.Date(2026, 9, 1, 14, 30, 5, 0, time.UTC)
	got, err := resolveOrderTimestamp("2026-08-20", now)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != "2026-08-20T14:30:05Z" {
		t.Errorf("resolved = %q, want 2026-08-20T14:30:05Z", got)
	}
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
