package store

import (
	"errors"
	"path/filepath"
	"testing"

	"aquapos/config"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	cfg := &config.DatabaseConfig{
		Driver: "sqlite",
		SQLite: config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "test.db")},
	}
	db, err := Open(cfg)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestAdjustSource(t *testing.T) {
	db := testDB(t)
	src, err := db.CreateSource("Tank", "L", 100)
	if err != nil {
		t.Fatalf("create source: %v", err)
	}

	tx, _ := db.Begin()
	got, err := db.AdjustSource(tx, src.ID, -30, NowUTC())
	if err != nil {
		t.Fatalf("adjust: %v", err)
	}
	if got != 70 {
		t.Errorf("quantity = %v, want 70", got)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}

	s, _ := db.GetSource(src.ID)
	if s.Quantity != 70 {
		t.Errorf("persisted quantity = %v, want 70", s.Quantity)
	}
}

func TestAdjustSourceInsufficient(t *testing.T) {
	db := testDB(t)
	src, _ := db.CreateSource("Tank", "L", 10)

	tx, _ := db.Begin()
	defer tx.Rollback()
	_, err := db.AdjustSource(tx, src.ID, -10.5, NowUTC())
	if !errors.Is(err, ErrInsufficientStock) {
		t.Errorf("err = %v, want ErrInsufficientStock", err)
	}
}

func TestAdjustSourceExactZero(t *testing.T) {
	db := testDB(t)
	src, _ := db.CreateSource("Tank", "L", 10)

	tx, _ := db.Begin()
	got, err := db.AdjustSource(tx, src.ID, -10, NowUTC())
	if err != nil {
		t.Fatalf("adjust to zero: %v", err)
	}
	if got != 0 {
		t.Errorf("quantity = %v, want 0", got)
	}
	tx.Commit()
}

func TestAdjustInventoryBootstrap(t *testing.T) {
	db := testDB(t)
	p, _ := db.CreateProduct("Widget", 5)

	// Missing row behaves as zero stock.
	tx, _ := db.Begin()
	if _, err := db.AdjustInventory(tx, p.ID, -1, NowUTC()); !errors.Is(err, ErrInsufficientStock) {
		t.Errorf("negative delta on missing row: err = %v, want ErrInsufficientStock", err)
	}
	tx.Rollback()

	// A positive delta bootstraps the row.
	tx, _ = db.Begin()
	got, err := db.AdjustInventory(tx, p.ID, 25, NowUTC())
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	if got != 25 {
		t.Errorf("quantity = %v, want 25", got)
	}
	tx.Commit()

	inv, _ := db.GetInventory(p.ID)
	if inv == nil || inv.Quantity != 25 {
		t.Errorf("inventory row = %+v, want quantity 25", inv)
	}
}

func TestMovementsFilters(t *testing.T) {
	db := testDB(t)
	now := NowUTC()

	tx, _ := db.Begin()
	if err := db.InsertMovement(tx, PoolSource, 1, -50, "order:1", nil, now); err != nil {
		t.Fatalf("insert movement: %v", err)
	}
	if err := db.InsertMovement(tx, PoolInventory, 2, -3, "order:2", nil, now); err != nil {
		t.Fatalf("insert movement: %v", err)
	}
	if err := db.InsertMovement(tx, PoolInventory, 4, -1, "order_bottle:2", nil, now); err != nil {
		t.Fatalf("insert movement: %v", err)
	}
	tx.Commit()

	all, err := db.ListMovements(10, "", nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("len = %d, want 3", len(all))
	}
	// Newest first.
	if all[0].Reason != "order_bottle:2" {
		t.Errorf("first reason = %q, want order_bottle:2", all[0].Reason)
	}

	inv, _ := db.ListMovements(10, PoolInventory, nil)
	if len(inv) != 2 {
		t.Errorf("inventory movements = %d, want 2", len(inv))
	}

	ref := int64(4)
	byRef, _ := db.ListMovements(10, PoolInventory, &ref)
	if len(byRef) != 1 || byRef[0].Delta != -1 {
		t.Errorf("byRef = %+v, want one row with delta -1", byRef)
	}
}

func TestInsertMovementRejectsBadKind(t *testing.T) {
	db := testDB(t)
	tx, _ := db.Begin()
	defer tx.Rollback()
	if err := db.InsertMovement(tx, "tank", 1, -1, "x", nil, NowUTC()); err == nil {
		t.Error("expected error for invalid kind")
	}
}

func TestProductSourceLastWriteWins(t *testing.T) {
	db := testDB(t)
	p, _ := db.CreateProduct("5L water", 40)
	s1, _ := db.CreateSource("Tank A", "L", 100)
	s2, _ := db.CreateSource("Tank B", "L", 100)

	if _, err := db.SetProductSource(p.ID, s1.ID, 5); err != nil {
		t.Fatalf("set mapping: %v", err)
	}
	if _, err := db.SetProductSource(p.ID, s2.ID, 7); err != nil {
		t.Fatalf("remap: %v", err)
	}

	ps, err := db.GetProductSource(p.ID)
	if err != nil {
		t.Fatalf("get mapping: %v", err)
	}
	if ps.SourceID != s2.ID || ps.Factor != 7 {
		t.Errorf("mapping = %+v, want source %d factor 7", ps, s2.ID)
	}

	mappings, _ := db.ListProductSources()
	if len(mappings) != 1 {
		t.Errorf("mapping rows = %d, want 1", len(mappings))
	}
}

func TestGetProductSourceUnmapped(t *testing.T) {
	db := testDB(t)
	p, _ := db.CreateProduct("Loose item", 10)
	ps, err := db.GetProductSource(p.ID)
	if err != nil {
		t.Fatalf("get mapping: %v", err)
	}
	if ps != nil {
		t.Errorf("mapping = %+v, want nil for unmapped product", ps)
	}
}

func TestFindContainerProduct(t *testing.T) {
	db := testDB(t)
	db.CreateProduct("5L water", 40)
	exact, _ := db.CreateProduct("Empty 5L bottle", 0)
	other, _ := db.CreateProduct("Empty 20L bottle", 0)

	tx, _ := db.Begin()
	defer tx.Rollback()

	p, err := db.FindContainerProductTx(tx, 5)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if p == nil || p.ID != exact.ID {
		t.Errorf("factor 5 resolved %+v, want exact match %d", p, exact.ID)
	}

	// No exact size match falls back to the first Empty product.
	p, err = db.FindContainerProductTx(tx, 10)
	if err != nil {
		t.Fatalf("find fallback: %v", err)
	}
	if p == nil || p.ID != exact.ID {
		t.Errorf("factor 10 resolved %+v, want lowest-id Empty %d", p, exact.ID)
	}
	_ = other
}

func TestFindContainerProductNone(t *testing.T) {
	db := testDB(t)
	db.CreateProduct("5L water", 40)

	tx, _ := db.Begin()
	defer tx.Rollback()
	p, err := db.FindContainerProductTx(tx, 5)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if p != nil {
		t.Errorf("resolved %+v, want nil without container SKUs", p)
	}
}

func TestSalesListAndSummary(t *testing.T) {
	db := testDB(t)
	p, _ := db.CreateProduct("5L water", 40)

	insert := func(ts string, qty, total float64, createdBy *int64) {
		t.Helper()
		tx, _ := db.Begin()
		_, err := db.InsertSale(tx, &Sale{
			UUID: ts + "-uuid", ProductID: p.ID, Quantity: qty, UnitPrice: 40,
			Total: total, PaymentMethod: "Cash", Timestamp: ts, CreatedBy: createdBy,
		})
		if err != nil {
			t.Fatalf("insert sale: %v", err)
		}
		tx.Commit()
	}

	uid := int64(7)
	insert("2026-08-30T10:00:00Z", 2, 80, &uid)
	insert("2026-08-30T12:00:00Z", 1, 40, nil)
	insert("2026-08-31T09:00:00Z", 3, 120, &uid)

	day, err := db.ListSales("2026-08-30", nil)
	if err != nil {
		t.Fatalf("list by date: %v", err)
	}
	if len(day) != 2 {
		t.Errorf("sales on 2026-08-30 = %d, want 2", len(day))
	}

	mine, _ := db.ListSales("", &uid)
	if len(mine) != 2 {
		t.Errorf("sales by user = %d, want 2", len(mine))
	}

	sum, err := db.GetDailySummary("2026-08-30")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if sum.TotalQuantity != 3 || sum.TotalMoney != 120 {
		t.Errorf("summary = %+v, want qty 3 money 120", sum)
	}

	empty, _ := db.GetDailySummary("2026-01-01")
	if empty.TotalQuantity != 0 || empty.TotalMoney != 0 {
		t.Errorf("empty day summary = %+v, want zeros", empty)
	}
}

func TestEnsureBaselineIdempotent(t *testing.T) {
	db := testDB(t)
	if err := db.EnsureBaseline(); err != nil {
		t.Fatalf("first seed: %v", err)
	}

	// Operator changes survive a re-seed.
	tank, _ := db.findSourceByName("Main Tank")
	if tank == nil || tank.Quantity != 10000 {
		t.Fatalf("tank = %+v, want Main Tank at 10000", tank)
	}
	newQty := 4321.0
	if _, err := db.UpdateSource(tank.ID, nil, nil, &newQty); err != nil {
		t.Fatalf("update tank: %v", err)
	}

	if err := db.EnsureBaseline(); err != nil {
		t.Fatalf("second seed: %v", err)
	}
	tank, _ = db.GetSource(tank.ID)
	if tank.Quantity != 4321 {
		t.Errorf("tank quantity after re-seed = %v, want 4321", tank.Quantity)
	}

	products, _ := db.ListProducts()
	if len(products) != 6 {
		t.Errorf("products = %d, want 6", len(products))
	}

	water, _ := db.GetProductByName("5L water")
	ps, _ := db.GetProductSource(water.ID)
	if ps == nil || ps.Factor != 5 {
		t.Errorf("5L water mapping = %+v, want factor 5", ps)
	}

	bottle, _ := db.GetProductByName("Empty 20L bottle")
	inv, _ := db.GetInventory(bottle.ID)
	if inv == nil || inv.Quantity != 40 {
		t.Errorf("Empty 20L bottle stock = %+v, want 40", inv)
	}

	admin, _ := db.GetUserByUsername("admin")
	if admin == nil || admin.Role != RoleAdmin {
		t.Errorf("admin user = %+v", admin)
	}
}

func TestRebind(t *testing.T) {
	got := Rebind("SELECT * FROM t WHERE a = ? AND b = ?")
	want := "SELECT * FROM t WHERE a = $1 AND b = $2"
	if got != want {
		t.Errorf("Rebind = %q, want %q", got, want)
	}
}

func TestOutboxLifecycle(t *testing.T) {
	db := testDB(t)
	id, err := db.EnqueueOutbox("aquapos/sales", []byte(`{"x":1}`), "sale_recorded")
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	pending, err := db.ListPendingOutbox(10)
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != id {
		t.Fatalf("pending = %+v, want one row id %d", pending, id)
	}

	if err := db.AckOutbox(id); err != nil {
		t.Fatalf("ack: %v", err)
	}
	pending, _ = db.ListPendingOutbox(10)
	if len(pending) != 0 {
		t.Errorf("pending after ack = %d, want 0", len(pending))
	}
}
