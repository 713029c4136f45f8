package models

import (
	"testing"
	"time"
)

var testNow = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

func TestStockStatusThresholds(t *testing.T) {
	p := &Product{CurrentStock: 5, MinStock: 10}
	p.Recalculate(testNow)
	if p.StockStatus != StockStatusLow {
		t.Fatalf("expected low_stock, got %s", p.StockStatus)
	}

	p.CurrentStock = 0
	p.Recalculate(testNow)
	if p.StockStatus != StockStatusOut {
		t.Fatalf("expected out_of_stock, got %s", p.StockStatus)
	}

	p.CurrentStock = 50
	p.Recalculate(testNow)
	if p.StockStatus != StockStatusIn {
		t.Fatalf("expected in_stock, got %s", p.StockStatus)
	}
}

func TestExpiringSoonFromNearestBatch(t *testing.T) {
	expiry := testNow.AddDate(0, 0, 10)
	p := &Product{
		CurrentStock:    3,
		HasExpiry:       true,
		ExpiryAlertDays: 30,
		Batches: []Batch{
			{BatchNumber: "B1", Quantity: 3, ExpiryDate: expiry, Status: BatchStatusFresh},
		},
	}
	p.Recalculate(testNow)
	if p.ExpiryStatus != ExpiryStatusSoon {
		t.Fatalf("expected expiring_soon, got %s", p.ExpiryStatus)
	}
	if p.NearestExpiry == nil || !p.NearestExpiry.Equal(expiry) {
		t.Fatalf("expected nearest expiry %v, got %v", expiry, p.NearestExpiry)
	}
}

func TestNearestExpirySkipsExpiredAndEmptyBatches(t *testing.T) {
	near := testNow.AddDate(0, 0, 5)
	far := testNow.AddDate(0, 0, 90)
	p := &Product{
		CurrentStock:    10,
		HasExpiry:       true,
		ExpiryAlertDays: 7,
		Batches: []Batch{
			{BatchNumber: "gone", Quantity: 0, ExpiryDate: testNow.AddDate(0, 0, 1)},
			{BatchNumber: "old", Quantity: 4, ExpiryDate: testNow.AddDate(0, 0, -3), Status: BatchStatusExpired},
			{BatchNumber: "near", Quantity: 2, ExpiryDate: near},
			{BatchNumber: "far", Quantity: 8, ExpiryDate: far},
		},
	}
	p.Recalculate(testNow)
	if p.NearestExpiry == nil || !p.NearestExpiry.Equal(near) {
		t.Fatalf("expected nearest expiry from qualifying batch, got %v", p.NearestExpiry)
	}
	if p.ExpiryStatus != ExpiryStatusSoon {
		t.Fatalf("expected expiring_soon, got %s", p.ExpiryStatus)
	}
}

func TestExpiryResetsWhenNoBatchQualifies(t *testing.T) {
	p := &Product{
		CurrentStock:    1,
		HasExpiry:       true,
		ExpiryAlertDays: 7,
		ExpiryStatus:    ExpiryStatusSoon,
		Batches: []Batch{
			{BatchNumber: "dead", Quantity: 2, ExpiryDate: testNow.AddDate(0, 0, -1), Status: BatchStatusExpired},
		},
	}
	old := testNow.AddDate(0, 0, -1)
	p.NearestExpiry = &old
	p.Recalculate(testNow)
	if p.ExpiryStatus != ExpiryStatusNone {
		t.Fatalf("expected reset to no_expiry, got %s", p.ExpiryStatus)
	}
	if p.NearestExpiry != nil {
		t.Fatalf("stale nearest expiry must clear")
	}
}

func TestExpiredNearestBatch(t *testing.T) {
	p := &Product{
		CurrentStock:    2,
		HasExpiry:       true,
		ExpiryAlertDays: 7,
		Batches: []Batch{
			// Past expiry but status not yet refreshed to expired
			{BatchNumber: "B1", Quantity: 2, ExpiryDate: testNow.AddDate(0, 0, -2), Status: BatchStatusFresh},
		},
	}
	p.Recalculate(testNow)
	if p.ExpiryStatus != ExpiryStatusExpired {
		t.Fatalf("expected has_expired, got %s", p.ExpiryStatus)
	}
}

func TestUpdateBatchStatuses(t *testing.T) {
	p := &Product{
		HasExpiry:       true,
		ExpiryAlertDays: 7,
		Batches: []Batch{
			{BatchNumber: "sold", Quantity: 0, ExpiryDate: testNow.AddDate(0, 0, 30)},
			{BatchNumber: "expired", Quantity: 5, ExpiryDate: testNow.AddDate(0, 0, -1)},
			{BatchNumber: "soon", Quantity: 5, ExpiryDate: testNow.AddDate(0, 0, 3)},
			{BatchNumber: "fresh", Quantity: 5, ExpiryDate: testNow.AddDate(0, 0, 60)},
		},
	}
	p.UpdateBatchStatuses(testNow)

	want := []BatchStatus{BatchStatusSoldOut, BatchStatusExpired, BatchStatusSoon, BatchStatusFresh}
	for i, w := range want {
		if p.Batches[i].Status != w {
			t.Fatalf("batch %s: expected %s, got %s", p.Batches[i].BatchNumber, w, p.Batches[i].Status)
		}
	}
}

func TestRecalculateIsIdempotent(t *testing.T) {
	p := &Product{
		CurrentStock:    3,
		MinStock:        10,
		HasExpiry:       true,
		ExpiryAlertDays: 30,
		Batches: []Batch{
			{BatchNumber: "B1", Quantity: 3, ExpiryDate: testNow.AddDate(0, 0, 10)},
		},
	}
	p.Recalculate(testNow)
	stock, expiry, nearest := p.StockStatus, p.ExpiryStatus, *p.NearestExpiry
	p.Recalculate(testNow)
	if p.StockStatus != stock || p.ExpiryStatus != expiry || !p.NearestExpiry.Equal(nearest) {
		t.Fatalf("second derivation with unchanged fields changed derived state")
	}
}

func TestAdjustStock(t *testing.T) {
	p := &Product{CurrentStock: 10}

	if err := p.AdjustStock(StockAdjustAdd, 5); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if p.CurrentStock != 15 {
		t.Fatalf("expected stock 15, got %v", p.CurrentStock)
	}

	if err := p.AdjustStock(StockAdjustRemove, 20); err != ErrInsufficientStock {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	if p.CurrentStock != 15 {
		t.Fatalf("failed remove must not change stock")
	}

	if err := p.AdjustStock(StockAdjustSet, 7); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if p.CurrentStock != 7 {
		t.Fatalf("expected stock 7, got %v", p.CurrentStock)
	}

	if err := p.AdjustStock(StockAdjustRemove, -1); err != ErrNegativeAmount {
		t.Fatalf("expected ErrNegativeAmount, got %v", err)
	}
}
