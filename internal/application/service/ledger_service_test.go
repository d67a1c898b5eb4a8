package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tk-rocha/garcom-api/internal/domain/entity"
	"github.com/tk-rocha/garcom-api/internal/domain/enum"
)

func seedSale(t *testing.T, sales *fakeSaleRepo, net string) *entity.Sale {
	t.Helper()
	sale := &entity.Sale{
		SaleDate:  time.Now(),
		NetAmount: d(net),
		Status:    enum.SaleStatusFinalized,
	}
	if err := sales.Finalize(context.Background(), sale); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	return sale
}

func TestLedgerService_RecomputeDailyTotal(t *testing.T) {
	ctx := context.Background()
	date := entity.LedgerDate(time.Now())

	t.Run("empty day", func(t *testing.T) {
		svc := NewLedgerService(newFakeSaleRepo(), newFakeLedgerRepo())
		total, err := svc.RecomputeDailyTotal(ctx, date)
		if err != nil {
			t.Fatalf("RecomputeDailyTotal: %v", err)
		}
		if !total.IsZero() {
			t.Errorf("total = %s, want 0", total)
		}
	})

	t.Run("sums non-cancelled sales", func(t *testing.T) {
		sales := newFakeSaleRepo()
		ledger := newFakeLedgerRepo()
		svc := NewLedgerService(sales, ledger)

		seedSale(t, sales, "10.00")
		seedSale(t, sales, "22.50")
		cancelled := seedSale(t, sales, "99.00")
		if err := sales.UpdateStatus(ctx, cancelled.CupomNumber, enum.SaleStatusCancelled, "test"); err != nil {
			t.Fatalf("UpdateStatus: %v", err)
		}

		total, err := svc.RecomputeDailyTotal(ctx, date)
		if err != nil {
			t.Fatalf("RecomputeDailyTotal: %v", err)
		}
		if total.StringFixed(2) != "32.50" {
			t.Errorf("total = %s, want 32.50", total.StringFixed(2))
		}
	})

	t.Run("heals a drifted cache", func(t *testing.T) {
		sales := newFakeSaleRepo()
		ledger := newFakeLedgerRepo()
		svc := NewLedgerService(sales, ledger)

		seedSale(t, sales, "50.00")
		if err := ledger.Upsert(ctx, date, d("12.34")); err != nil {
			t.Fatalf("Upsert: %v", err)
		}

		total, err := svc.RecomputeDailyTotal(ctx, date)
		if err != nil {
			t.Fatalf("RecomputeDailyTotal: %v", err)
		}
		if total.StringFixed(2) != "50.00" {
			t.Errorf("total = %s, want 50.00", total.StringFixed(2))
		}
		if ledger.total(date).StringFixed(2) != "50.00" {
			t.Errorf("cache = %s, want overwritten to 50.00", ledger.total(date).StringFixed(2))
		}
	})

	t.Run("sub-cent drift is left alone", func(t *testing.T) {
		sales := newFakeSaleRepo()
		ledger := newFakeLedgerRepo()
		svc := NewLedgerService(sales, ledger)

		seedSale(t, sales, "50.00")
		if err := ledger.Upsert(ctx, date, d("50.01")); err != nil {
			t.Fatalf("Upsert: %v", err)
		}

		total, err := svc.RecomputeDailyTotal(ctx, date)
		if err != nil {
			t.Fatalf("RecomputeDailyTotal: %v", err)
		}
		// The authoritative value is always returned...
		if total.StringFixed(2) != "50.00" {
			t.Errorf("total = %s, want 50.00", total.StringFixed(2))
		}
		// ...but the cache write is skipped inside the tolerance.
		if ledger.total(date).StringFixed(2) != "50.01" {
			t.Errorf("cache = %s, want untouched 50.01", ledger.total(date).StringFixed(2))
		}
	})
}

func TestLedgerService_SubtractCancelled(t *testing.T) {
	ctx := context.Background()
	date := entity.LedgerDate(time.Now())

	t.Run("subtracts the sale's net", func(t *testing.T) {
		ledger := newFakeLedgerRepo()
		svc := NewLedgerService(newFakeSaleRepo(), ledger)
		if err := ledger.Upsert(ctx, date, d("100.00")); err != nil {
			t.Fatalf("Upsert: %v", err)
		}

		sale := &entity.Sale{SaleDate: time.Now(), NetAmount: d("30.00")}
		if err := svc.SubtractCancelled(ctx, sale); err != nil {
			t.Fatalf("SubtractCancelled: %v", err)
		}
		if ledger.total(date).StringFixed(2) != "70.00" {
			t.Errorf("ledger = %s, want 70.00", ledger.total(date).StringFixed(2))
		}
	})

	t.Run("floors at zero", func(t *testing.T) {
		ledger := newFakeLedgerRepo()
		svc := NewLedgerService(newFakeSaleRepo(), ledger)
		if err := ledger.Upsert(ctx, date, d("10.00")); err != nil {
			t.Fatalf("Upsert: %v", err)
		}

		sale := &entity.Sale{SaleDate: time.Now(), NetAmount: d("45.00")}
		if err := svc.SubtractCancelled(ctx, sale); err != nil {
			t.Fatalf("SubtractCancelled: %v", err)
		}
		if got := ledger.total(date); !got.IsZero() {
			t.Errorf("ledger = %s, want floored at 0", got)
		}
	})
}

func TestLedgerService_TodayTotal(t *testing.T) {
	sales := newFakeSaleRepo()
	ledger := newFakeLedgerRepo()
	svc := NewLedgerService(sales, ledger)

	seedSale(t, sales, "19.90")

	total, err := svc.TodayTotal(context.Background())
	if err != nil {
		t.Fatalf("TodayTotal: %v", err)
	}
	if total.StringFixed(2) != "19.90" {
		t.Errorf("total = %s, want 19.90", total.StringFixed(2))
	}
}

func TestLedgerService_RecomputeIsIdempotent(t *testing.T) {
	ctx := context.Background()
	date := entity.LedgerDate(time.Now())
	sales := newFakeSaleRepo()
	ledger := newFakeLedgerRepo()
	svc := NewLedgerService(sales, ledger)

	seedSale(t, sales, "33.33")

	var last decimal.Decimal
	for i := 0; i < 3; i++ {
		total, err := svc.RecomputeDailyTotal(ctx, date)
		if err != nil {
			t.Fatalf("RecomputeDailyTotal #%d: %v", i+1, err)
		}
		if i > 0 && !total.Equal(last) {
			t.Errorf("recompute drifted: %s vs %s", total, last)
		}
		last = total
	}
}

func TestLedgerService_SubtractCancelledPropagatesReadFailure(t *testing.T) {
	ctx := context.Background()
	date := entity.LedgerDate(time.Now())
	sales := newFakeSaleRepo()
	ledger := newFakeLedgerRepo()
	svc := NewLedgerService(sales, ledger)

	ledger.totals[date] = d("50.00")
	ledger.failGet = true

	sale := &entity.Sale{SaleDate: time.Now(), NetAmount: d("20.00")}
	if err := svc.SubtractCancelled(ctx, sale); err == nil {
		t.Fatal("SubtractCancelled succeeded despite the read failure")
	}

	ledger.failGet = false
	if got := ledger.total(date); got.StringFixed(2) != "50.00" {
		t.Errorf("ledger = %s after failed read, want untouched 50.00", got.StringFixed(2))
	}
}
