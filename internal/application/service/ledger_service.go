package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tk-rocha/garcom-api/internal/domain/entity"
	"github.com/tk-rocha/garcom-api/internal/domain/repository"
	"github.com/tk-rocha/garcom-api/pkg/money"
)

// driftTolerance is the largest cache/recompute divergence tolerated before
// the cached ledger value is overwritten.
var driftTolerance = decimal.RequireFromString("0.01")

// LedgerService reconciles the cached daily totals against the sales table.
// The cache is a display optimization only; every read self-heals.
type LedgerService struct {
	saleRepo   repository.SaleRepository
	ledgerRepo repository.LedgerRepository
}

// NewLedgerService creates a new ledger service
func NewLedgerService(saleRepo repository.SaleRepository, ledgerRepo repository.LedgerRepository) *LedgerService {
	return &LedgerService{saleRepo: saleRepo, ledgerRepo: ledgerRepo}
}

// RecomputeDailyTotal sums the net amounts of non-cancelled sales for the
// date and overwrites the cached value when it has drifted by more than the
// tolerance. Idempotent and safe to call on every read.
func (s *LedgerService) RecomputeDailyTotal(ctx context.Context, date string) (decimal.Decimal, error) {
	authoritative, err := s.saleRepo.SumNetByDate(ctx, date)
	if err != nil {
		return decimal.Zero, err
	}
	authoritative = money.Round2(authoritative)

	cached := decimal.Zero
	if ledger, err := s.ledgerRepo.Get(ctx, date); err == nil && ledger != nil {
		cached = ledger.Total
	}

	if authoritative.Sub(cached).Abs().GreaterThan(driftTolerance) {
		if err := s.ledgerRepo.Upsert(ctx, date, authoritative); err != nil {
			return decimal.Zero, err
		}
	}
	return authoritative, nil
}

// TodayTotal returns the reconciled total for the current date
func (s *LedgerService) TodayTotal(ctx context.Context) (decimal.Decimal, error) {
	return s.RecomputeDailyTotal(ctx, entity.LedgerDate(time.Now()))
}

// SubtractCancelled removes a cancelled sale's net amount from its original
// date bucket, floored at zero. Callers guarantee the sale transitions to
// cancelled exactly once, which keeps the subtraction single-shot.
func (s *LedgerService) SubtractCancelled(ctx context.Context, sale *entity.Sale) error {
	date := entity.LedgerDate(sale.SaleDate)
	ledger, err := s.ledgerRepo.Get(ctx, date)
	if err != nil {
		return err
	}
	cached := decimal.Zero
	if ledger != nil {
		cached = ledger.Total
	}
	return s.ledgerRepo.Upsert(ctx, date, money.FloorZero(cached.Sub(sale.NetAmount)))
}
