package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tk-rocha/garcom-api/internal/domain/entity"
	"github.com/tk-rocha/garcom-api/internal/domain/enum"
	"github.com/tk-rocha/garcom-api/pkg/pagination"
)

// SaleRepository defines the durable-store contract for finalized sales.
// Implementations must treat failures as retryable: a failed Finalize leaves
// no partial state behind (no sale without a cupom, no consumed cupom without
// a sale).
type SaleRepository interface {
	// Finalize atomically assigns the next cupom number from the gapless
	// fiscal sequence, persists the sale with its frozen items and payments,
	// and adds the net amount to the daily ledger, all in one transaction.
	Finalize(ctx context.Context, sale *entity.Sale) error
	GetByCupom(ctx context.Context, cupomNumber int64) (*entity.Sale, error)
	UpdateStatus(ctx context.Context, cupomNumber int64, status enum.SaleStatus, reason string) error
	ListByDate(ctx context.Context, date string, params *pagination.PaginationParams) ([]entity.Sale, int64, error)
	// SumNetByDate sums net amounts of non-cancelled sales for a date. This
	// is the authoritative daily total; the ledger is only a cache.
	SumNetByDate(ctx context.Context, date string) (decimal.Decimal, error)
}

// LedgerRepository defines the contract for the cached daily totals
type LedgerRepository interface {
	Get(ctx context.Context, date string) (*entity.DailyLedger, error)
	Upsert(ctx context.Context, date string, total decimal.Decimal) error
}
