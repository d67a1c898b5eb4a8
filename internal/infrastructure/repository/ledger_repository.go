package repository

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"github.com/tk-rocha/garcom-api/internal/domain/entity"
	domainRepo "github.com/tk-rocha/garcom-api/internal/domain/repository"
	"gorm.io/gorm"
)

type ledgerRepository struct {
	db *gorm.DB
}

// NewLedgerRepository creates a new ledger repository
func NewLedgerRepository(db *gorm.DB) domainRepo.LedgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) Get(ctx context.Context, date string) (*entity.DailyLedger, error) {
	var ledger entity.DailyLedger
	err := r.db.WithContext(ctx).First(&ledger, "date = ?", date).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ledger, nil
}

func (r *ledgerRepository) Upsert(ctx context.Context, date string, total decimal.Decimal) error {
	return r.db.WithContext(ctx).Exec(`
		INSERT INTO daily_ledgers (date, total, updated_at)
		VALUES (?, ?, NOW())
		ON CONFLICT (date)
		DO UPDATE SET total = EXCLUDED.total, updated_at = NOW()
	`, date, total).Error
}
