package repository

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tk-rocha/garcom-api/internal/domain/entity"
	"github.com/tk-rocha/garcom-api/internal/domain/enum"
	domainRepo "github.com/tk-rocha/garcom-api/internal/domain/repository"
	"github.com/tk-rocha/garcom-api/pkg/pagination"
	"gorm.io/gorm"
)

type saleRepository struct {
	db *gorm.DB
}

// NewSaleRepository creates a new sale repository
func NewSaleRepository(db *gorm.DB) domainRepo.SaleRepository {
	return &saleRepository{db: db}
}

// Finalize assigns the next cupom number and persists the sale, its items,
// its payments and the daily ledger increment in a single transaction. The
// counter upsert is atomic at the database, so concurrent terminals sharing
// the store can never draw the same cupom.
func (r *saleRepository) Finalize(ctx context.Context, sale *entity.Sale) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var next int64
		err := tx.Raw(`
			INSERT INTO fiscal_counters (name, value, updated_at)
			VALUES ('cupom', 1, NOW())
			ON CONFLICT (name)
			DO UPDATE SET value = fiscal_counters.value + 1, updated_at = NOW()
			RETURNING value
		`).Scan(&next).Error
		if err != nil {
			return err
		}
		sale.CupomNumber = next

		if err := tx.Create(sale).Error; err != nil {
			return err
		}

		date := entity.LedgerDate(sale.SaleDate)
		return tx.Exec(`
			INSERT INTO daily_ledgers (date, total, updated_at)
			VALUES (?, ?, NOW())
			ON CONFLICT (date)
			DO UPDATE SET total = daily_ledgers.total + EXCLUDED.total, updated_at = NOW()
		`, date, sale.NetAmount).Error
	})
}

func (r *saleRepository) GetByCupom(ctx context.Context, cupomNumber int64) (*entity.Sale, error) {
	var sale entity.Sale
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Payments").
		First(&sale, "cupom_number = ?", cupomNumber).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *saleRepository) UpdateStatus(ctx context.Context, cupomNumber int64, status enum.SaleStatus, reason string) error {
	updates := map[string]interface{}{
		"status": status,
	}
	if status == enum.SaleStatusCancelled {
		now := time.Now()
		updates["cancel_reason"] = reason
		updates["cancelled_at"] = &now
	}
	return r.db.WithContext(ctx).
		Model(&entity.Sale{}).
		Where("cupom_number = ?", cupomNumber).
		Updates(updates).Error
}

func (r *saleRepository) ListByDate(ctx context.Context, date string, params *pagination.PaginationParams) ([]entity.Sale, int64, error) {
	var sales []entity.Sale
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Sale{}).Where("sale_date = ?", date)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Preload("Items").
		Preload("Payments").
		Order("cupom_number DESC").
		Find(&sales).Error

	return sales, total, err
}

func (r *saleRepository) SumNetByDate(ctx context.Context, date string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(net_amount), 0)
		FROM sales
		WHERE sale_date = ? AND status != ?
	`, date, enum.SaleStatusCancelled).Scan(&sum).Error
	return sum, err
}
