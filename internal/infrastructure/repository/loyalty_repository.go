package repository

import (
	"context"
	"errors"

	"github.com/tk-rocha/garcom-api/internal/domain/entity"
	domainRepo "github.com/tk-rocha/garcom-api/internal/domain/repository"
	"gorm.io/gorm"
)

type loyaltyRepository struct {
	db *gorm.DB
}

// NewLoyaltyRepository creates a new loyalty repository
func NewLoyaltyRepository(db *gorm.DB) domainRepo.LoyaltyRepository {
	return &loyaltyRepository{db: db}
}

func (r *loyaltyRepository) AddPoints(ctx context.Context, cpf string, points int64) error {
	return r.db.WithContext(ctx).Exec(`
		INSERT INTO loyalty_accounts (cpf, points, created_at, updated_at)
		VALUES (?, ?, NOW(), NOW())
		ON CONFLICT (cpf)
		DO UPDATE SET points = loyalty_accounts.points + EXCLUDED.points, updated_at = NOW()
	`, cpf, points).Error
}

func (r *loyaltyRepository) Get(ctx context.Context, cpf string) (*entity.LoyaltyAccount, error) {
	var account entity.LoyaltyAccount
	err := r.db.WithContext(ctx).First(&account, "cpf = ?", cpf).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}
