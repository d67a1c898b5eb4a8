package repository

import (
	"context"

	"github.com/tk-rocha/garcom-api/internal/domain/entity"
)

// LoyaltyRepository defines the contract for loyalty point accounts
type LoyaltyRepository interface {
	AddPoints(ctx context.Context, cpf string, points int64) error
	Get(ctx context.Context, cpf string) (*entity.LoyaltyAccount, error)
}
