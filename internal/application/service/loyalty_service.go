package service

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tk-rocha/garcom-api/internal/domain/entity"
	"github.com/tk-rocha/garcom-api/internal/domain/repository"
	"github.com/tk-rocha/garcom-api/pkg/apperror"
)

// LoyaltyService accrues points for identified customers. One point per
// whole currency unit of a sale's net amount.
type LoyaltyService struct {
	loyaltyRepo repository.LoyaltyRepository
}

// NewLoyaltyService creates a new loyalty service
func NewLoyaltyService(loyaltyRepo repository.LoyaltyRepository) *LoyaltyService {
	return &LoyaltyService{loyaltyRepo: loyaltyRepo}
}

// Accrue credits points for a sale's net amount
func (s *LoyaltyService) Accrue(ctx context.Context, cpf string, netAmount decimal.Decimal) error {
	if cpf == "" {
		return apperror.NewValidationError("cpf is required")
	}
	points := netAmount.IntPart()
	if points <= 0 {
		return nil
	}
	return s.loyaltyRepo.AddPoints(ctx, cpf, points)
}

// Balance returns the account for a cpf, zero-valued if none exists yet
func (s *LoyaltyService) Balance(ctx context.Context, cpf string) (*entity.LoyaltyAccount, error) {
	account, err := s.loyaltyRepo.Get(ctx, cpf)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return &entity.LoyaltyAccount{CPF: cpf}, nil
	}
	return account, nil
}
