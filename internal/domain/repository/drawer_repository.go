package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tk-rocha/garcom-api/internal/domain/entity"
)

// DrawerRepository defines the contract for cash drawer sessions
type DrawerRepository interface {
	Create(ctx context.Context, session *entity.DrawerSession) error
	GetOpen(ctx context.Context) (*entity.DrawerSession, error)
	Update(ctx context.Context, session *entity.DrawerSession) error
	AddMovement(ctx context.Context, movement *entity.DrawerMovement) error
	// SumMovements totals all movements of a session (reversals are negative)
	SumMovements(ctx context.Context, sessionID uuid.UUID) (decimal.Decimal, error)
}
