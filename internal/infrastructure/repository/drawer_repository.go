package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tk-rocha/garcom-api/internal/domain/entity"
	domainRepo "github.com/tk-rocha/garcom-api/internal/domain/repository"
	"gorm.io/gorm"
)

type drawerRepository struct {
	db *gorm.DB
}

// NewDrawerRepository creates a new drawer repository
func NewDrawerRepository(db *gorm.DB) domainRepo.DrawerRepository {
	return &drawerRepository{db: db}
}

func (r *drawerRepository) Create(ctx context.Context, session *entity.DrawerSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *drawerRepository) GetOpen(ctx context.Context) (*entity.DrawerSession, error) {
	var session entity.DrawerSession
	err := r.db.WithContext(ctx).First(&session, "open = ?", true).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *drawerRepository) Update(ctx context.Context, session *entity.DrawerSession) error {
	return r.db.WithContext(ctx).Save(session).Error
}

func (r *drawerRepository) AddMovement(ctx context.Context, movement *entity.DrawerMovement) error {
	return r.db.WithContext(ctx).Create(movement).Error
}

func (r *drawerRepository) SumMovements(ctx context.Context, sessionID uuid.UUID) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(amount), 0)
		FROM drawer_movements
		WHERE session_id = ?
	`, sessionID).Scan(&sum).Error
	return sum, err
}
