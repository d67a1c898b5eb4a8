package repository

import (
	"context"

	"github.com/tk-rocha/garcom-api/internal/domain/entity"
	domainRepo "github.com/tk-rocha/garcom-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type contextStateRepository struct {
	db *gorm.DB
}

// NewContextStateRepository creates a new context state repository
func NewContextStateRepository(db *gorm.DB) domainRepo.ContextStateRepository {
	return &contextStateRepository{db: db}
}

func (r *contextStateRepository) Save(ctx context.Context, state *entity.ContextState) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
		}).
		Create(state).Error
}

func (r *contextStateRepository) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Delete(&entity.ContextState{}, "key = ?", key).Error
}

func (r *contextStateRepository) LoadAll(ctx context.Context) ([]entity.ContextState, error) {
	var states []entity.ContextState
	err := r.db.WithContext(ctx).Find(&states).Error
	return states, err
}
