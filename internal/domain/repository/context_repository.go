package repository

import (
	"context"

	"github.com/tk-rocha/garcom-api/internal/domain/entity"
)

// ContextStateRepository persists order-context snapshots so in-progress
// table and tab orders survive a process restart.
type ContextStateRepository interface {
	Save(ctx context.Context, state *entity.ContextState) error
	Delete(ctx context.Context, key string) error
	LoadAll(ctx context.Context) ([]entity.ContextState, error)
}
