package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/tk-rocha/garcom-api/internal/domain/entity"
)

// ProductRepository defines the read-only catalog contract. The catalog may
// be stale or cached; the core never writes to it.
type ProductRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	GetByCode(ctx context.Context, code int) (*entity.Product, error)
	List(ctx context.Context) ([]entity.Product, error)
}
