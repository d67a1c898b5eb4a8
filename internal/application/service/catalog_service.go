package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/tk-rocha/garcom-api/internal/domain/entity"
	"github.com/tk-rocha/garcom-api/internal/domain/repository"
	"github.com/tk-rocha/garcom-api/pkg/apperror"
)

// CatalogService is the boundary to the read-only product catalog. It also
// owns the id mapping: keypad product codes (PLU) resolve to the canonical
// UUID here, so the cart never deals in anything but product ids.
type CatalogService struct {
	productRepo repository.ProductRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(productRepo repository.ProductRepository) *CatalogService {
	return &CatalogService{productRepo: productRepo}
}

// GetProduct looks a product up by its canonical id
func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.Active {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// ResolveCode maps a numeric keypad code to its product
func (s *CatalogService) ResolveCode(ctx context.Context, code int) (*entity.Product, error) {
	product, err := s.productRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.Active {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// ListProducts returns the active catalog
func (s *CatalogService) ListProducts(ctx context.Context) ([]entity.Product, error) {
	return s.productRepo.List(ctx)
}
