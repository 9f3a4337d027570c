package category

import (
	"context"

	"storefront/internal/domain"
)

type Repository interface {
	// Create stores a new category. A taken name yields domain.ErrConflict.
	Create(ctx context.Context, c domain.Category) (*domain.Category, error)
	GetByName(ctx context.Context, name string) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
}
