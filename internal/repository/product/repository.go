package product

import (
	"context"

	"storefront/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
	GetByID(ctx context.Context, id int) (*domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	// ListByCategory matches the category string exactly, case-sensitively.
	ListByCategory(ctx context.Context, category string) ([]domain.Product, error)
	// ListFeatured truncates to the first limit records in store order when
	// limit > 0.
	ListFeatured(ctx context.Context, limit int) ([]domain.Product, error)
	// Search matches a case-insensitive substring against name, description
	// or category.
	Search(ctx context.Context, query string) ([]domain.Product, error)
}
