package product

import (
	"context"
	"strings"

	"storefront/internal/domain"
	"storefront/internal/memdb"
)

type memoryRepo struct {
	db *memdb.DB
}

func NewMemory(db *memdb.DB) Repository {
	return &memoryRepo{db: db}
}

func (r *memoryRepo) Create(_ context.Context, p domain.Product) (*domain.Product, error) {
	created := r.db.CreateProduct(p)
	return &created, nil
}

func (r *memoryRepo) GetByID(_ context.Context, id int) (*domain.Product, error) {
	p, ok := r.db.GetProduct(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (r *memoryRepo) List(_ context.Context) ([]domain.Product, error) {
	return r.db.ListProducts(nil), nil
}

func (r *memoryRepo) ListByCategory(_ context.Context, category string) ([]domain.Product, error) {
	return r.db.ListProducts(func(p domain.Product) bool {
		return p.Category == category
	}), nil
}

func (r *memoryRepo) ListFeatured(_ context.Context, limit int) ([]domain.Product, error) {
	featured := r.db.ListProducts(func(p domain.Product) bool {
		return p.Featured
	})
	if limit > 0 && len(featured) > limit {
		featured = featured[:limit]
	}
	return featured, nil
}

func (r *memoryRepo) Search(_ context.Context, query string) ([]domain.Product, error) {
	q := strings.ToLower(query)
	return r.db.ListProducts(func(p domain.Product) bool {
		return strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Description), q) ||
			strings.Contains(strings.ToLower(p.Category), q)
	}), nil
}
