package category

import (
	"context"

	"storefront/internal/domain"
	"storefront/internal/memdb"
)

type memoryRepo struct {
	db *memdb.DB
}

func NewMemory(db *memdb.DB) Repository {
	return &memoryRepo{db: db}
}

func (r *memoryRepo) Create(_ context.Context, c domain.Category) (*domain.Category, error) {
	if _, ok := r.db.GetCategoryByName(c.Name); ok {
		return nil, domain.ErrConflict
	}
	created := r.db.CreateCategory(c)
	return &created, nil
}

func (r *memoryRepo) GetByName(_ context.Context, name string) (*domain.Category, error) {
	c, ok := r.db.GetCategoryByName(name)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (r *memoryRepo) List(_ context.Context) ([]domain.Category, error) {
	return r.db.ListCategories(), nil
}
