package cart

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

func (r *memoryRepo) Create(_ context.Context, item domain.CartItem) (*domain.CartItem, error) {
	created, ok := r.db.CreateCartItem(item)
	if !ok {
		return nil, domain.ErrConflict
	}
	return &created, nil
}

func (r *memoryRepo) GetByID(_ context.Context, id int) (*domain.CartItem, error) {
	item, ok := r.db.GetCartItem(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &item, nil
}

func (r *memoryRepo) GetByUserAndProduct(_ context.Context, userID, productID int) (*domain.CartItem, error) {
	item, ok := r.db.FindCartItem(userID, productID)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &item, nil
}

func (r *memoryRepo) ListByUser(_ context.Context, userID int) ([]domain.CartItem, error) {
	return r.db.ListCartItems(userID), nil
}

func (r *memoryRepo) Update(_ context.Context, id int, in UpdateInput) (*domain.CartItem, error) {
	item, ok := r.db.UpdateCartItem(id, func(item *domain.CartItem) {
		if in.Quantity != nil {
			item.Quantity = *in.Quantity
		}
		if in.Color != nil {
			item.Color = *in.Color
		}
		if in.Size != nil {
			item.Size = *in.Size
		}
	})
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &item, nil
}

func (r *memoryRepo) Delete(_ context.Context, id int) error {
	r.db.DeleteCartItem(id)
	return nil
}

func (r *memoryRepo) DeleteByUser(_ context.Context, userID int) error {
	r.db.DeleteCartItemsForUser(userID)
	return nil
}
