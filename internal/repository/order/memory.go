package order

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

func (r *memoryRepo) Place(_ context.Context, in PlaceInput) (*domain.Order, []domain.OrderItem, error) {
	items := make([]domain.OrderItem, 0, len(in.Items))
	for _, line := range in.Items {
		items = append(items, domain.OrderItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     line.UnitPrice,
		})
	}
	placed, created, err := r.db.PlaceOrder(in.Order, items)
	if err != nil {
		return nil, nil, err
	}
	return &placed, created, nil
}

func (r *memoryRepo) GetByID(_ context.Context, id int) (*domain.Order, error) {
	o, ok := r.db.GetOrder(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &o, nil
}

func (r *memoryRepo) ListByUser(_ context.Context, userID int) ([]domain.Order, error) {
	return r.db.ListOrders(userID), nil
}

func (r *memoryRepo) ListItems(_ context.Context, orderID int) ([]domain.OrderItem, error) {
	return r.db.ListOrderItems(orderID), nil
}
