package order

import (
	"context"

	"storefront/internal/domain"
)

// ItemInput is one priced line of a checkout: the unit price is the value
// frozen in the snapshot, never re-read from the product.
type ItemInput struct {
	ProductID int
	Quantity  int
	UnitPrice float64
}

// PlaceInput is everything the atomic placement boundary commits: the order
// record, its items, the matching stock decrements, and the clearing of the
// owning user's cart.
type PlaceInput struct {
	Order domain.Order
	Items []ItemInput
}

type Repository interface {
	// Place commits order, items, stock decrements, and cart clear as one
	// all-or-nothing unit. Insufficient stock yields a validation error and
	// a vanished product domain.ErrIntegrity; in both cases nothing is
	// written.
	Place(ctx context.Context, in PlaceInput) (*domain.Order, []domain.OrderItem, error)
	GetByID(ctx context.Context, id int) (*domain.Order, error)
	ListByUser(ctx context.Context, userID int) ([]domain.Order, error)
	ListItems(ctx context.Context, orderID int) ([]domain.OrderItem, error)
}
