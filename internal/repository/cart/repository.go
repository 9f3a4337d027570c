package cart

import (
	"context"

	"storefront/internal/domain"
)

// UpdateInput carries a partial cart-line update; nil fields are left as-is.
type UpdateInput struct {
	Quantity *int
	Color    *string
	Size     *string
}

type Repository interface {
	Create(ctx context.Context, item domain.CartItem) (*domain.CartItem, error)
	GetByID(ctx context.Context, id int) (*domain.CartItem, error)
	// GetByUserAndProduct resolves the merge key: at most one line exists per
	// (userID, productID).
	GetByUserAndProduct(ctx context.Context, userID, productID int) (*domain.CartItem, error)
	ListByUser(ctx context.Context, userID int) ([]domain.CartItem, error)
	Update(ctx context.Context, id int, in UpdateInput) (*domain.CartItem, error)
	// Delete is idempotent: removing an absent line is not an error.
	Delete(ctx context.Context, id int) error
	// DeleteByUser clears the whole cart atomically and is idempotent.
	DeleteByUser(ctx context.Context, userID int) error
}
