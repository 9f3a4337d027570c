package user

import (
	"context"

	"storefront/internal/domain"
)

// UpdateInput carries a partial profile update; nil fields are left as-is.
type UpdateInput struct {
	Name    *string
	Email   *string
	Address *string
	City    *string
	State   *string
	ZipCode *string
}

type Repository interface {
	// Create stores a new user. A taken username yields domain.ErrConflict.
	Create(ctx context.Context, u domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id int) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Update(ctx context.Context, id int, in UpdateInput) (*domain.User, error)
}
