package user

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

func (r *memoryRepo) Create(_ context.Context, u domain.User) (*domain.User, error) {
	if _, ok := r.db.GetUserByUsername(u.Username); ok {
		return nil, domain.ErrConflict
	}
	created := r.db.CreateUser(u)
	return &created, nil
}

func (r *memoryRepo) GetByID(_ context.Context, id int) (*domain.User, error) {
	u, ok := r.db.GetUser(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (r *memoryRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := r.db.GetUserByUsername(username)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (r *memoryRepo) Update(_ context.Context, id int, in UpdateInput) (*domain.User, error) {
	u, ok := r.db.UpdateUser(id, func(u *domain.User) {
		if in.Name != nil {
			u.Name = *in.Name
		}
		if in.Email != nil {
			u.Email = *in.Email
		}
		if in.Address != nil {
			u.Address = *in.Address
		}
		if in.City != nil {
			u.City = *in.City
		}
		if in.State != nil {
			u.State = *in.State
		}
		if in.ZipCode != nil {
			u.ZipCode = *in.ZipCode
		}
	})
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}
