package cart

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/domain"
	"storefront/internal/memdb"
)

func TestMemory_CreateAndLookup(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory(memdb.New())

	created, err := repo.Create(ctx, domain.CartItem{UserID: 1, ProductID: 2, Quantity: 3, Color: "red"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("expected assigned id")
	}

	byKey, err := repo.GetByUserAndProduct(ctx, 1, 2)
	if err != nil {
		t.Fatalf("GetByUserAndProduct: %v", err)
	}
	if byKey.ID != created.ID || byKey.Color != "red" {
		t.Fatalf("lookup mismatch %+v", byKey)
	}

	if _, err := repo.GetByUserAndProduct(ctx, 1, 99); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestMemory_CreateDuplicateLineConflicts(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory(memdb.New())

	if _, err := repo.Create(ctx, domain.CartItem{UserID: 1, ProductID: 2, Quantity: 1}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	_, err := repo.Create(ctx, domain.CartItem{UserID: 1, ProductID: 2, Quantity: 1})
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestMemory_UpdatePartial(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory(memdb.New())

	created, err := repo.Create(ctx, domain.CartItem{UserID: 1, ProductID: 2, Quantity: 1, Color: "red"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	qty := 5
	updated, err := repo.Update(ctx, created.ID, UpdateInput{Quantity: &qty})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Quantity != 5 || updated.Color != "red" {
		t.Fatalf("partial update wrong: %+v", updated)
	}

	if _, err := repo.Update(ctx, 999, UpdateInput{Quantity: &qty}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestMemory_DeleteByUserClearsOnlyThatUser(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory(memdb.New())

	if _, err := repo.Create(ctx, domain.CartItem{UserID: 1, ProductID: 1, Quantity: 1}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := repo.Create(ctx, domain.CartItem{UserID: 1, ProductID: 2, Quantity: 1}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := repo.Create(ctx, domain.CartItem{UserID: 2, ProductID: 1, Quantity: 1}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := repo.DeleteByUser(ctx, 1); err != nil {
		t.Fatalf("DeleteByUser: %v", err)
	}
	mine, _ := repo.ListByUser(ctx, 1)
	theirs, _ := repo.ListByUser(ctx, 2)
	if len(mine) != 0 || len(theirs) != 1 {
		t.Fatalf("unexpected carts: mine=%d theirs=%d", len(mine), len(theirs))
	}

	// Second clear is a no-op, not an error.
	if err := repo.DeleteByUser(ctx, 1); err != nil {
		t.Fatalf("second DeleteByUser: %v", err)
	}
}
