package order

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/domain"
	"storefront/internal/memdb"
)

func TestMemory_PlaceAndRead(t *testing.T) {
	ctx := context.Background()
	store := memdb.New()
	p := store.CreateProduct(domain.Product{Name: "Widget", Price: 10, Category: "c", Stock: 10})
	store.CreateCartItem(domain.CartItem{UserID: 3, ProductID: p.ID, Quantity: 2})

	repo := NewMemory(store)
	placed, items, err := repo.Place(ctx, PlaceInput{
		Order: domain.Order{UserID: 3, Total: 25.99, Status: domain.OrderStatusPending},
		Items: []ItemInput{{ProductID: p.ID, Quantity: 2, UnitPrice: 10}},
	})
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if placed.Total != 25.99 || len(items) != 1 || items[0].Price != 10 {
		t.Fatalf("unexpected placement %+v %+v", placed, items)
	}

	got, err := repo.GetByID(ctx, placed.ID)
	if err != nil || got.UserID != 3 {
		t.Fatalf("GetByID: %v %+v", err, got)
	}
	list, err := repo.ListByUser(ctx, 3)
	if err != nil || len(list) != 1 {
		t.Fatalf("ListByUser: %v %d", err, len(list))
	}
	lines, err := repo.ListItems(ctx, placed.ID)
	if err != nil || len(lines) != 1 {
		t.Fatalf("ListItems: %v %d", err, len(lines))
	}
}

func TestMemory_GetUnknownOrder(t *testing.T) {
	repo := NewMemory(memdb.New())
	if _, err := repo.GetByID(context.Background(), 42); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
