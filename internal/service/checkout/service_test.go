package checkout

import (
	"context"
	"math"
	"sync"
	"testing"

	"storefront/internal/domain"
	"storefront/internal/memdb"
	cartrepo "storefront/internal/repository/cart"
	orderrepo "storefront/internal/repository/order"
	productrepo "storefront/internal/repository/product"
	cartsvc "storefront/internal/service/cart"
)

type fixture struct {
	store    *memdb.DB
	carts    *cartsvc.Service
	checkout *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memdb.New()
	carts := cartsvc.New(cartrepo.NewMemory(store), productrepo.NewMemory(store))
	return &fixture{
		store:    store,
		carts:    carts,
		checkout: New(carts, orderrepo.NewMemory(store), 0.08),
	}
}

func (f *fixture) addToCart(t *testing.T, userID, productID, qty int) {
	t.Helper()
	if _, err := f.carts.Add(context.Background(), cartsvc.AddInput{UserID: userID, ProductID: productID, Quantity: qty}); err != nil {
		t.Fatalf("add to cart: %v", err)
	}
}

func shippingInput(userID int) PlaceInput {
	return PlaceInput{
		UserID:         userID,
		Address:        "1 Main St",
		City:           "Springfield",
		State:          "IL",
		ZipCode:        "62701",
		ShippingMethod: ShippingStandard,
		PaymentMethod:  "card",
	}
}

func TestPlaceComputesDiscountedTotals(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	discounted := 80.0
	p := f.store.CreateProduct(domain.Product{Name: "Sneaker", Price: 100, DiscountedPrice: &discounted, Category: "c", Stock: 10})

	f.addToCart(t, 1, p.ID, 2)
	snap, err := f.carts.PriceSnapshot(ctx, 1)
	if err != nil || math.Abs(snap.Subtotal-160.00) > 1e-9 {
		t.Fatalf("subtotal after qty 2: %v %v", err, snap.Subtotal)
	}

	f.addToCart(t, 1, p.ID, 1)
	placed, err := f.checkout.Place(ctx, shippingInput(1))
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	// subtotal 240.00, tax 19.20, standard shipping 5.99
	if math.Abs(placed.Subtotal-240.00) > 1e-9 {
		t.Fatalf("subtotal: %v", placed.Subtotal)
	}
	if math.Abs(placed.Tax-19.20) > 1e-9 {
		t.Fatalf("tax: %v", placed.Tax)
	}
	if math.Abs(placed.Order.Total-265.19) > 1e-9 {
		t.Fatalf("total: %v", placed.Order.Total)
	}
	if placed.Order.Status != domain.OrderStatusPending {
		t.Fatalf("status: %s", placed.Order.Status)
	}
	if len(placed.Items) != 1 || placed.Items[0].Quantity != 3 || placed.Items[0].Price != 80 {
		t.Fatalf("items: %+v", placed.Items)
	}

	after, err := f.carts.Items(ctx, 1)
	if err != nil || len(after) != 0 {
		t.Fatalf("cart not cleared: %v %d", err, len(after))
	}
}

func TestPlaceEmptyCartRejected(t *testing.T) {
	f := newFixture(t)
	_, err := f.checkout.Place(context.Background(), shippingInput(1))
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	orders, _ := f.checkout.Orders(context.Background(), 1)
	if len(orders) != 0 {
		t.Fatalf("order created from empty cart")
	}
}

func TestPlaceRequiresAddressFields(t *testing.T) {
	f := newFixture(t)
	in := shippingInput(1)
	in.City = ""
	if _, err := f.checkout.Place(context.Background(), in); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestPlaceUnknownShippingMethod(t *testing.T) {
	f := newFixture(t)
	in := shippingInput(1)
	in.ShippingMethod = "overnight-drone"
	if _, err := f.checkout.Place(context.Background(), in); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestFreeShippingRequiresMinimumSubtotal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.store.CreateProduct(domain.Product{Name: "Trinket", Price: 10, Category: "c", Stock: 10})
	f.addToCart(t, 1, p.ID, 1)

	in := shippingInput(1)
	in.ShippingMethod = ShippingFree
	if _, err := f.checkout.Place(ctx, in); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}

	// Cart untouched by the rejected attempt.
	lines, _ := f.carts.Items(ctx, 1)
	if len(lines) != 1 {
		t.Fatalf("cart modified by rejected checkout")
	}

	f.addToCart(t, 1, p.ID, 5)
	placed, err := f.checkout.Place(ctx, in)
	if err != nil {
		t.Fatalf("Place with qualifying subtotal: %v", err)
	}
	// subtotal 60.00, tax 4.80, free shipping
	if math.Abs(placed.Order.Total-64.80) > 1e-9 {
		t.Fatalf("total: %v", placed.Order.Total)
	}
}

func TestOrderItemPriceIsFrozen(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.store.CreateProduct(domain.Product{Name: "Lamp", Price: 100, Category: "c", Stock: 10})
	f.addToCart(t, 1, p.ID, 1)

	placed, err := f.checkout.Place(ctx, shippingInput(1))
	if err != nil {
		t.Fatalf("Place: %v", err)
	}

	f.store.UpdateProduct(p.ID, func(p *domain.Product) { p.Price = 500 })

	items, err := f.checkout.OrderItems(ctx, placed.Order.ID)
	if err != nil || len(items) != 1 {
		t.Fatalf("OrderItems: %v %d", err, len(items))
	}
	if items[0].Price != 100 {
		t.Fatalf("order item price changed with product price: %v", items[0].Price)
	}
}

func TestPlaceDecrementsStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.store.CreateProduct(domain.Product{Name: "Mug", Price: 10, Category: "c", Stock: 3})
	f.addToCart(t, 1, p.ID, 2)

	if _, err := f.checkout.Place(ctx, shippingInput(1)); err != nil {
		t.Fatalf("Place: %v", err)
	}
	got, _ := f.store.GetProduct(p.ID)
	if got.Stock != 1 {
		t.Fatalf("stock after order: %d", got.Stock)
	}

	// A second attempt wanting more than the remaining stock fails whole.
	f.addToCart(t, 1, p.ID, 2)
	if _, err := f.checkout.Place(ctx, shippingInput(1)); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	lines, _ := f.carts.Items(ctx, 1)
	if len(lines) != 1 {
		t.Fatalf("cart lost on failed checkout")
	}
}

func TestIdempotencyKeyReturnsOriginalOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.store.CreateProduct(domain.Product{Name: "Book", Price: 15, Category: "c", Stock: 10})
	f.addToCart(t, 1, p.ID, 1)

	in := shippingInput(1)
	in.IdempotencyKey = "retry-token-1"
	first, err := f.checkout.Place(ctx, in)
	if err != nil {
		t.Fatalf("first Place: %v", err)
	}
	second, err := f.checkout.Place(ctx, in)
	if err != nil {
		t.Fatalf("replayed Place: %v", err)
	}
	if second.Order.ID != first.Order.ID {
		t.Fatalf("replay created a new order: %d vs %d", second.Order.ID, first.Order.ID)
	}
	// The replay answers the same breakdown as the original call.
	if second.Subtotal != first.Subtotal || second.Shipping != first.Shipping || second.Tax != first.Tax {
		t.Fatalf("replay breakdown differs: %+v vs %+v", second, first)
	}
	if second.Order.Total != first.Order.Total || len(second.Items) != len(first.Items) {
		t.Fatalf("replay order differs: %+v vs %+v", second, first)
	}
	orders, _ := f.checkout.Orders(ctx, 1)
	if len(orders) != 1 {
		t.Fatalf("expected exactly one order, got %d", len(orders))
	}
}

func TestConcurrentCheckoutsForSameUserPlaceOneOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.store.CreateProduct(domain.Product{Name: "Chair", Price: 40, Category: "c", Stock: 10})
	f.addToCart(t, 1, p.ID, 1)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.checkout.Place(ctx, shippingInput(1))
		}(i)
	}
	wg.Wait()

	var placed, rejected int
	for _, err := range errs {
		switch {
		case err == nil:
			placed++
		case domain.IsValidation(err):
			rejected++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if placed != 1 || rejected != 1 {
		t.Fatalf("expected one placement and one empty-cart rejection, got %d/%d", placed, rejected)
	}
	orders, _ := f.checkout.Orders(ctx, 1)
	if len(orders) != 1 {
		t.Fatalf("expected one order, got %d", len(orders))
	}
}
