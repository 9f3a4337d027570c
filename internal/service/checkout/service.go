package checkout

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"storefront/internal/domain"
	orderrepo "storefront/internal/repository/order"
	cartsvc "storefront/internal/service/cart"
)

// Shipping tiers. Free shipping requires the subtotal to clear
// FreeShippingMin; that is re-validated here, not trusted from the UI.
const (
	ShippingFree     = "free"
	ShippingStandard = "standard"
	ShippingExpress  = "express"

	FreeShippingMin = 50.00
	DefaultTaxRate  = 0.08
)

var shippingCosts = map[string]float64{
	ShippingFree:     0,
	ShippingStandard: 5.99,
	ShippingExpress:  12.99,
}

// Service compiles a priced cart snapshot into a persisted order. The
// multi-step commit is delegated to the order repository's atomic placement
// boundary; this layer serializes checkouts per user and deduplicates
// retries by idempotency token.
type Service struct {
	carts   snapshotter
	orders  orderRepo
	taxRate float64

	mu        sync.Mutex
	userLocks map[int]*sync.Mutex
	placed    map[string]receipt // by idempotency token
}

// receipt records what a token's original placement answered, so a replay
// reproduces the full payload, not just the order.
type receipt struct {
	orderID  int
	subtotal float64
	shipping float64
	tax      float64
}

type snapshotter interface {
	PriceSnapshot(ctx context.Context, userID int) (*cartsvc.Snapshot, error)
}

type orderRepo interface {
	Place(ctx context.Context, in orderrepo.PlaceInput) (*domain.Order, []domain.OrderItem, error)
	GetByID(ctx context.Context, id int) (*domain.Order, error)
	ListByUser(ctx context.Context, userID int) ([]domain.Order, error)
	ListItems(ctx context.Context, orderID int) ([]domain.OrderItem, error)
}

func New(carts snapshotter, orders orderrepo.Repository, taxRate float64) *Service {
	if taxRate <= 0 {
		taxRate = DefaultTaxRate
	}
	return &Service{
		carts:     carts,
		orders:    orders,
		taxRate:   taxRate,
		userLocks: make(map[int]*sync.Mutex),
		placed:    make(map[string]receipt),
	}
}

// PlaceInput mirrors the place-order payload. PaymentMethod is accepted but
// not verified against any processor.
type PlaceInput struct {
	UserID         int    `json:"userId"`
	Address        string `json:"address"`
	City           string `json:"city"`
	State          string `json:"state"`
	ZipCode        string `json:"zipCode"`
	ShippingMethod string `json:"shippingMethod"`
	PaymentMethod  string `json:"paymentMethod"`
	IdempotencyKey string `json:"idempotencyKey"`
}

// PlacedOrder is the result of a successful checkout.
type PlacedOrder struct {
	Order    domain.Order       `json:"order"`
	Items    []domain.OrderItem `json:"items"`
	Subtotal float64            `json:"subtotal"`
	Shipping float64            `json:"shipping"`
	Tax      float64            `json:"tax"`
}

// Place runs the checkout: price the cart, derive tax and shipping, then
// commit order, items, stock decrements, and cart clear atomically. A repeat
// of the same idempotency token returns the originally placed order without
// re-executing anything.
func (s *Service) Place(ctx context.Context, in PlaceInput) (*PlacedOrder, error) {
	if in.UserID <= 0 {
		return nil, domain.Invalid("userId", "required")
	}
	for field, v := range map[string]string{
		"address": in.Address,
		"city":    in.City,
		"state":   in.State,
		"zipCode": in.ZipCode,
	} {
		if strings.TrimSpace(v) == "" {
			return nil, domain.Invalid(field, "required")
		}
	}
	method := in.ShippingMethod
	if method == "" {
		method = ShippingStandard
	}
	shipping, ok := shippingCosts[method]
	if !ok {
		return nil, domain.Invalid("shippingMethod", "unknown method "+method)
	}

	token := in.IdempotencyKey
	if token == "" {
		token = uuid.NewString()
	}

	lock := s.userLock(in.UserID)
	lock.Lock()
	defer lock.Unlock()

	if placed, ok := s.placedOrder(ctx, token); ok {
		return placed, nil
	}

	snap, err := s.carts.PriceSnapshot(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if len(snap.Lines) == 0 {
		return nil, domain.Invalid("cart", "cart is empty")
	}
	if method == ShippingFree && snap.Subtotal < FreeShippingMin {
		return nil, domain.Invalid("shippingMethod", "free shipping requires a larger subtotal")
	}

	tax := domain.Round2(snap.Subtotal * s.taxRate)
	total := domain.Round2(snap.Subtotal + shipping + tax)

	items := make([]orderrepo.ItemInput, 0, len(snap.Lines))
	for _, line := range snap.Lines {
		items = append(items, orderrepo.ItemInput{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}

	order, created, err := s.orders.Place(ctx, orderrepo.PlaceInput{
		Order: domain.Order{
			UserID:    in.UserID,
			Total:     total,
			Status:    domain.OrderStatusPending,
			Address:   in.Address,
			City:      in.City,
			State:     in.State,
			ZipCode:   in.ZipCode,
			CreatedAt: time.Now().UTC(),
		},
		Items: items,
	})
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.placed[token] = receipt{orderID: order.ID, subtotal: snap.Subtotal, shipping: shipping, tax: tax}
	s.mu.Unlock()

	return &PlacedOrder{
		Order:    *order,
		Items:    created,
		Subtotal: snap.Subtotal,
		Shipping: shipping,
		Tax:      tax,
	}, nil
}

func (s *Service) Orders(ctx context.Context, userID int) ([]domain.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

func (s *Service) Order(ctx context.Context, id int) (*domain.Order, error) {
	return s.orders.GetByID(ctx, id)
}

func (s *Service) OrderItems(ctx context.Context, orderID int) ([]domain.OrderItem, error) {
	return s.orders.ListItems(ctx, orderID)
}

func (s *Service) userLock(userID int) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.userLocks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.userLocks[userID] = lock
	}
	return lock
}

func (s *Service) placedOrder(ctx context.Context, token string) (*PlacedOrder, bool) {
	s.mu.Lock()
	rec, ok := s.placed[token]
	s.mu.Unlock()
	if !ok {
		return nil, false
	}
	order, err := s.orders.GetByID(ctx, rec.orderID)
	if err != nil {
		return nil, false
	}
	items, err := s.orders.ListItems(ctx, rec.orderID)
	if err != nil {
		return nil, false
	}
	return &PlacedOrder{
		Order:    *order,
		Items:    items,
		Subtotal: rec.subtotal,
		Shipping: rec.shipping,
		Tax:      rec.tax,
	}, true
}
