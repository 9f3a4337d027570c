package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"storefront/internal/domain"
	cartrepo "storefront/internal/repository/cart"
)

// Service is the cart aggregator: additive merge on add, quantity mutation,
// and the priced snapshot checkout consumes.
type Service struct {
	repo     cartRepo
	products productGetter

	mu        sync.Mutex
	userLocks map[int]*sync.Mutex
}

type cartRepo interface {
	Create(ctx context.Context, item domain.CartItem) (*domain.CartItem, error)
	GetByID(ctx context.Context, id int) (*domain.CartItem, error)
	GetByUserAndProduct(ctx context.Context, userID, productID int) (*domain.CartItem, error)
	ListByUser(ctx context.Context, userID int) ([]domain.CartItem, error)
	Update(ctx context.Context, id int, in cartrepo.UpdateInput) (*domain.CartItem, error)
	Delete(ctx context.Context, id int) error
	DeleteByUser(ctx context.Context, userID int) error
}

type productGetter interface {
	GetByID(ctx context.Context, id int) (*domain.Product, error)
}

func New(repo cartrepo.Repository, products productGetter) *Service {
	return &Service{
		repo:      repo,
		products:  products,
		userLocks: make(map[int]*sync.Mutex),
	}
}

// AddInput mirrors the add-to-cart payload.
type AddInput struct {
	UserID    int    `json:"userId"`
	ProductID int    `json:"productId"`
	Quantity  int    `json:"quantity"`
	Color     string `json:"color"`
	Size      string `json:"size"`
}

// Add merges into an existing line for (userID, productID) by adding the
// requested quantity, even when color or size differ; variant selectors are
// updated in place when provided but never split a line. Without an existing
// line a new one is created, defaulting quantity to 1 when unspecified.
//
// Adds for one user are serialized: lookup and write are separate repository
// calls, and without the lock two concurrent adds for the same pair could
// both take the create path or both merge from the same base quantity. The
// repository additionally enforces line uniqueness; a conflict from a writer
// outside this service retries into the merge path.
func (s *Service) Add(ctx context.Context, in AddInput) (*domain.CartItem, error) {
	if in.UserID <= 0 {
		return nil, domain.Invalid("userId", "required")
	}
	if _, err := s.products.GetByID(ctx, in.ProductID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("product %d: %w", in.ProductID, domain.ErrNotFound)
		}
		return nil, err
	}

	qty := in.Quantity
	if qty == 0 {
		qty = 1
	}

	lock := s.userLock(in.UserID)
	lock.Lock()
	defer lock.Unlock()

	for {
		existing, err := s.repo.GetByUserAndProduct(ctx, in.UserID, in.ProductID)
		switch {
		case err == nil:
			merged := existing.Quantity + qty
			if merged < 1 {
				return nil, domain.Invalid("quantity", "merged quantity must be at least 1")
			}
			upd := cartrepo.UpdateInput{Quantity: &merged}
			if in.Color != "" {
				upd.Color = &in.Color
			}
			if in.Size != "" {
				upd.Size = &in.Size
			}
			item, err := s.repo.Update(ctx, existing.ID, upd)
			if errors.Is(err, domain.ErrNotFound) {
				// Line removed since the lookup, start over.
				continue
			}
			return item, err
		case errors.Is(err, domain.ErrNotFound):
			if qty < 1 {
				return nil, domain.Invalid("quantity", "must be at least 1")
			}
			item, err := s.repo.Create(ctx, domain.CartItem{
				UserID:    in.UserID,
				ProductID: in.ProductID,
				Quantity:  qty,
				Color:     in.Color,
				Size:      in.Size,
			})
			if errors.Is(err, domain.ErrConflict) {
				// The line appeared since the lookup, merge into it.
				continue
			}
			return item, err
		default:
			return nil, err
		}
	}
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

func (s *Service) SetQuantity(ctx context.Context, id, quantity int) (*domain.CartItem, error) {
	if quantity < 1 {
		return nil, domain.Invalid("quantity", "must be at least 1")
	}
	return s.repo.Update(ctx, id, cartrepo.UpdateInput{Quantity: &quantity})
}

// Remove deletes one line. Removing an absent line is a no-op.
func (s *Service) Remove(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

// Clear empties the user's cart. Clearing an already empty cart is a no-op.
func (s *Service) Clear(ctx context.Context, userID int) error {
	return s.repo.DeleteByUser(ctx, userID)
}

// Line is a cart line joined with its live product record.
type Line struct {
	domain.CartItem
	Product domain.Product `json:"product"`
}

// Items joins each cart line with its product. A line referencing a product
// that no longer exists is a data-integrity failure, never silently skipped.
func (s *Service) Items(ctx context.Context, userID int) ([]Line, error) {
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	lines := make([]Line, 0, len(items))
	for _, item := range items {
		p, err := s.products.GetByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("cart item %d references missing product %d: %w", item.ID, item.ProductID, domain.ErrIntegrity)
			}
			return nil, err
		}
		lines = append(lines, Line{CartItem: item, Product: *p})
	}
	return lines, nil
}

// PricedLine is one snapshot line with its captured unit price.
type PricedLine struct {
	Line
	UnitPrice float64 `json:"unitPrice"`
	LineTotal float64 `json:"lineTotal"`
}

// Snapshot is a point-in-time pricing of a cart. It is a value: later price
// or cart changes do not affect an already-taken snapshot.
type Snapshot struct {
	UserID   int          `json:"userId"`
	Lines    []PricedLine `json:"lines"`
	Subtotal float64      `json:"subtotal"`
}

// PriceSnapshot prices every line at quantity times the product's current
// unit price (discounted price when set) and sums the subtotal.
func (s *Service) PriceSnapshot(ctx context.Context, userID int) (*Snapshot, error) {
	lines, err := s.Items(ctx, userID)
	if err != nil {
		return nil, err
	}
	snap := &Snapshot{UserID: userID, Lines: make([]PricedLine, 0, len(lines))}
	for _, line := range lines {
		unit := line.Product.UnitPrice()
		total := domain.Round2(unit * float64(line.Quantity))
		snap.Lines = append(snap.Lines, PricedLine{Line: line, UnitPrice: unit, LineTotal: total})
		snap.Subtotal = domain.Round2(snap.Subtotal + total)
	}
	return snap, nil
}
