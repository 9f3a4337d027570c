package memdb

import (
	"sync"

	"storefront/internal/domain"
)

// DB is the volatile entity store: one map per collection, a monotonically
// increasing id counter per collection, a single mutex around every logical
// operation. It is constructed once at process start and injected into the
// repositories; nothing here is a package global.
//
// Every accessor returns copies, so callers can never mutate stored records
// without going back through the store.
type DB struct {
	mu sync.RWMutex

	users      map[int]domain.User
	products   map[int]domain.Product
	categories map[int]domain.Category
	cartItems  map[int]domain.CartItem
	orders     map[int]domain.Order
	orderItems map[int]domain.OrderItem

	nextUserID      int
	nextProductID   int
	nextCategoryID  int
	nextCartItemID  int
	nextOrderID     int
	nextOrderItemID int
}

func New() *DB {
	return &DB{
		users:      make(map[int]domain.User),
		products:   make(map[int]domain.Product),
		categories: make(map[int]domain.Category),
		cartItems:  make(map[int]domain.CartItem),
		orders:     make(map[int]domain.Order),
		orderItems: make(map[int]domain.OrderItem),

		nextUserID:      1,
		nextProductID:   1,
		nextCategoryID:  1,
		nextCartItemID:  1,
		nextOrderID:     1,
		nextOrderItemID: 1,
	}
}

// Users

func (db *DB) CreateUser(u domain.User) domain.User {
	db.mu.Lock()
	defer db.mu.Unlock()
	u.ID = db.nextUserID
	db.nextUserID++
	db.users[u.ID] = u
	return u
}

func (db *DB) GetUser(id int) (domain.User, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	u, ok := db.users[id]
	return u, ok
}

func (db *DB) GetUserByUsername(username string) (domain.User, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	for _, u := range db.users {
		if u.Username == username {
			return u, true
		}
	}
	return domain.User{}, false
}

// UpdateUser applies fn to the stored record under the write lock. It
// reports false when the id is unknown.
func (db *DB) UpdateUser(id int, fn func(*domain.User)) (domain.User, bool) {
	db.mu.Lock()
	defer db.mu.Unlock()
	u, ok := db.users[id]
	if !ok {
		return domain.User{}, false
	}
	fn(&u)
	u.ID = id
	db.users[id] = u
	return u, true
}

// Products

func (db *DB) CreateProduct(p domain.Product) domain.Product {
	db.mu.Lock()
	defer db.mu.Unlock()
	p.ID = db.nextProductID
	db.nextProductID++
	db.products[p.ID] = p
	return p
}

func (db *DB) GetProduct(id int) (domain.Product, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	p, ok := db.products[id]
	return p, ok
}

func (db *DB) UpdateProduct(id int, fn func(*domain.Product)) (domain.Product, bool) {
	db.mu.Lock()
	defer db.mu.Unlock()
	p, ok := db.products[id]
	if !ok {
		return domain.Product{}, false
	}
	fn(&p)
	p.ID = id
	db.products[id] = p
	return p, true
}

// ListProducts returns a snapshot of every product matching the predicate.
// A nil predicate matches everything. Order is not contractual.
func (db *DB) ListProducts(match func(domain.Product) bool) []domain.Product {
	db.mu.RLock()
	defer db.mu.RUnlock()
	out := make([]domain.Product, 0, len(db.products))
	for id := 1; id < db.nextProductID; id++ {
		p, ok := db.products[id]
		if !ok {
			continue
		}
		if match == nil || match(p) {
			out = append(out, p)
		}
	}
	return out
}

// Categories

func (db *DB) CreateCategory(c domain.Category) domain.Category {
	db.mu.Lock()
	defer db.mu.Unlock()
	c.ID = db.nextCategoryID
	db.nextCategoryID++
	db.categories[c.ID] = c
	return c
}

func (db *DB) GetCategoryByName(name string) (domain.Category, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	for _, c := range db.categories {
		if c.Name == name {
			return c, true
		}
	}
	return domain.Category{}, false
}

func (db *DB) ListCategories() []domain.Category {
	db.mu.RLock()
	defer db.mu.RUnlock()
	out := make([]domain.Category, 0, len(db.categories))
	for id := 1; id < db.nextCategoryID; id++ {
		if c, ok := db.categories[id]; ok {
			out = append(out, c)
		}
	}
	return out
}

// Cart items

// CreateCartItem inserts a line for (UserID, ProductID) unless one already
// exists, reporting false when the pair is taken. Check and insert share the
// write lock, so concurrent inserts for the same pair cannot both succeed.
func (db *DB) CreateCartItem(item domain.CartItem) (domain.CartItem, bool) {
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, existing := range db.cartItems {
		if existing.UserID == item.UserID && existing.ProductID == item.ProductID {
			return domain.CartItem{}, false
		}
	}
	item.ID = db.nextCartItemID
	db.nextCartItemID++
	db.cartItems[item.ID] = item
	return item, true
}

func (db *DB) GetCartItem(id int) (domain.CartItem, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	item, ok := db.cartItems[id]
	return item, ok
}

func (db *DB) FindCartItem(userID, productID int) (domain.CartItem, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	for _, item := range db.cartItems {
		if item.UserID == userID && item.ProductID == productID {
			return item, true
		}
	}
	return domain.CartItem{}, false
}

func (db *DB) ListCartItems(userID int) []domain.CartItem {
	db.mu.RLock()
	defer db.mu.RUnlock()
	var out []domain.CartItem
	for id := 1; id < db.nextCartItemID; id++ {
		item, ok := db.cartItems[id]
		if ok && item.UserID == userID {
			out = append(out, item)
		}
	}
	return out
}

func (db *DB) UpdateCartItem(id int, fn func(*domain.CartItem)) (domain.CartItem, bool) {
	db.mu.Lock()
	defer db.mu.Unlock()
	item, ok := db.cartItems[id]
	if !ok {
		return domain.CartItem{}, false
	}
	fn(&item)
	item.ID = id
	db.cartItems[id] = item
	return item, true
}

// DeleteCartItem removes the line if present. Deleting an unknown id is a
// no-op.
func (db *DB) DeleteCartItem(id int) {
	db.mu.Lock()
	defer db.mu.Unlock()
	delete(db.cartItems, id)
}

// DeleteCartItemsForUser clears a user's cart in one locked section, so no
// reader can observe a partially cleared cart.
func (db *DB) DeleteCartItemsForUser(userID int) {
	db.mu.Lock()
	defer db.mu.Unlock()
	for id, item := range db.cartItems {
		if item.UserID == userID {
			delete(db.cartItems, id)
		}
	}
}

// Orders

func (db *DB) GetOrder(id int) (domain.Order, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	o, ok := db.orders[id]
	return o, ok
}

func (db *DB) ListOrders(userID int) []domain.Order {
	db.mu.RLock()
	defer db.mu.RUnlock()
	var out []domain.Order
	for id := 1; id < db.nextOrderID; id++ {
		o, ok := db.orders[id]
		if ok && o.UserID == userID {
			out = append(out, o)
		}
	}
	return out
}

func (db *DB) ListOrderItems(orderID int) []domain.OrderItem {
	db.mu.RLock()
	defer db.mu.RUnlock()
	var out []domain.OrderItem
	for id := 1; id < db.nextOrderItemID; id++ {
		item, ok := db.orderItems[id]
		if ok && item.OrderID == orderID {
			out = append(out, item)
		}
	}
	return out
}

// PlaceOrder commits an order, its items, the stock decrements, and the
// cart clear in one write-locked section. Either everything below succeeds
// or the store is untouched: stock is validated for every line before the
// first write.
func (db *DB) PlaceOrder(order domain.Order, items []domain.OrderItem) (domain.Order, []domain.OrderItem, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, item := range items {
		p, ok := db.products[item.ProductID]
		if !ok {
			return domain.Order{}, nil, domain.ErrIntegrity
		}
		if p.Stock < item.Quantity {
			return domain.Order{}, nil, domain.Invalid("quantity", "insufficient stock for product "+p.Name)
		}
	}

	order.ID = db.nextOrderID
	db.nextOrderID++
	db.orders[order.ID] = order

	created := make([]domain.OrderItem, 0, len(items))
	for _, item := range items {
		item.ID = db.nextOrderItemID
		db.nextOrderItemID++
		item.OrderID = order.ID
		db.orderItems[item.ID] = item

		p := db.products[item.ProductID]
		p.Stock -= item.Quantity
		db.products[item.ProductID] = p

		created = append(created, item)
	}

	for id, line := range db.cartItems {
		if line.UserID == order.UserID {
			delete(db.cartItems, id)
		}
	}

	return order, created, nil
}
