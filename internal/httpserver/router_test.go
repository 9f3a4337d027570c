package httpserver

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
	"storefront/internal/memdb"
	cartrepo "storefront/internal/repository/cart"
	categoryrepo "storefront/internal/repository/category"
	orderrepo "storefront/internal/repository/order"
	productrepo "storefront/internal/repository/product"
	userrepo "storefront/internal/repository/user"
	accountsvc "storefront/internal/service/account"
	cartsvc "storefront/internal/service/cart"
	catalogsvc "storefront/internal/service/catalog"
	checkoutsvc "storefront/internal/service/checkout"
)

func testRouter(t *testing.T) (*gin.Engine, *memdb.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := memdb.New()
	catalog := catalogsvc.New(productrepo.NewMemory(store), categoryrepo.NewMemory(store))
	carts := cartsvc.New(cartrepo.NewMemory(store), productrepo.NewMemory(store))
	checkout := checkoutsvc.New(carts, orderrepo.NewMemory(store), 0.08)
	account := accountsvc.New(userrepo.NewMemory(store))
	logger := log.New(io.Discard, "", 0)
	return buildRouter(logger, Deps{Catalog: catalog, Cart: carts, Checkout: checkout, Account: account}), store
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	router, _ := testRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRegisterStripsPassword(t *testing.T) {
	router, _ := testRouter(t)
	rec := doJSON(t, router, http.MethodPost, "/api/users/register", map[string]string{
		"username": "alice",
		"password": "s3cret",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "s3cret") || strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("credential leaked in response: %s", rec.Body.String())
	}

	// Same exclusion holds for profile reads.
	rec = doJSON(t, router, http.MethodGet, "/api/users/1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("credential leaked in profile: %s", rec.Body.String())
	}
}

func TestRegisterDuplicateUsernameConflicts(t *testing.T) {
	router, _ := testRouter(t)
	body := map[string]string{"username": "alice", "password": "x"}
	if rec := doJSON(t, router, http.MethodPost, "/api/users/register", body); rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if rec := doJSON(t, router, http.MethodPost, "/api/users/register", body); rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestSearchWithoutQueryIsBadRequest(t *testing.T) {
	router, _ := testRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/api/products/search", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestGetUnknownProductIsNotFound(t *testing.T) {
	router, _ := testRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/api/products/9999", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestCartAndCheckoutFlow(t *testing.T) {
	router, store := testRouter(t)
	discounted := 80.0
	p := store.CreateProduct(domain.Product{
		Name: "Sneaker", Description: "d", Price: 100, DiscountedPrice: &discounted,
		Category: "Shoes", Image: "img", Stock: 10,
	})

	rec := doJSON(t, router, http.MethodPost, "/api/cart", map[string]interface{}{
		"userId": 1, "productId": p.ID, "quantity": 2,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("add to cart: %d %s", rec.Code, rec.Body.String())
	}
	rec = doJSON(t, router, http.MethodPost, "/api/cart", map[string]interface{}{
		"userId": 1, "productId": p.ID, "quantity": 1,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("merge add: %d", rec.Code)
	}

	var cart []map[string]interface{}
	rec = doJSON(t, router, http.MethodGet, "/api/cart/1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get cart: %d", rec.Code)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &cart); err != nil {
		t.Fatalf("decode cart: %v", err)
	}
	if len(cart) != 1 || cart[0]["quantity"].(float64) != 3 {
		t.Fatalf("expected one merged line with quantity 3: %v", cart)
	}

	rec = doJSON(t, router, http.MethodPost, "/api/orders", map[string]interface{}{
		"userId":         1,
		"address":        "1 Main St",
		"city":           "Springfield",
		"state":          "IL",
		"zipCode":        "62701",
		"shippingMethod": "standard",
		"paymentMethod":  "card",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("checkout: %d %s", rec.Code, rec.Body.String())
	}
	var placed struct {
		Order domain.Order       `json:"order"`
		Items []domain.OrderItem `json:"items"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &placed); err != nil {
		t.Fatalf("decode order: %v", err)
	}
	// 240.00 subtotal + 19.20 tax + 5.99 shipping
	if placed.Order.Total != 265.19 {
		t.Fatalf("total: %v", placed.Order.Total)
	}
	if len(placed.Items) != 1 || placed.Items[0].Price != 80 {
		t.Fatalf("items: %+v", placed.Items)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/cart/1", nil)
	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Fatalf("cart not empty after checkout: %s", body)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/orders/user/1", nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "265.19") {
		t.Fatalf("order history: %d %s", rec.Code, rec.Body.String())
	}
}

func TestCheckoutEmptyCartIsBadRequest(t *testing.T) {
	router, _ := testRouter(t)
	rec := doJSON(t, router, http.MethodPost, "/api/orders", map[string]interface{}{
		"userId":         1,
		"address":        "1 Main St",
		"city":           "Springfield",
		"state":          "IL",
		"zipCode":        "62701",
		"shippingMethod": "standard",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestRemoveCartItemIdempotent(t *testing.T) {
	router, store := testRouter(t)
	p := store.CreateProduct(domain.Product{Name: "X", Price: 1, Category: "c", Stock: 1})
	rec := doJSON(t, router, http.MethodPost, "/api/cart", map[string]interface{}{"userId": 1, "productId": p.ID})
	if rec.Code != http.StatusCreated {
		t.Fatalf("add: %d", rec.Code)
	}
	if rec := doJSON(t, router, http.MethodDelete, "/api/cart/1", nil); rec.Code != http.StatusNoContent {
		t.Fatalf("delete: %d", rec.Code)
	}
	if rec := doJSON(t, router, http.MethodDelete, "/api/cart/1", nil); rec.Code != http.StatusNoContent {
		t.Fatalf("second delete: %d", rec.Code)
	}
}
