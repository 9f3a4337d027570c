package httpserver

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	accountsvc "storefront/internal/service/account"
	cartsvc "storefront/internal/service/cart"
	catalogsvc "storefront/internal/service/catalog"
	checkoutsvc "storefront/internal/service/checkout"
)

// Deps carries the services the router exposes. Pool is nil when the store
// backend is the in-memory one.
type Deps struct {
	Catalog  *catalogsvc.Service
	Cart     *cartsvc.Service
	Checkout *checkoutsvc.Service
	Account  *accountsvc.Service
	Pool     *pgxpool.Pool
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.Default())

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(deps.Pool))

	api := router.Group("/api")

	api.POST("/users/register", registerHandler(deps.Account))
	api.POST("/users/login", loginHandler(deps.Account))
	api.GET("/users/:id", getUserHandler(deps.Account))
	api.PUT("/users/:id", updateUserHandler(deps.Account))

	api.GET("/products", listProductsHandler(deps.Catalog))
	api.GET("/products/featured", featuredProductsHandler(deps.Catalog))
	api.GET("/products/search", searchProductsHandler(deps.Catalog))
	api.GET("/products/category/:category", productsByCategoryHandler(deps.Catalog))
	api.GET("/products/:id", getProductHandler(deps.Catalog))
	api.GET("/categories", listCategoriesHandler(deps.Catalog))

	api.GET("/cart/:userId", getCartHandler(deps.Cart))
	api.POST("/cart", addToCartHandler(deps.Cart))
	api.PUT("/cart/:id", updateCartItemHandler(deps.Cart))
	api.DELETE("/cart/:id", removeCartItemHandler(deps.Cart))
	api.DELETE("/cart/user/:userId", clearCartHandler(deps.Cart))

	api.POST("/orders", placeOrderHandler(deps.Checkout))
	api.GET("/orders/user/:id", listOrdersHandler(deps.Checkout))
	api.GET("/orders/:id", getOrderHandler(deps.Checkout))
	api.GET("/orders/:id/items", orderItemsHandler(deps.Checkout))

	return router
}
