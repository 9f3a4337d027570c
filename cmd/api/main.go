package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"

	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/httpserver"
	"storefront/internal/memdb"
	cartrepo "storefront/internal/repository/cart"
	categoryrepo "storefront/internal/repository/category"
	orderrepo "storefront/internal/repository/order"
	productrepo "storefront/internal/repository/product"
	userrepo "storefront/internal/repository/user"
	"storefront/internal/seed"
	accountsvc "storefront/internal/service/account"
	cartsvc "storefront/internal/service/cart"
	catalogsvc "storefront/internal/service/catalog"
	checkoutsvc "storefront/internal/service/checkout"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()

	var (
		pool  *pgxpool.Pool
		users userrepo.Repository
		prods productrepo.Repository
		cats  categoryrepo.Repository
		carts cartrepo.Repository
		ords  orderrepo.Repository
	)

	if cfg.DBConnString != "" {
		var err error
		pool, err = db.Connect(ctx, cfg.DBConnString)
		if err != nil {
			logger.Fatalf("connect to db: %v", err)
		}
		defer pool.Close()

		users = userrepo.NewPostgres(pool)
		prods = productrepo.NewPostgres(pool)
		cats = categoryrepo.NewPostgres(pool)
		carts = cartrepo.NewPostgres(pool)
		ords = orderrepo.NewPostgres(pool)
		logger.Printf("using postgres store")
	} else {
		store := memdb.New()
		users = userrepo.NewMemory(store)
		prods = productrepo.NewMemory(store)
		cats = categoryrepo.NewMemory(store)
		carts = cartrepo.NewMemory(store)
		ords = orderrepo.NewMemory(store)
		logger.Printf("using in-memory store")
	}

	catalogService := catalogsvc.New(prods, cats)
	cartService := cartsvc.New(carts, prods)
	checkoutService := checkoutsvc.New(cartService, ords, cfg.TaxRate)
	accountService := accountsvc.New(users)

	if cfg.SeedOnStart {
		if err := seed.Apply(ctx, catalogService); err != nil {
			logger.Fatalf("seed catalog: %v", err)
		}
	}

	srv := httpserver.New(cfg.HTTPAddr, logger, httpserver.Deps{
		Catalog:  catalogService,
		Cart:     cartService,
		Checkout: checkoutService,
		Account:  accountService,
		Pool:     pool,
	})

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
