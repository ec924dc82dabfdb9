package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/konnco/store-backend/internal/modules/auth"
	"github.com/konnco/store-backend/internal/modules/cart"
	"github.com/konnco/store-backend/internal/modules/catalog"
	"github.com/konnco/store-backend/internal/modules/customer"
	"github.com/konnco/store-backend/internal/modules/inventory"
	"github.com/konnco/store-backend/internal/modules/order"
	"github.com/konnco/store-backend/internal/modules/payment"
	"github.com/konnco/store-backend/internal/modules/transaction"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	if err := godotenv.Load(); err != nil {
		logger.Warn().Msg("no .env file found, relying on environment")
	}

	db, err := sql.Open("postgres", os.Getenv("DATABASE_URL"))
	if err != nil {
		logger.Fatal().Err(err).Msg("open database")
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Fatal().Err(err).Msg("ping database")
	}
	logger.Info().Msg("connected to database")

	secret := []byte(os.Getenv("JWT_SECRET"))
	if len(secret) == 0 {
		logger.Fatal().Msg("JWT_SECRET is required")
	}

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)

	mw := auth.NewMiddleware(secret)

	// ── Identity ────────────────────────────────────────────
	customerRepo := customer.NewPostgresRepository(db)
	adminRepo := customer.NewAdminPostgresRepository(db)
	customerService := customer.NewService(customerRepo)

	authService := auth.NewService(customerRepo, adminRepo, secret)
	auth.NewHandler(authService, customerService).RegisterRoutes(router, mw)

	// ── Catalog ─────────────────────────────────────────────
	var listingCache *catalog.ListingCache
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: addr, Password: os.Getenv("REDIS_PASSWORD")})
		listingCache = catalog.NewListingCache(rdb, envDuration("CATALOG_CACHE_TTL", 5*time.Minute))
		logger.Info().Str("addr", addr).Msg("catalog cache enabled")
	}
	catalogRepo := catalog.NewPostgresRepository(db)
	catalogService := catalog.NewService(catalogRepo, listingCache)
	catalog.NewHandler(catalogService).RegisterRoutes(router, mw)

	// ── Cart & Inventory ────────────────────────────────────
	ledger := inventory.NewPostgresLedger()
	cartRepo := cart.NewPostgresRepository(db)
	cartService := cart.NewService(db, cartRepo, ledger, envInt("CART_MIN_QTY", 1))
	cart.NewHandler(cartService).RegisterRoutes(router, mw)

	// ── Orders ──────────────────────────────────────────────
	orderRepo := order.NewPostgresRepository(db)
	orderService := order.NewService(orderRepo)
	order.NewHandler(orderService).RegisterRoutes(router, mw)

	// ── Payments & Transactions ─────────────────────────────
	gateway := payment.NewMidtransGateway(payment.MidtransConfig{
		ServerKey:   os.Getenv("MIDTRANS_SERVER_KEY"),
		SnapBaseURL: os.Getenv("MIDTRANS_SNAP_BASE_URL"),
		APIBaseURL:  os.Getenv("MIDTRANS_API_BASE_URL"),
	})
	transactionRepo := transaction.NewPostgresRepository(db)
	transactionService := transaction.NewService(db, transactionRepo, cartRepo, orderRepo, ledger, customerRepo, gateway)
	transaction.NewHandler(transactionService).RegisterRoutes(router, mw)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reconciler := transaction.NewReconciler(
		transactionService,
		transactionRepo,
		envDuration("RECONCILE_INTERVAL", time.Minute),
		envDuration("RECONCILE_MAX_AGE", 15*time.Minute),
		logger,
	)
	go reconciler.Run(ctx)

	// ── Start Server ────────────────────────────────────────
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}
	server := &http.Server{Addr: ":" + port, Handler: router}

	go func() {
		logger.Info().Str("port", port).Msg("store API server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("listen and serve")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("shutdown")
	}
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
