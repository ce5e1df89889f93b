package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/luiyisdelacruz31-beep/portfolio-Tienda-virtual/internal/api"
	"github.com/luiyisdelacruz31-beep/portfolio-Tienda-virtual/internal/cart"
	"github.com/luiyisdelacruz31-beep/portfolio-Tienda-virtual/internal/catalog"
	"github.com/luiyisdelacruz31-beep/portfolio-Tienda-virtual/internal/checkout"
	"github.com/luiyisdelacruz31-beep/portfolio-Tienda-virtual/internal/receipt"
	"github.com/luiyisdelacruz31-beep/portfolio-Tienda-virtual/internal/store"
)

type Config struct {
	HTTPPort        string
	CatalogSource   string // remote | sqlite
	CatalogURL      string
	SQLitePath      string
	MigrationsPath  string
	CartStore       string // memory | redis | mongo
	RedisAddr       string
	RedisPassword   string
	MongoURI        string
	MongoDBName     string
	MerchantName    string
	ReceiptDir      string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		CatalogSource:   getEnv("CATALOG_SOURCE", "remote"),
		CatalogURL:      getEnv("CATALOG_URL", "https://fakestoreapi.com/products"),
		SQLitePath:      getEnv("SQLITE_PATH", "catalog.db"),
		MigrationsPath:  getEnv("MIGRATIONS_PATH", "migrations"),
		CartStore:       getEnv("CART_STORE", "memory"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName:     getEnv("MONGO_DB_NAME", "shopdb"),
		MerchantName:    getEnv("MERCHANT_NAME", "ShopMaster"),
		ReceiptDir:      getEnv("RECEIPT_DIR", "receipts"),
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	cfg := loadConfig()
	ctx := context.Background()

	provider, cleanup, err := buildCatalogProvider(cfg)
	if err != nil {
		log.Fatalf("Failed to set up catalog: %v", err)
	}
	defer cleanup()

	holder := catalog.NewHolder(provider)
	startCtx, cancel := context.WithTimeout(ctx, cfg.RequestTimeout)
	if _, err := holder.Refresh(startCtx); err != nil {
		// Not fatal: the first product request retries the fetch.
		log.Printf("initial catalog fetch failed: %v", err)
	}
	cancel()

	cartStore, closeStore, err := buildCartStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to set up cart store: %v", err)
	}
	defer closeStore()

	carts := cart.NewService(cartStore)
	carts.OnChange(func(sessionID string) {
		log.Printf("cart updated for session %s", sessionID)
	})

	gen := receipt.NewGenerator(cfg.MerchantName)
	sink := receipt.NewFileSink(cfg.ReceiptDir)
	checkoutSvc := checkout.NewService(carts, gen, sink, checkout.FormIntake{})

	productHandler := api.NewProductHandler(holder, cfg.RequestTimeout)
	cartHandler := api.NewCartHandler(carts, holder, cfg.RequestTimeout)
	checkoutHandler := api.NewCheckoutHandler(checkoutSvc, holder, cfg.RequestTimeout)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(api.SessionMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", productHandler.List)
			r.Get("/{id}", productHandler.Get)
		})
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.Get)
			r.Delete("/", cartHandler.Clear)
			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{product_id}", cartHandler.UpdateQuantity)
			r.Delete("/items/{product_id}", cartHandler.RemoveItem)
		})
		r.Post("/checkout", checkoutHandler.Checkout)
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("shop server starting on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	shutdownCtx, cancelShutdown := context.WithTimeout(ctx, cfg.ShutdownTimeout)
	defer cancelShutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}

func buildCatalogProvider(cfg *Config) (catalog.Provider, func(), error) {
	switch cfg.CatalogSource {
	case "sqlite":
		p, err := catalog.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		if err := p.RunMigrations(cfg.MigrationsPath); err != nil {
			p.Close()
			return nil, nil, err
		}
		log.Printf("serving catalog from sqlite at %s", cfg.SQLitePath)
		return p, func() { p.Close() }, nil
	default:
		log.Printf("serving catalog from %s", cfg.CatalogURL)
		return catalog.NewRemoteProvider(cfg.CatalogURL, cfg.RequestTimeout), func() {}, nil
	}
}

func buildCartStore(ctx context.Context, cfg *Config) (store.Store, func(), error) {
	switch cfg.CartStore {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       0,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, nil, err
		}
		log.Printf("persisting carts to redis at %s", cfg.RedisAddr)
		return store.NewRedisStore(client), func() { client.Close() }, nil
	case "mongo":
		db, err := store.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName)
		if err != nil {
			return nil, nil, err
		}
		st := store.NewMongoStore(db)
		if err := st.CreateIndexes(ctx); err != nil {
			return nil, nil, err
		}
		log.Printf("persisting carts to MongoDB at %s", cfg.MongoURI)
		return st, func() { db.Client().Disconnect(ctx) }, nil
	default:
		log.Printf("persisting carts in memory")
		return store.NewMemoryStore(), func() {}, nil
	}
}
