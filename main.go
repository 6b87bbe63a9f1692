package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"warung/internal/cartlock"
	"warung/internal/config"
	"warung/internal/database"
	"warung/internal/events"
	"warung/internal/handlers"
	"warung/internal/logger"
	"warung/internal/middleware"
	"warung/internal/models"
	"warung/internal/repositories"
	"warung/internal/services"
	"warung/pkg/rabbitmq"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// appDeps are the long-lived resources newApp wires into handlers.
type appDeps struct {
	cfg       *config.Config
	db        *gorm.DB
	locker    cartlock.Locker
	publisher events.Publisher
	log       *zap.Logger
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "warung: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	// --- Database ---
	db, err := database.Open(cfg.DBDriver, cfg.DatabaseDSN, log)
	if err != nil {
		return err
	}
	if err := database.Migrate(db); err != nil {
		return err
	}
	if cfg.SeedCatalog {
		seedProducts(context.Background(), repositories.NewGORMProductRepository(db), log)
	}

	// --- Cart locks ---
	var locker cartlock.Locker = cartlock.NewLocalLocker()
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			return fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
		}
		locker = cartlock.NewRedisLocker(rdb, cfg.CartLockTTL, log.Named("cartlock"))
		log.Info("using redis cart locks", zap.String("addr", cfg.RedisAddr))
	}

	// --- Order events ---
	var publisher events.Publisher = events.NopPublisher{}
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL}, log.Named("rabbitmq"))
		if err != nil {
			return err
		}
		defer mqClient.Close()
		publisher = events.NewBrokerPublisher(mqClient, log.Named("events"))
		if err := mqClient.Consume(events.LogHandler(log.Named("consumer"))); err != nil {
			log.Warn("order event consumer not started", zap.Error(err))
		}
	} else {
		log.Info("RABBITMQ_URL not set, order events disabled")
	}

	app := newApp(appDeps{cfg: cfg, db: db, locker: locker, publisher: publisher, log: log})

	// --- Start HTTP Server ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	listenErr := make(chan error, 1)
	go func() {
		log.Info("starting server", zap.String("port", cfg.AppPort))
		listenErr <- app.Listen(cfg.AppPort)
	}()

	select {
	case err := <-listenErr:
		return fmt.Errorf("server failed: %w", err)
	case <-quit:
	}

	log.Info("shutting down server")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error("error during Fiber shutdown", zap.Error(err))
	}
	log.Info("server gracefully stopped")
	return nil
}

// newApp builds the Fiber application with every route mounted under /api/v1.
func newApp(d appDeps) *fiber.App {
	productRepo := repositories.NewGORMProductRepository(d.db)
	orderRepo := repositories.NewGORMOrderRepository(d.db)
	userRepo := repositories.NewGORMUserRepository(d.db)
	validate := validator.New()

	authService := services.NewAuthService(userRepo, d.cfg.JWTSecret, d.cfg.TokenTTL, d.log.Named("auth"))
	productService := services.NewProductService(productRepo)
	cartService := services.NewCartService(orderRepo, productRepo, d.locker, d.log.Named("cart"))
	checkoutService := services.NewCheckoutService(orderRepo, d.locker, d.publisher, d.log.Named("checkout"))
	orderService := services.NewOrderService(orderRepo)
	customerService := services.NewCustomerService(repositories.NewGORMCustomerRepository(d.db))

	required := middleware.AuthRequired(authService, d.log)
	optional := middleware.OptionalAuth(authService, d.log)

	app := fiber.New(fiber.Config{AppName: "warung"})
	app.Use(fiberlogger.New())

	apiV1 := app.Group("/api/v1")
	handlers.NewAuthHandler(authService, validate, d.log).RegisterRoutes(apiV1)
	handlers.NewProductHandler(productService, validate, d.log).RegisterRoutes(apiV1, required)
	handlers.NewCartHandler(cartService, validate, d.log).RegisterRoutes(apiV1, optional, required)
	handlers.NewOrderHandler(checkoutService, orderService, validate, d.log).RegisterRoutes(apiV1, optional, required)
	handlers.NewCustomerHandler(customerService, d.log).RegisterRoutes(apiV1, required)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		if err := database.Ping(c.UserContext(), d.db); err != nil {
			d.log.Warn("health check: database unreachable", zap.Error(err))
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "down",
			})
		}
		return c.JSON(fiber.Map{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "up",
		})
	})

	return app
}

// seedProducts populates an empty catalog with some initial data.
func seedProducts(ctx context.Context, repo repositories.ProductRepository, log *zap.Logger) {
	existing, err := repo.GetAll(ctx)
	if err != nil {
		log.Error("failed to read catalog before seeding", zap.Error(err))
		return
	}
	if len(existing) > 0 {
		return
	}

	products := []models.Product{
		{Name: "Headphones", Price: decimal.RequireFromString("79.99")},
		{Name: "Blue Shirt", Price: decimal.RequireFromString("10.00")},
		{Name: "Watch", Price: decimal.RequireFromString("120.00")},
		{Name: "Book", Price: decimal.RequireFromString("5.50")},
	}
	for i := range products {
		if err := repo.Create(ctx, &products[i]); err != nil {
			log.Error("error seeding product", zap.String("name", products[i].Name), zap.Error(err))
			continue
		}
		log.Info("seeded product", zap.String("name", products[i].Name), zap.String("id", products[i].ID))
	}
}
