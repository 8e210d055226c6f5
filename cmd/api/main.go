package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/vendorbuddy/marketplace-service/internal/api/http"
	"github.com/vendorbuddy/marketplace-service/internal/api/http/handlers"
	"github.com/vendorbuddy/marketplace-service/internal/auth"
	"github.com/vendorbuddy/marketplace-service/internal/cache"
	"github.com/vendorbuddy/marketplace-service/internal/config"
	"github.com/vendorbuddy/marketplace-service/internal/events"
	"github.com/vendorbuddy/marketplace-service/internal/observability"
	"github.com/vendorbuddy/marketplace-service/internal/persistence"
	"github.com/vendorbuddy/marketplace-service/internal/repository"
	"github.com/vendorbuddy/marketplace-service/internal/service"
	"github.com/vendorbuddy/marketplace-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	productRepo := repository.NewProductRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)

	dispatcher := events.NewInMemoryDispatcher(logger)
	productCache := cache.NewProductCache(redis.Client, cfg.Catalog.CacheTTL(), logger)

	authService := service.NewAuthService(*cfg, userRepo)
	catalogService := service.NewCatalogService(service.CatalogDependencies{
		ProductRepo: productRepo,
		Cache:       productCache,
		Dispatcher:  dispatcher,
	})
	orderService := service.NewOrderService(orderRepo, catalogService, dispatcher)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification, cfg.Catalog.LowStockThreshold)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Users:          handlers.NewUsersHandler(authService),
		Products:       handlers.NewProductsHandler(catalogService),
		Orders:         handlers.NewOrdersHandler(orderService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
