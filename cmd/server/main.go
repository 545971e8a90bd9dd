package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/youtube-seguro/video-catalog-go/internal/config"
	"github.com/youtube-seguro/video-catalog-go/internal/db"
	"github.com/youtube-seguro/video-catalog-go/internal/db/memstore"
	"github.com/youtube-seguro/video-catalog-go/internal/db/models"
	"github.com/youtube-seguro/video-catalog-go/internal/db/repository"
	"github.com/youtube-seguro/video-catalog-go/internal/handler"
	"github.com/youtube-seguro/video-catalog-go/internal/middleware"
	"github.com/youtube-seguro/video-catalog-go/internal/service"
	"github.com/youtube-seguro/video-catalog-go/internal/validation"
	"github.com/youtube-seguro/video-catalog-go/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.File); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg); err != nil {
		logger.Log.Error("server exited with error", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx := context.Background()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()
	store = repository.Instrument(store)

	var publisher service.EventPublisher = service.NopPublisher{}
	var publisherHealth handler.HealthChecker
	if cfg.RabbitMQ.Enabled {
		mp, err := service.NewMessagePublisher(&cfg.RabbitMQ)
		if err != nil {
			return fmt.Errorf("failed to create message publisher: %w", err)
		}
		async := service.NewAsyncPublisher(mp, service.DefaultEventBuffer)
		defer func() { _ = async.Close() }()
		publisher = async
		publisherHealth = async
	}

	var terms service.TermSource = service.NewStoreTermSource(store)
	if cfg.Redis.Addr != "" {
		redisClient, err := service.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer func() { _ = redisClient.Close() }()

		cache := service.NewBlockedTermCache(redisClient, terms)
		if err := cache.LoadFromStore(ctx); err != nil {
			return err
		}
		terms = cache
	}

	defaultOrder, ok := models.ParseListOrder(cfg.Catalog.ListOrder)
	if !ok {
		defaultOrder = models.OrderDefault
	}

	catalog := service.NewCatalogService(
		store,
		validation.New(cfg.Catalog.StrictYouTubeID),
		service.NewModerator(terms, cfg.Moderation.Enabled),
		publisher,
		defaultOrder,
	)
	views := service.NewViewTracker(store, publisher, time.Now)
	stats := service.NewStatsAggregator(store, time.Now)

	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger.Named("http")))
	router.Use(middleware.Metrics())
	router.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.Server.AllowedOrigins,
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "X-API-Key"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	if len(cfg.Server.APIKeys) == 0 {
		logger.Log.Warn("no API keys configured - admin endpoints will reject all requests",
			zap.String("envVar", "APP_SERVER_APIKEYS"),
		)
	}

	handler.RegisterRoutes(router, handler.Handlers{
		Catalog:   handler.NewCatalogHandler(catalog, views, stats),
		Admin:     handler.NewAdminHandler(catalog),
		Health:    handler.NewHealthHandler(store, publisherHealth),
		AdminAuth: middleware.NewAPIKeyAuth(cfg.Server.APIKeys, logger.Named("auth")).Handler(),
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Log.Info("server starting",
			zap.Int("port", cfg.Server.Port),
			zap.String("store", cfg.Store.Driver),
			zap.Bool("events", cfg.RabbitMQ.Enabled),
			zap.Bool("moderation", cfg.Moderation.Enabled),
		)
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		logger.Log.Info("shutdown signal received", zap.String("signal", sig.String()))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			_ = server.Close()
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}

		logger.Log.Info("server stopped gracefully")
		return nil
	}
}

// openStore selects the catalog backend named by store.driver.
func openStore(ctx context.Context, cfg *config.Config) (repository.CatalogStore, func(), error) {
	switch cfg.Store.Driver {
	case "memory":
		logger.Log.Warn("using in-memory catalog store; data is lost on restart")
		return memstore.NewSeeded(), func() {}, nil
	default:
		pool, err := db.NewPool(ctx, db.FromAppConfig(cfg.Database))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		logger.Log.Info("connected to database",
			zap.String("host", cfg.Database.Host),
			zap.String("database", cfg.Database.Name),
		)
		return repository.NewCatalogRepository(pool), func() { db.Close(pool) }, nil
	}
}
