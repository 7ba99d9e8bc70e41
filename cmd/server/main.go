package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Manulynx/kitaluro/config"
	"github.com/Manulynx/kitaluro/internal/app/controller"
	"github.com/Manulynx/kitaluro/internal/app/repository"
	"github.com/Manulynx/kitaluro/internal/app/service"
	"github.com/Manulynx/kitaluro/internal/db"
	"github.com/Manulynx/kitaluro/internal/middleware"
	"github.com/Manulynx/kitaluro/internal/router"
	"github.com/Manulynx/kitaluro/internal/scheduler"
	"github.com/Manulynx/kitaluro/internal/storage"
	"github.com/Manulynx/kitaluro/pkg/logger"
	"github.com/Manulynx/kitaluro/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:  logLevel,
		Format: "console", // Use "json" for production
		Color:  true,
	})

	logger.Info("Starting KITALURO Catalog Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Seed statuses and the first admin account
	if err := db.Seed(&cfg.Admin); err != nil {
		logger.Warn("Failed to seed database", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Redis is optional: without it the catalog recomputes aggregates
	// on every request and logout cannot revoke tokens early.
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Warn("Redis unavailable, continuing without cache", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer func() {
		if err := redis.Close(); err != nil {
			logger.Error("Failed to close Redis connection", err)
		}
	}()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	productRepo := repository.NewProductRepository(db.GetDB())
	mediaRepo := repository.NewMediaRepository(db.GetDB())
	categoryRepo := repository.NewCategoryRepository(db.GetDB())
	subcategoryRepo := repository.NewSubcategoryRepository(db.GetDB())
	brandRepo := repository.NewBrandRepository(db.GetDB())
	supplierRepo := repository.NewSupplierRepository(db.GetDB())
	statusRepo := repository.NewStatusRepository(db.GetDB())
	ratingRepo := repository.NewRatingRepository(db.GetDB())

	// Initialize services
	authService := service.NewAuthService(
		userRepo,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	ratingService := service.NewRatingService(ratingRepo, productRepo)
	catalogService := service.NewCatalogService(
		productRepo,
		categoryRepo,
		brandRepo,
		supplierRepo,
		statusRepo,
		ratingService,
	)
	productService := service.NewProductService(
		productRepo,
		mediaRepo,
		categoryRepo,
		subcategoryRepo,
		brandRepo,
		supplierRepo,
		statusRepo,
	)
	taxonomyService := service.NewTaxonomyService(
		categoryRepo,
		subcategoryRepo,
		brandRepo,
		supplierRepo,
		statusRepo,
	)

	mediaStorage := storage.NewMediaStorage(
		cfg.S3.Region,
		cfg.S3.Bucket,
		cfg.S3.AccessKeyID,
		cfg.S3.SecretAccessKey,
		cfg.S3.BaseURL,
	)

	// Initialize controllers
	authController := controller.NewAuthController(authService)
	catalogController := controller.NewCatalogController(catalogService, ratingService)
	ratingController := controller.NewRatingController(ratingService)
	productController := controller.NewProductController(productService)
	taxonomyController := controller.NewTaxonomyController(taxonomyService)
	uploadController := controller.NewUploadController(mediaStorage)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Start the rating cache warmer
	ratingScheduler := scheduler.NewRatingCacheScheduler(ratingService)
	if err := ratingScheduler.Start(); err != nil {
		logger.Warn("Failed to start rating cache scheduler", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer ratingScheduler.Stop()

	// Setup router
	r := router.NewRouter(
		authController,
		catalogController,
		ratingController,
		productController,
		taxonomyController,
		uploadController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
