package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/shopworks/storefront-backend/config"
	"github.com/shopworks/storefront-backend/internal/app/controller"
	"github.com/shopworks/storefront-backend/internal/app/repository"
	"github.com/shopworks/storefront-backend/internal/app/service"
	"github.com/shopworks/storefront-backend/internal/db"
	"github.com/shopworks/storefront-backend/internal/middleware"
	"github.com/shopworks/storefront-backend/internal/router"
	"github.com/shopworks/storefront-backend/internal/scheduler"
	"github.com/shopworks/storefront-backend/internal/storage"
	"github.com/shopworks/storefront-backend/pkg/logger"
	"github.com/shopworks/storefront-backend/pkg/mailer"
	"github.com/shopworks/storefront-backend/pkg/redis"
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
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting Storefront Backend Server", map[string]interface{}{
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

	// Seed default categories (no-op when already present)
	if err := db.Seed(); err != nil {
		logger.Warn("Failed to seed database", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Token revocation storage is optional; without it logout is a no-op
	if cfg.Redis.Enabled {
		if err := redis.Init(&cfg.Redis); err != nil {
			logger.Warn("Redis unavailable, token revocation disabled", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			defer redis.Close()
		}
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	categoryRepo := repository.NewCategoryRepository(db.GetDB())
	productRepo := repository.NewProductRepository(db.GetDB())
	cartRepo := repository.NewCartRepository(db.GetDB())
	orderRepo := repository.NewOrderRepository(db.GetDB())
	contactRepo := repository.NewContactRepository(db.GetDB())

	// Initialize services
	authService := service.NewAuthService(
		userRepo,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	productService := service.NewProductService(productRepo, categoryRepo)
	cartService := service.NewCartService(
		cartRepo,
		productRepo,
		cfg.Currency.Symbol,
		cfg.Currency.DecimalPlaces,
	)
	orderService := service.NewOrderService(db.GetDB(), orderRepo, cartRepo, userRepo)
	dashboardService := service.NewDashboardService(userRepo, productRepo, orderRepo, contactRepo)
	contactService := service.NewContactService(
		contactRepo,
		mailer.NewSMTPMailer(&cfg.SMTP),
		cfg.SMTP.ContactRecipient,
	)

	// Initialize controllers
	authController := controller.NewAuthController(authService, cfg.JWT.Secret)
	productController := controller.NewProductController(productService)
	cartController := controller.NewCartController(cartService)
	orderController := controller.NewOrderController(orderService)
	dashboardController := controller.NewDashboardController(dashboardService)
	contactController := controller.NewContactController(contactService)

	s3Storage := storage.NewS3Storage(
		cfg.S3.Region,
		cfg.S3.Bucket,
		cfg.S3.AccessKeyID,
		cfg.S3.SecretAccessKey,
		cfg.S3.BaseURL,
	)
	uploadController := controller.NewUploadController(s3Storage)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Start the stale cart cleanup scheduler
	cartCleanup := scheduler.NewCartCleanupScheduler(cartRepo, cfg.Cart.StaleAfterDays)
	if err := cartCleanup.Start(); err != nil {
		logger.Warn("Failed to start cart cleanup scheduler", map[string]interface{}{
			"error": err.Error(),
		})
	} else {
		defer cartCleanup.Stop()
	}

	// Setup router
	r := router.NewRouter(
		authController,
		productController,
		cartController,
		orderController,
		dashboardController,
		contactController,
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
