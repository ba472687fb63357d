// cmd/basket-rest-api/main.go
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

	v1 "github.com/bensternthal/basket/internal/api/rest/v1"
	"github.com/bensternthal/basket/internal/app"
	"github.com/bensternthal/basket/internal/domain/news"
	"github.com/bensternthal/basket/internal/infrastructure/persistence"
	"github.com/bensternthal/basket/internal/infrastructure/persistence/models"
	"github.com/bensternthal/basket/internal/infrastructure/tasks"
	"github.com/bensternthal/basket/internal/pkg/config"
	"github.com/bensternthal/basket/internal/pkg/logger"
	"github.com/gin-contrib/cors"

	"github.com/gin-gonic/gin"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Application error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Parse configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "../../configs/rest-app.yaml"
	}

	restConfig, err := config.InitializeRestConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	// Initialize logger
	if err := logger.InitLogger(&restConfig.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	log, err := logger.GetLogger()
	if err != nil {
		return fmt.Errorf("failed to get logger: %w", err)
	}

	// Initialize application dependencies
	deps, err := initializeDependencies(restConfig, log)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	// Setup and start server with graceful shutdown
	return startServerWithGracefulShutdown(restConfig, deps, log)
}

// appDependencies holds all initialized application components
type appDependencies struct {
	services   *appServices
	dispatcher *tasks.Dispatcher
	apiUsers   news.APIUserRepository
}

type appServices struct {
	subscription news.SubscriptionService
	newsletter   news.NewsletterService
	recovery     news.RecoveryService
}

// initializeDependencies sets up all application components
func initializeDependencies(cfg *config.RestConfig, log logger.Logger) (*appDependencies, error) {
	// Initialize database
	db, err := persistence.NewDBConnection(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to create db connection: %w", err)
	}

	// Run migrations
	if err := db.AutoMigrate(
		&models.SubscriberModel{},
		&models.NewsletterModel{},
		&models.APIUserModel{},
		&models.BuildModel{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	log.Info("Database migrations completed successfully")

	// Initialize repositories
	subscriberRepo, err := persistence.NewGormSubscriberRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create subscriber repository: %w", err)
	}

	newsletterRepo, err := persistence.NewGormNewsletterRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create newsletter repository: %w", err)
	}

	apiUserRepo, err := persistence.NewGormAPIUserRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create api user repository: %w", err)
	}

	// Initialize task dispatcher
	dispatcher, err := tasks.NewDispatcher(4, 256, &tasks.LoggingExecutor{Logger: log}, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create task dispatcher: %w", err)
	}

	// Initialize services
	newsletterService, err := app.NewNewsletterService(newsletterRepo, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create newsletter service: %w", err)
	}

	subscriptionService, err := app.NewSubscriptionService(subscriberRepo, newsletterService, dispatcher, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create subscription service: %w", err)
	}

	recoveryService, err := app.NewRecoveryService(subscriberRepo, dispatcher, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create recovery service: %w", err)
	}

	log.Info("Application services initialized successfully")
	return &appDependencies{
		services: &appServices{
			subscription: subscriptionService,
			newsletter:   newsletterService,
			recovery:     recoveryService,
		},
		dispatcher: dispatcher,
		apiUsers:   apiUserRepo,
	}, nil
}

// startServerWithGracefulShutdown starts the HTTP server and handles graceful shutdown
func startServerWithGracefulShutdown(cfg *config.RestConfig, deps *appDependencies, log logger.Logger) error {
	// Setup router
	r := gin.Default()

	// The news endpoints are called from arbitrary web origins
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "x-api-key"},
		ExposeHeaders: []string{"Content-Length", "Content-Type"},
		MaxAge:        12 * time.Hour,
	}))

	// Setup API routes
	v1.SetupRoutes(r,
		deps.services.subscription,
		deps.services.newsletter,
		deps.services.recovery,
		deps.apiUsers,
		cfg.SuperToken,
	)

	// Create HTTP server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attack
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start server in goroutine
	go func() {
		log.Info("Starting server on port ", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("server failed to start: %w", err)
		}
	}()

	// Channel to listen for interrupt signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until we receive a signal or server error
	select {
	case err := <-serverErrors:
		deps.dispatcher.Stop()
		return err
	case sig := <-quit:
		log.Info("Received signal ", sig, ", initiating graceful shutdown")
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	log.Info("Shutting down server...")
	if err := srv.Shutdown(ctx); err != nil {
		deps.dispatcher.Stop()
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	// Drain queued vendor-sync work before exiting
	deps.dispatcher.Stop()

	log.Info("Server stopped gracefully")
	return nil
}
