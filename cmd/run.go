package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"wheel/config"
	"wheel/database"
	"wheel/events"
	"wheel/handlers"
	"wheel/repository"
	"wheel/service"

	"github.com/gin-gonic/gin"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Println("Starting wheel server...")

	// Load configuration
	cfg := config.Get()

	// Initialize database connection
	log.Println("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Println("Database connection established successfully")

	// Initialize event bus and attach the logging subscribers
	eventBus := events.NewBus()
	events.RegisterLoggingHandlers(eventBus)

	// Initialize repositories
	entryRepo := repository.NewEntryRepository(db)
	drawRepo := repository.NewDrawRepository(db)
	accountRepo := repository.NewAccountRepository(db)

	// Initialize services
	entryService := service.NewEntryService(entryRepo, accountRepo, eventBus, cfg)
	drawService := service.NewDrawService(entryRepo, drawRepo, accountRepo, eventBus)
	accountService := service.NewAccountService(accountRepo)

	// Ensure the seed admin exists before serving requests
	if _, err := accountService.EnsureAdmin(ctx, cfg.AdminName, cfg.AdminEmail, cfg.AdminAccessCode); err != nil {
		return fmt.Errorf("failed to ensure seed admin: %w", err)
	}

	// Initialize HTTP server
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	handlers.NewHTTPHandler(entryService, drawService, accountService).RegisterRoutes(router)

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("HTTP server listening on %s (%s mode)...", cfg.HTTPAddr, cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		db.Close()
		return fmt.Errorf("HTTP server error: %w", err)
	case <-ctx.Done():
	}

	// Cleanup resources
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error shutting down HTTP server: %v", err)
	}

	log.Println("Closing database connection...")
	db.Close()

	log.Println("Shutdown completed")
	return nil
}

// Seed creates or refreshes the seed admin account and exits
func Seed(ctx context.Context) error {
	cfg := config.Get()

	db, err := database.NewConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	accountService := service.NewAccountService(repository.NewAccountRepository(db))
	admin, err := accountService.EnsureAdmin(ctx, cfg.AdminName, cfg.AdminEmail, cfg.AdminAccessCode)
	if err != nil {
		return err
	}

	log.Printf("Seed admin ready: %s <%s>", admin.Name, admin.Email)
	return nil
}
