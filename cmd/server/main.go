package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/shopit/shopclient/internal/api"
	"github.com/shopit/shopclient/internal/backend"
	"github.com/shopit/shopclient/internal/cart"
	"github.com/shopit/shopclient/internal/catalog"
	"github.com/shopit/shopclient/internal/checkout"
	"github.com/shopit/shopclient/internal/config"
	"github.com/shopit/shopclient/internal/session"
	"github.com/shopit/shopclient/internal/storage"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	var logger *zap.Logger
	if cfg.Environment == "production" {
		logger, _ = zap.NewProduction()
	} else {
		logger, _ = zap.NewDevelopment()
	}
	defer logger.Sync()

	logger.Info("Starting storefront gateway",
		zap.String("port", cfg.Port),
		zap.String("environment", cfg.Environment),
		zap.String("backend", cfg.Backend.BaseURL),
	)

	// Open the persisted slot store
	slots, err := openSlots(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to open slot storage", zap.Error(err))
	}

	// Wire the engine
	client := backend.NewClient(cfg.Backend, logger)
	sessions := session.NewStore(slots, logger)
	if token := sessions.Token(context.Background()); token != "" {
		client.SetToken(token)
	}

	store := cart.NewStore(slots, logger)
	composer := checkout.NewComposer(cfg.Pricing)
	flow := checkout.NewFlow(composer, store, client, slots, cfg.Checkout.UPIProcessingDelay, logger)
	products := catalog.NewService(client, time.Minute, logger)

	router := api.NewRouter(cfg, api.Deps{
		Cart:    store,
		Flow:    flow,
		Pricing: composer,
		Catalog: products,
		Backend: client,
		Session: sessions,
	}, logger)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	logger.Info("Server started successfully", zap.String("address", srv.Addr))

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

func openSlots(cfg *config.Config, logger *zap.Logger) (storage.SlotStore, error) {
	if cfg.Storage.Driver == "postgres" {
		return storage.NewPostgresStore(cfg.Storage.Database, logger)
	}
	return storage.NewFileStore(cfg.Storage.Dir, logger)
}
