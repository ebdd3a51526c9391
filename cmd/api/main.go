// cmd/api/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-gateway/internal/commerce"
	"github.com/your-org/storefront-gateway/internal/config"
	"github.com/your-org/storefront-gateway/internal/domain/account"
	"github.com/your-org/storefront-gateway/internal/domain/auth"
	"github.com/your-org/storefront-gateway/internal/domain/checkout"
	"github.com/your-org/storefront-gateway/internal/domain/session"
	"github.com/your-org/storefront-gateway/internal/infrastructure/database/redis"
	"github.com/your-org/storefront-gateway/internal/interfaces/http"
	"github.com/your-org/storefront-gateway/internal/interfaces/http/routes"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("🚀 Starting %s v%s in %s mode", cfg.App.Name, cfg.App.Version, cfg.App.Environment)

	logger := newLogger(cfg)

	// Connect to Redis
	redisClient, err := redis.NewConnection(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	if err := redisClient.Health(); err != nil {
		log.Fatalf("Redis health check failed: %v", err)
	}

	// Commerce API client
	commerceClient := commerce.NewClient(cfg, logger)

	// Per-device stores and domain services
	sessions := session.NewStore(redisClient, logger)
	checkoutStore := checkout.NewStore(commerceClient, redisClient, cfg, logger)
	orchestrator := checkout.NewOrchestrator(checkoutStore, sessions, commerceClient, cfg, logger)
	authController := auth.NewController(commerceClient, sessions, checkoutStore, cfg.Commerce.Channel, logger)
	accounts := account.NewService(commerceClient, sessions, logger)

	// When the backend rejects a credential mid-flight, sign the device out
	// everywhere: credentials and checkout session both go.
	commerceClient.OnAuthExpired(func(ctx context.Context) {
		device, ok := commerce.DeviceFromContext(ctx)
		if !ok {
			return
		}
		logger.WithField("device", device).Info("Clearing device state after credential expiry")
		if err := sessions.Clear(ctx, device); err != nil {
			logger.WithField("device", device).WithError(err).Warn("Failed to clear session")
		}
		if err := checkoutStore.Clear(ctx, device); err != nil {
			logger.WithField("device", device).WithError(err).Warn("Failed to clear checkout")
		}
	})

	log.Println("✅ All systems operational!")

	// Create and start HTTP server
	server := http.NewServer(cfg, redisClient.GetClient(), &routes.Dependencies{
		Config:         cfg,
		Commerce:       commerceClient,
		Sessions:       sessions,
		CheckoutStore:  checkoutStore,
		Orchestrator:   orchestrator,
		AuthController: authController,
		Accounts:       accounts,
	})

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("👋 Shutting down gracefully...")

	// Give server 30 seconds to shutdown gracefully
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		log.Printf("Failed to shutdown HTTP server gracefully: %v", err)
	}

	log.Println("✅ Server shutdown completed")
}

func newLogger(cfg *config.Config) *logrus.Logger {
	logger := logrus.New()
	if cfg.Logging.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: time.RFC3339})
	}
	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}
