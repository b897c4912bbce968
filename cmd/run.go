package cmd

import (
	"context"
	"fmt"
	"time"

	"mentorhub/api"
	"mentorhub/cache"
	"mentorhub/config"
	"mentorhub/database"
	"mentorhub/domain/events"
	"mentorhub/metrics"
	"mentorhub/repository"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	logrus.Info("starting mentorhub...")

	// Load configuration
	cfg := config.Get()

	if cfg.Environment == "production" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetLevel(logrus.DebugLevel)
	}

	// Initialize database connection
	logrus.Info("connecting to database...")
	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Initialize event bus
	eventBus := events.NewBus()

	// Initialize unit of work factory
	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus)

	// Initialize balance cache when redis is configured
	var walletCache *cache.WalletCache
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		walletCache = cache.NewWalletCache(redisClient)
		logrus.WithField("addr", cfg.RedisAddr).Info("balance cache enabled")
	}

	// Initialize metrics
	m := metrics.Registry("mentorhub")

	// Initialize HTTP server
	server := api.NewServer(cfg.HTTPAddr, uowFactory, walletCache, m)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	logrus.WithField("environment", cfg.Environment).Info("mentorhub is running")

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
	case <-ctx.Done():
	}

	// Cleanup resources
	logrus.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("error shutting down http server")
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logrus.WithError(err).Error("error closing redis client")
		}
	}

	db.Close()
	logrus.Info("shutdown completed")

	return nil
}
