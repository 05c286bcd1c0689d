// cmd/historian/main.go pops rank events from the Redis queue and persists them to PostgreSQL.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jason-s-yu/pushups/internal/cache"
	"github.com/jason-s-yu/pushups/internal/config"
	"github.com/jason-s-yu/pushups/internal/database"
	"github.com/jason-s-yu/pushups/internal/historian"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}
	logger := cfg.NewLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := database.Connect(ctx, cfg.PostgresURL())
	if err != nil {
		logger.WithError(err).Fatal("database")
	}
	defer store.Close()
	if err := store.Migrate(ctx); err != nil {
		logger.WithError(err).Fatal("migrate")
	}

	rdb, err := cache.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		logger.WithError(err).Fatal("redis")
	}
	defer rdb.Close()

	svc := historian.New(cache.NewEventQueue(rdb, cfg.HistorianQueueName), store, logger, historian.Options{
		BatchSize:  cfg.HistorianBatchSize,
		FlushDelay: cfg.FlushDelay(),
	})
	svc.Run(ctx)
}
