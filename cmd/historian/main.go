// cmd/historian drains the game event queue into the game_events table.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jason-s-yu/bidquiz/internal/cache"
	"github.com/jason-s-yu/bidquiz/internal/config"
	"github.com/jason-s-yu/bidquiz/internal/database"
	"github.com/jason-s-yu/bidquiz/internal/historian"
	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Load()

	logger := logrus.New()
	if lvl, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(lvl)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.DatabaseURL == "" || cfg.RedisAddr == "" {
		logger.Fatal("historian needs both DATABASE_URL and REDIS_ADDR")
	}

	db, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.WithError(err).Fatal("database unavailable")
	}
	defer db.Close()
	if err := db.Migrate(ctx); err != nil {
		logger.WithError(err).Fatal("migration failed")
	}

	rdb, err := cache.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		logger.WithError(err).Fatal("redis unavailable")
	}
	defer rdb.Close()

	historian.New(rdb, db, historian.Options{
		QueueName:  cfg.EventQueueName,
		BatchSize:  cfg.HistorianBatchSize,
		FlushDelay: cfg.HistorianFlush,
		Logger:     logger,
	}).Run(ctx)
	logger.Info("historian shutdown complete")
}
