// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jason-s-yu/bidquiz/internal/auth"
	"github.com/jason-s-yu/bidquiz/internal/cache"
	"github.com/jason-s-yu/bidquiz/internal/config"
	"github.com/jason-s-yu/bidquiz/internal/database"
	"github.com/jason-s-yu/bidquiz/internal/game"
	"github.com/jason-s-yu/bidquiz/internal/handlers"
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

	var (
		store   game.Store
		history handlers.EventLog
	)
	if cfg.DatabaseURL != "" {
		db, err := database.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.WithError(err).Fatal("database unavailable")
		}
		defer db.Close()
		if err := db.Migrate(ctx); err != nil {
			logger.WithError(err).Fatal("migration failed")
		}
		store = db
		history = db
	} else {
		logger.Warn("DATABASE_URL not set, using in-memory store")
		store = game.NewMemoryStore()
	}

	var events game.EventPublisher = game.NopPublisher{}
	if cfg.RedisAddr != "" {
		rdb, err := cache.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			logger.WithError(err).Warn("redis unavailable, game events will not be recorded")
		} else {
			defer rdb.Close()
			events = cache.NewEventQueue(rdb, cfg.EventQueueName)
		}
	}

	if cfg.SeedOnStartup {
		if _, _, err := game.Seed(ctx, store); err != nil {
			logger.WithError(err).Fatal("seed failed")
		}
	}

	gate, err := auth.NewGate(cfg.AdminAuthEnabled, cfg.AdminSecret, cfg.TokenExpire, auth.DefaultParams)
	if err != nil {
		logger.WithError(err).Fatal("admin auth setup failed")
	}
	if !gate.Enabled() {
		logger.Warn("admin auth disabled, admin routes are open")
	}

	g := game.NewGame(store, game.Options{
		BiddingWindow:     cfg.BiddingWindow,
		StrictTransitions: cfg.StrictPhaseTransitions,
		Events:            events,
		Logger:            logger,
	})

	api := handlers.NewAPI(g, gate, logger)
	if history != nil {
		api.WithEvents(history)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Infof("Running on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server exited")
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("graceful shutdown failed")
	}
}
