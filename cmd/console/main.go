package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/spec-kit/user-console/internal/config"
	"github.com/spec-kit/user-console/internal/events"
	"github.com/spec-kit/user-console/internal/observability"
	"github.com/spec-kit/user-console/internal/persistence"
	"github.com/spec-kit/user-console/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App.Env)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	adapter, cleanup, err := newAdapter(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to init storage", zap.Error(err))
	}
	defer cleanup()

	dispatcher := events.NewInMemoryDispatcher()

	notifier := service.NewNotifier(dispatcher, logger)
	notifier.RegisterHandlers()

	users := service.NewUserService(service.Dependencies{
		Adapter:    adapter,
		Dispatcher: dispatcher,
		Logger:     logger,
		StorageKey: cfg.Storage.Key,
	})

	if err := users.LoadUsers(ctx); err != nil {
		logger.Warn("initial load failed", zap.Error(err))
	}

	if cfg.AutoSave.Enabled {
		users.EnableAutoSave(cfg.AutoSave.Interval())
	}

	waitForShutdown(logger)

	users.DisableAutoSave()
	if err := users.SaveUsers(context.Background()); err != nil {
		logger.Warn("final save failed", zap.Error(err))
	}
}

func newAdapter(ctx context.Context, cfg *config.Config, logger *zap.Logger) (persistence.Adapter, func(), error) {
	switch cfg.Storage.Backend {
	case config.BackendRedis:
		adapter := persistence.NewRedisAdapter(cfg.Redis, logger)
		return adapter, adapter.Close, nil
	case config.BackendPostgres:
		adapter, err := persistence.NewPostgresAdapter(ctx, cfg.Postgres, logger)
		if err != nil {
			return nil, nil, err
		}
		return adapter, adapter.Close, nil
	case config.BackendSQLite:
		adapter, err := persistence.NewSQLiteAdapter(cfg.SQLite.Path, logger)
		if err != nil {
			return nil, nil, err
		}
		return adapter, func() {}, nil
	default:
		return persistence.NewFileAdapter(cfg.Storage.Dir, logger), func() {}, nil
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
