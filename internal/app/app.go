package app

import (
	"context"
	"fmt"
	"os"

	"gorm.io/gorm"

	dbpkg "github.com/ellenorzo/ellenorzo-backend/internal/data/db"
	"github.com/ellenorzo/ellenorzo-backend/internal/observability"
	"github.com/ellenorzo/ellenorzo-backend/internal/platform/logger"
)

type App struct {
	Log        *logger.Logger
	DB         *gorm.DB
	Cfg        Config
	Repos      Repos
	Aggregates Aggregates
	Metrics    *observability.Metrics

	store        *dbpkg.Service
	otelShutdown func(context.Context) error
}

// New loads configuration, opens and migrates the store, and wires repos and aggregates.
func New(ctx context.Context) (*App, error) {
	LoadDotEnv()
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)
	return NewWithConfig(ctx, log, cfg)
}

func NewWithConfig(ctx context.Context, log *logger.Logger, cfg Config) (*App, error) {
	otelShutdown := observability.InitOTel(ctx, log, observability.OtelConfig{
		ServiceName: "ellenorzo",
		Environment: cfg.Environment,
		Version:     cfg.Version,
	})
	metrics := observability.Init(log)

	store, err := openStore(log, cfg)
	if err != nil {
		log.Sync()
		return nil, err
	}
	if err := store.AutoMigrateAll(); err != nil {
		_ = store.Close()
		log.Sync()
		return nil, fmt.Errorf("%s automigrate: %w", store.Driver(), err)
	}
	theDB := store.DB()

	reposet := wireRepos(theDB, log)
	aggset := wireAggregates(theDB, log, reposet, metrics)

	return &App{
		Log:          log,
		DB:           theDB,
		Cfg:          cfg,
		Repos:        reposet,
		Aggregates:   aggset,
		Metrics:      metrics,
		store:        store,
		otelShutdown: otelShutdown,
	}, nil
}

func openStore(log *logger.Logger, cfg Config) (*dbpkg.Service, error) {
	switch cfg.DBDriver {
	case DriverSQLite:
		svc, err := dbpkg.NewSQLiteService(cfg.SQLitePath, log)
		if err != nil {
			return nil, fmt.Errorf("init sqlite: %w", err)
		}
		return svc, nil
	default:
		svc, err := dbpkg.NewPostgresService(cfg.Postgres, log)
		if err != nil {
			return nil, fmt.Errorf("init postgres: %w", err)
		}
		return svc, nil
	}
}

func (a *App) Close(ctx context.Context) {
	if a == nil {
		return
	}
	if a.otelShutdown != nil {
		if err := a.otelShutdown(ctx); err != nil && a.Log != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
		a.otelShutdown = nil
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil && a.Log != nil {
			a.Log.Warn("store close failed", "error", err)
		}
		a.store = nil
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
