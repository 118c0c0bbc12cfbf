package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/aevon-lab/calseries/internal/aggregation"
	v1 "github.com/aevon-lab/calseries/internal/api/v1"
	"github.com/aevon-lab/calseries/internal/catalog"
	corecfg "github.com/aevon-lab/calseries/internal/core/config"
	"github.com/aevon-lab/calseries/internal/core/storage"
	"github.com/aevon-lab/calseries/internal/core/storage/filesystem"
	"github.com/aevon-lab/calseries/internal/core/storage/memory"
	"github.com/aevon-lab/calseries/internal/core/storage/postgres"
	"github.com/aevon-lab/calseries/internal/ingestion"
	"github.com/aevon-lab/calseries/internal/migrations"
	"github.com/aevon-lab/calseries/internal/projection"
	"github.com/aevon-lab/calseries/internal/server"
)

func main() {
	configPath := flag.String("config", "", "Path to configuration file")
	flag.Parse()

	// 0. Initialize Logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 1. Load Configuration
	cfg, err := corecfg.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	slog.Info("Loaded config", "config", cfg)

	// 2. Initialize Storage
	store, db, closeStore, err := openStore(cfg.Database)
	if err != nil {
		slog.Error("Failed to initialize storage", "type", cfg.Database.Type, "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := closeStore(); err != nil {
			slog.Error("Failed to close storage", "error", err)
		}
	}()

	// 3. Initialize Catalog and load seed series
	cat := catalog.New(store, cfg.Catalog.CacheCapacity, cfg.Catalog.DefaultCalendar)
	loadSeeds := func() ([]*v1.Series, error) {
		return filesystem.LoadSeeds(cfg.Catalog.SeedDir, cfg.Catalog.DefaultCalendar)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	seeds, err := loadSeeds()
	if err != nil {
		slog.Error("Failed to read seed series", "dir", cfg.Catalog.SeedDir, "error", err)
		os.Exit(1)
	}
	if _, err := cat.Seed(ctx, seeds); err != nil {
		slog.Error("Failed to seed catalog", "error", err)
		os.Exit(1)
	}

	// 4. Initialize Ingestion and Projection
	ingestionSvc := ingestion.NewService(cat, cfg.Server.MaxBodySizeMB)
	projectionSvc := projection.NewService(cat, aggregation.BatchJobParameter{
		MaxBatchSize: cfg.Aggregation.MaxBatchSize,
		WorkerCount:  cfg.Aggregation.WorkerCount,
	})

	// 5. Initialize Server
	srv := server.New(fmtAddr(cfg.Server.Host, cfg.Server.Port), db, cfg.Server.Mode)
	srv.Mount(ingestionSvc, projectionSvc)

	// 6. Start Services
	if interval := cfg.Catalog.ReloadEvery(); interval > 0 {
		reloader := catalog.NewReloader(interval, cat, loadSeeds)
		go func() {
			if err := reloader.Start(ctx); err != nil {
				slog.Error("Seed reloader stopped with error", "error", err)
			}
		}()
	} else {
		slog.Info("Seed reloading disabled by config")
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		slog.Info("Signal received, shutting down...")
		cancel()
	}()

	// HTTP server blocks until ctx is cancelled.
	if err := srv.Run(ctx); err != nil {
		slog.Error("Server stopped with error", "error", err)
	}

	slog.Info("Shutdown complete")
}

// openStore returns the configured series store. db is nil for the memory
// store.
func openStore(cfg corecfg.DatabaseConfig) (storage.SeriesStore, *sql.DB, func() error, error) {
	if cfg.Type == "memory" {
		return memory.NewStore(), nil, func() error { return nil }, nil
	}

	db, err := postgres.Open(cfg.DSN, cfg.MaxOpenConns, cfg.MaxIdleConns)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := migrations.RunMigrations(db, cfg.AutoMigrate); err != nil {
		db.Close()
		return nil, nil, nil, fmt.Errorf("failed to run database migrations: %w", err)
	}
	adapter, err := postgres.NewAdapter(db)
	if err != nil {
		db.Close()
		return nil, nil, nil, err
	}
	return adapter, db, adapter.Close, nil
}

func fmtAddr(host string, port int) string {
	return fmt.Sprintf("%s:%d", host, port)
}
