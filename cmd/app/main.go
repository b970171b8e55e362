package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/osse101/SpaceCases_Go/internal/bootstrap"
	"github.com/osse101/SpaceCases_Go/internal/config"
	"github.com/osse101/SpaceCases_Go/internal/server"
)

func main() {
	if err := run(); err != nil {
		slog.Error("SpaceCases failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	bootstrap.SetupLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, store, err := bootstrap.InitializeStore(ctx, cfg)
	if err != nil {
		return err
	}

	bus, publisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		pool.Close()
		return err
	}

	cat, err := bootstrap.InitializeCatalog(ctx, cfg)
	if err != nil {
		_ = publisher.Shutdown(context.Background())
		pool.Close()
		return err
	}

	services := bootstrap.InitializeServices(cfg, store, cat.Store, bus, publisher)

	srv := server.NewServer(server.Config{
		Port:           cfg.Port,
		APIKey:         cfg.APIKey,
		TrustedProxies: cfg.TrustedProxies,
		AllowedOrigins: cfg.CORSOrigins,
		Detector:       server.DefaultDetectorConfig(),
	}, server.Services{
		DB:         pool,
		Catalog:    cat.Store,
		Resolver:   cat.Resolver,
		Ledger:     services.Ledger,
		Inventory:  services.Inventory,
		Settlement: services.Settlement,
		Upgrade:    services.Upgrade,
		KeyPrice:   cfg.KeyPrice,
	})

	components := bootstrap.ShutdownComponents{
		Server:             srv,
		SettlementWorker:   services.SettlementWorker,
		Refresher:          cat.Refresher,
		ResilientPublisher: publisher,
		DBPool:             pool,
	}

	// Sessions left reserved by a previous process are rescheduled here
	if err := services.SettlementWorker.Start(ctx); err != nil {
		shutdown(cfg, components)
		return fmt.Errorf("%s: %w", bootstrap.ErrMsgFailedStartWorker, err)
	}

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
		shutdown(cfg, components)
		return nil
	case err := <-serveErr:
		shutdown(cfg, components)
		return err
	}
}

func shutdown(cfg *config.Config, components bootstrap.ShutdownComponents) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	bootstrap.GracefulShutdown(ctx, components)
}
