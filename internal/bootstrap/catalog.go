package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/SpaceCases_Go/internal/catalog"
	"github.com/osse101/SpaceCases_Go/internal/config"
	"github.com/osse101/SpaceCases_Go/internal/naming"
)

// CatalogComponents are the pieces serving catalog lookups
type CatalogComponents struct {
	Store     *catalog.Store
	Resolver  naming.Resolver
	Refresher *catalog.Refresher
}

// InitializeCatalog loads the first snapshot synchronously and then
// schedules refreshes. A feed that cannot be loaded at startup is fatal.
func InitializeCatalog(ctx context.Context, cfg *config.Config) (*CatalogComponents, error) {
	resolver := naming.NewResolver(cfg.NamingCacheSize, cfg.NamingCacheTTL)
	store := catalog.NewStore(resolver)
	source := catalog.NewSource(cfg.CatalogSource)
	refresher := catalog.NewRefresher(source, store)

	if err := refresher.Refresh(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedInitialCatalogLoad, err)
	}
	if err := refresher.Start(cfg.CatalogRefreshSpec); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedScheduleRefresh, err)
	}
	if fs, ok := source.(catalog.FileSource); ok && cfg.CatalogWatch {
		if err := refresher.Watch(fs.Dir, catalog.DefaultWatchDebounce); err != nil {
			// the cron schedule still covers this source
			slog.Warn(LogMsgCatalogWatchUnavailable, "error", err)
		}
	}

	slog.Info(LogMsgCatalogInitialized,
		"source", cfg.CatalogSource,
		"schedule", cfg.CatalogRefreshSpec)

	return &CatalogComponents{Store: store, Resolver: resolver, Refresher: refresher}, nil
}
