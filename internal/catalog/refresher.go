package catalog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/robfig/cron/v3"

	"github.com/osse101/SpaceCases_Go/internal/logger"
	"github.com/osse101/SpaceCases_Go/internal/metrics"
)

// Refresher rebuilds the snapshot from a Source on a cron schedule
type Refresher struct {
	source Source
	store  *Store
	now    func() time.Time

	mu      sync.Mutex
	version uint64
	cron    *cron.Cron
	watcher *fsnotify.Watcher
}

// NewRefresher creates a refresher that publishes into store
func NewRefresher(source Source, store *Store) *Refresher {
	return &Refresher{
		source: source,
		store:  store,
		now:    time.Now,
	}
}

// Refresh fetches and validates a new snapshot and swaps it in. On any
// error the previous snapshot stays active.
func (r *Refresher) Refresh(ctx context.Context) error {
	log := logger.FromContext(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()

	feed, err := r.source.Fetch(ctx)
	if err != nil {
		metrics.CatalogRefreshes.WithLabelValues(metrics.ResultError).Inc()
		return fmt.Errorf("failed to fetch catalog: %w", err)
	}

	snap, err := NewSnapshot(r.version+1, r.now(), feed.Items, feed.Containers)
	if err != nil {
		metrics.CatalogRefreshes.WithLabelValues(metrics.ResultError).Inc()
		return fmt.Errorf("failed to build catalog snapshot: %w", err)
	}

	r.version = snap.Version
	r.store.Swap(snap)
	metrics.CatalogRefreshes.WithLabelValues(metrics.ResultSuccess).Inc()

	log.Info(LogMsgCatalogRefreshed,
		"version", snap.Version,
		"items", snap.ItemCount(),
		"containers", len(feed.Containers))
	return nil
}

// Start schedules periodic refreshes. The first refresh is the caller's
// responsibility so startup can fail fast on a bad feed.
func (r *Refresher) Start(spec string) error {
	if spec == "" {
		spec = DefaultRefreshSpec
	}

	c := cron.New()
	if _, err := c.AddFunc(spec, r.refreshLogged); err != nil {
		return fmt.Errorf("invalid refresh schedule %q: %w", spec, err)
	}

	r.mu.Lock()
	r.cron = c
	r.mu.Unlock()

	c.Start()
	logger.FromContext(context.Background()).Info(LogMsgCatalogRefreshStarted, "schedule", spec)
	return nil
}

// refreshLogged runs one bounded refresh for a background trigger
func (r *Refresher) refreshLogged() {
	ctx, cancel := context.WithTimeout(context.Background(), DefaultHTTPTimeout)
	defer cancel()
	if err := r.Refresh(ctx); err != nil {
		logger.FromContext(ctx).Error(LogMsgCatalogRefreshFailed, "error", err)
	}
}

// Shutdown stops the file watcher and the schedule, then waits for a
// scheduled refresh that is already running
func (r *Refresher) Shutdown(ctx context.Context) error {
	r.mu.Lock()
	c, w := r.cron, r.watcher
	r.watcher = nil
	r.mu.Unlock()

	if w != nil {
		_ = w.Close()
	}
	if c == nil {
		return nil
	}

	select {
	case <-c.Stop().Done():
		logger.FromContext(ctx).Info(LogMsgCatalogRefresherStop)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
