package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/SpaceCases_Go/internal/config"
	"github.com/osse101/SpaceCases_Go/internal/database"
	"github.com/osse101/SpaceCases_Go/internal/database/postgres"
)

// InitializeStore opens the connection pool, applies migrations when
// DB_AUTO_MIGRATE is set, and wraps the pool in the postgres store.
// The caller owns the returned pool.
func InitializeStore(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, *postgres.Store, error) {
	pool, err := database.NewPool(ctx, database.PoolConfig{
		ConnString:  cfg.GetDBConnString(),
		MaxConns:    cfg.DBMaxConns,
		MaxIdleTime: cfg.DBMaxConnIdleTime,
		MaxLifetime: cfg.DBMaxConnLifetime,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectDatabase, err)
	}

	if cfg.DBAutoMigrate {
		if err := database.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("%s: %w", ErrMsgFailedMigrate, err)
		}
		slog.Info(LogMsgMigrationsApplied)
	}

	return pool, postgres.NewStore(pool), nil
}
