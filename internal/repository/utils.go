package repository

import (
	"context"

	"github.com/osse101/SpaceCases_Go/internal/logger"
)

// SafeRollback is meant to be deferred right after BeginTx. Implementations
// treat rollback of a committed Tx as a no-op, so only real failures are logged.
func SafeRollback(ctx context.Context, tx Tx) {
	if err := tx.Rollback(ctx); err != nil {
		logger.FromContext(ctx).Warn("transaction rollback failed", "error", err)
	}
}
