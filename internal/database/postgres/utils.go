package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/osse101/SpaceCases_Go/internal/domain"
	"github.com/osse101/SpaceCases_Go/internal/logger"
)

// SafeRollback rolls back a transaction and logs any error that isn't ErrTxClosed
func SafeRollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
	}
}

// mapError translates Postgres failures into domain errors and wraps
// everything else with msg
func mapError(err error, msg string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case PgErrorCodeSerializationFailure, PgErrorCodeDeadlockDetected:
			return fmt.Errorf("%w: %s: %s", domain.ErrTxConflict, msg, pgErr.Message)
		case PgErrorCodeCheckViolation:
			if pgErr.ConstraintName == ConstraintBalanceNonNegative {
				return fmt.Errorf("%w: balance would go negative", domain.ErrInsufficientFunds)
			}
		}
	}
	return fmt.Errorf("%s: %w", msg, err)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == PgErrorCodeUniqueViolation
}

func marshalDetails(attrs domain.ItemAttributes) ([]byte, error) {
	b, err := json.Marshal(attrs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToMarshalDetails, err)
	}
	return b, nil
}

func unmarshalDetails(b []byte) (domain.ItemAttributes, error) {
	var attrs domain.ItemAttributes
	if len(b) == 0 {
		return attrs, nil
	}
	if err := json.Unmarshal(b, &attrs); err != nil {
		return attrs, fmt.Errorf("%s: %w", ErrMsgFailedToUnmarshalDetails, err)
	}
	return attrs, nil
}
