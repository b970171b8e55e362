package repository

import (
	"context"
	"time"

	"github.com/osse101/SpaceCases_Go/internal/domain"
)

// Tx defines the interface for transactional operations. Every write made
// through a Tx becomes visible only after Commit.
type Tx interface {
	Accounts
	Items
	Settlements

	// GetAccountForUpdate reads the account row and holds its lock until the
	// transaction ends
	GetAccountForUpdate(ctx context.Context, accountID int64) (*domain.Account, error)
	// UpdateClaim credits reward and records the claim in one statement,
	// returning the new balance
	UpdateClaim(ctx context.Context, accountID int64, streak int, claimedAt time.Time, reward int64) (int64, error)

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Store is the transactional store. Methods called directly on it run in
// their own implicit transaction.
type Store interface {
	Accounts
	Items
	Settlements

	BeginTx(ctx context.Context) (Tx, error)
	// BeginSerializableTx starts a SERIALIZABLE transaction. Commit may fail
	// with domain.ErrTxConflict; callers retry the whole unit of work.
	BeginSerializableTx(ctx context.Context) (Tx, error)
}
