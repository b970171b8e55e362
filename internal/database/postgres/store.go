package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/SpaceCases_Go/internal/domain"
	"github.com/osse101/SpaceCases_Go/internal/repository"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store implements repository.Store for PostgreSQL
type Store struct {
	db *pgxpool.Pool
	queries
}

// NewStore creates a new Store
func NewStore(db *pgxpool.Pool) *Store {
	return &Store{
		db:      db,
		queries: queries{q: db},
	}
}

// Tx implements repository.Tx
type Tx struct {
	tx pgx.Tx
	queries
}

// BeginTx starts a new READ COMMITTED transaction
func (s *Store) BeginTx(ctx context.Context) (repository.Tx, error) {
	return s.begin(ctx, pgx.TxOptions{})
}

// BeginSerializableTx starts a new SERIALIZABLE transaction
func (s *Store) BeginSerializableTx(ctx context.Context) (repository.Tx, error) {
	return s.begin(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
}

func (s *Store) begin(ctx context.Context, opts pgx.TxOptions) (*Tx, error) {
	tx, err := s.db.BeginTx(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	return &Tx{
		tx:      tx,
		queries: queries{q: tx},
	}, nil
}

// AddItem runs the capacity-checked insert in its own transaction, since the
// account row lock only lasts as long as one
func (s *Store) AddItem(ctx context.Context, accountID int64, item domain.NewItem) (*domain.Item, error) {
	tx, err := s.begin(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer SafeRollback(ctx, tx.tx)

	added, err := tx.AddItem(ctx, accountID, item)
	if err != nil || added == nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return added, nil
}

// Commit commits the transaction
func (t *Tx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		return mapError(err, ErrMsgFailedToCommitTransaction)
	}
	return nil
}

// Rollback rolls back the transaction. Rolling back after Commit is a no-op.
func (t *Tx) Rollback(ctx context.Context) error {
	if err := t.tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return err
	}
	return nil
}

// queries holds the statements shared by Store and Tx
type queries struct {
	q querier
}

var (
	_ repository.Store = (*Store)(nil)
	_ repository.Tx    = (*Tx)(nil)
)
