package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/SpaceCases_Go/internal/domain"
)

const accountColumns = `account_id, balance, inventory_capacity, claim_streak, last_claimed_at, created_at`

const (
	queryInsertAccount = `
		INSERT INTO accounts (account_id, balance, inventory_capacity)
		VALUES ($1, $2, $3)
		RETURNING ` + accountColumns

	queryGetAccount = `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1`

	queryGetAccountForUpdate = queryGetAccount + ` FOR UPDATE`

	queryDeleteAccount = `DELETE FROM accounts WHERE account_id = $1`

	// Both CTEs read the same snapshot, so the existence flag and the
	// conditional update agree even under concurrent deductions.
	queryTryDeduct = `
		WITH target AS (
			SELECT account_id FROM accounts WHERE account_id = $1
		), deducted AS (
			UPDATE accounts SET balance = balance - $2
			WHERE account_id = $1 AND balance >= $2
			RETURNING balance
		)
		SELECT EXISTS (SELECT 1 FROM target), EXISTS (SELECT 1 FROM deducted)`

	queryChangeBalance = `
		UPDATE accounts SET balance = balance + $2
		WHERE account_id = $1
		RETURNING balance`

	queryUpdateClaim = `
		UPDATE accounts
		SET balance = balance + $4, claim_streak = $2, last_claimed_at = $3
		WHERE account_id = $1
		RETURNING balance`
)

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var a domain.Account
	if err := row.Scan(&a.ID, &a.Balance, &a.InventoryCapacity, &a.ClaimStreak, &a.LastClaimedAt, &a.CreatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

// CreateAccount inserts a new account row
func (q queries) CreateAccount(ctx context.Context, account domain.Account) (*domain.Account, error) {
	created, err := scanAccount(q.q.QueryRow(ctx, queryInsertAccount, account.ID, account.Balance, account.InventoryCapacity))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %d", domain.ErrAccountExists, account.ID)
		}
		return nil, mapError(err, ErrMsgFailedToInsertAccount)
	}
	return created, nil
}

// GetAccount retrieves an account by id
func (q queries) GetAccount(ctx context.Context, accountID int64) (*domain.Account, error) {
	return q.getAccount(ctx, queryGetAccount, accountID, ErrMsgFailedToGetAccount)
}

// GetAccountForUpdate retrieves an account and locks its row
func (t *Tx) GetAccountForUpdate(ctx context.Context, accountID int64) (*domain.Account, error) {
	return t.getAccount(ctx, queryGetAccountForUpdate, accountID, ErrMsgFailedToLockAccount)
}

func (q queries) getAccount(ctx context.Context, query string, accountID int64, msg string) (*domain.Account, error) {
	a, err := scanAccount(q.q.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %d", domain.ErrAccountNotFound, accountID)
		}
		return nil, mapError(err, msg)
	}
	return a, nil
}

// DeleteAccount removes an account; its items and settlements cascade
func (q queries) DeleteAccount(ctx context.Context, accountID int64) error {
	tag, err := q.q.Exec(ctx, queryDeleteAccount, accountID)
	if err != nil {
		return mapError(err, ErrMsgFailedToDeleteAccount)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %d", domain.ErrAccountNotFound, accountID)
	}
	return nil
}

// TryDeduct subtracts amount if the balance covers it
func (q queries) TryDeduct(ctx context.Context, accountID, amount int64) (bool, error) {
	var exists, deducted bool
	if err := q.q.QueryRow(ctx, queryTryDeduct, accountID, amount).Scan(&exists, &deducted); err != nil {
		return false, mapError(err, ErrMsgFailedToDeductBalance)
	}
	if !exists {
		return false, fmt.Errorf("%w: %d", domain.ErrAccountNotFound, accountID)
	}
	return deducted, nil
}

// ChangeBalance adds delta to the balance and returns the result
func (q queries) ChangeBalance(ctx context.Context, accountID, delta int64) (int64, error) {
	var balance int64
	if err := q.q.QueryRow(ctx, queryChangeBalance, accountID, delta).Scan(&balance); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("%w: %d", domain.ErrAccountNotFound, accountID)
		}
		return 0, mapError(err, ErrMsgFailedToChangeBalance)
	}
	return balance, nil
}

// UpdateClaim credits a daily reward and records the streak
func (t *Tx) UpdateClaim(ctx context.Context, accountID int64, streak int, claimedAt time.Time, reward int64) (int64, error) {
	var balance int64
	if err := t.q.QueryRow(ctx, queryUpdateClaim, accountID, streak, claimedAt, reward).Scan(&balance); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("%w: %d", domain.ErrAccountNotFound, accountID)
		}
		return 0, mapError(err, ErrMsgFailedToUpdateClaim)
	}
	return balance, nil
}
