package repository

import (
	"context"

	"github.com/osse101/SpaceCases_Go/internal/domain"
)

// Accounts defines balance and account lifecycle persistence
type Accounts interface {
	// CreateAccount inserts a new account; domain.ErrAccountExists if the id is taken
	CreateAccount(ctx context.Context, account domain.Account) (*domain.Account, error)
	GetAccount(ctx context.Context, accountID int64) (*domain.Account, error)
	// DeleteAccount removes the account row. Items and pending settlements cascade.
	DeleteAccount(ctx context.Context, accountID int64) error

	// TryDeduct subtracts amount only if the balance covers it. The check and
	// the subtraction are one statement.
	TryDeduct(ctx context.Context, accountID, amount int64) (bool, error)
	// ChangeBalance adds delta unconditionally and returns the new balance.
	// A result below zero fails with domain.ErrInsufficientFunds.
	ChangeBalance(ctx context.Context, accountID, delta int64) (int64, error)
}
