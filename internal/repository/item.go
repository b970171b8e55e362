package repository

import (
	"context"

	"github.com/osse101/SpaceCases_Go/internal/domain"
)

// Items defines inventory persistence
type Items interface {
	// AddItem inserts item for the account while holding the account row lock.
	// It returns nil, nil when the inventory is at capacity.
	AddItem(ctx context.Context, accountID int64, item domain.NewItem) (*domain.Item, error)
	RemoveItem(ctx context.Context, accountID, itemID int64) (bool, error)
	// GetItem reports whether the account exists and, if it owns itemID, the item
	GetItem(ctx context.Context, accountID, itemID int64) (bool, *domain.Item, error)
	ReplaceItem(ctx context.Context, accountID, itemID int64, item domain.NewItem) (bool, error)
	ListItems(ctx context.Context, accountID int64) (*domain.Inventory, error)
}
