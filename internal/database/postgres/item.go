package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/SpaceCases_Go/internal/domain"
)

const (
	queryLockCapacity = `SELECT inventory_capacity FROM accounts WHERE account_id = $1 FOR UPDATE`

	queryCountItems = `SELECT COUNT(*) FROM items WHERE account_id = $1`

	queryInsertItem = `
		INSERT INTO items (account_id, kind, catalog_ref, details)
		VALUES ($1, $2::text::item_kind, $3, $4)
		RETURNING item_id, created_at`

	queryRemoveItem = `DELETE FROM items WHERE account_id = $1 AND item_id = $2`

	// The left join distinguishes a missing account from an unowned item
	queryGetItem = `
		SELECT i.item_id, i.kind::text, i.catalog_ref, i.details, i.created_at
		FROM accounts a
		LEFT JOIN items i ON i.account_id = a.account_id AND i.item_id = $2
		WHERE a.account_id = $1`

	queryReplaceItem = `
		UPDATE items SET kind = $3::text::item_kind, catalog_ref = $4, details = $5
		WHERE account_id = $1 AND item_id = $2`

	queryListItems = `
		SELECT item_id, kind::text, catalog_ref, details, created_at
		FROM items WHERE account_id = $1
		ORDER BY item_id`
)

// AddItem inserts an item unless the inventory is full. Must run inside a
// transaction so the account row lock spans the count and the insert.
func (q queries) AddItem(ctx context.Context, accountID int64, item domain.NewItem) (*domain.Item, error) {
	if err := item.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToInsertItem, err)
	}
	details, err := marshalDetails(item.Attributes)
	if err != nil {
		return nil, err
	}

	var capacity int
	if err := q.q.QueryRow(ctx, queryLockCapacity, accountID).Scan(&capacity); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %d", domain.ErrAccountNotFound, accountID)
		}
		return nil, mapError(err, ErrMsgFailedToLockAccount)
	}

	var count int
	if err := q.q.QueryRow(ctx, queryCountItems, accountID).Scan(&count); err != nil {
		return nil, mapError(err, ErrMsgFailedToCountItems)
	}
	if count >= capacity {
		return nil, nil
	}

	added := domain.Item{
		AccountID:  accountID,
		Kind:       item.Kind,
		CatalogRef: item.CatalogRef,
		Attributes: item.Attributes,
	}
	if err := q.q.QueryRow(ctx, queryInsertItem, accountID, string(item.Kind), item.CatalogRef, details).Scan(&added.ID, &added.CreatedAt); err != nil {
		return nil, mapError(err, ErrMsgFailedToInsertItem)
	}
	return &added, nil
}

// RemoveItem deletes an owned item
func (q queries) RemoveItem(ctx context.Context, accountID, itemID int64) (bool, error) {
	tag, err := q.q.Exec(ctx, queryRemoveItem, accountID, itemID)
	if err != nil {
		return false, mapError(err, ErrMsgFailedToRemoveItem)
	}
	return tag.RowsAffected() > 0, nil
}

// GetItem reads an owned item
func (q queries) GetItem(ctx context.Context, accountID, itemID int64) (bool, *domain.Item, error) {
	var (
		id      *int64
		kind    *string
		ref     *string
		details []byte
		created *time.Time
	)
	err := q.q.QueryRow(ctx, queryGetItem, accountID, itemID).Scan(&id, &kind, &ref, &details, &created)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil, nil
		}
		return false, nil, mapError(err, ErrMsgFailedToGetItem)
	}
	if id == nil {
		return true, nil, nil
	}

	attrs, err := unmarshalDetails(details)
	if err != nil {
		return true, nil, err
	}
	return true, &domain.Item{
		ID:         *id,
		AccountID:  accountID,
		Kind:       domain.ItemKind(*kind),
		CatalogRef: *ref,
		Attributes: attrs,
		CreatedAt:  *created,
	}, nil
}

// ReplaceItem swaps an owned item's identity and attributes in place
func (q queries) ReplaceItem(ctx context.Context, accountID, itemID int64, item domain.NewItem) (bool, error) {
	if err := item.Validate(); err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgFailedToReplaceItem, err)
	}
	details, err := marshalDetails(item.Attributes)
	if err != nil {
		return false, err
	}
	tag, err := q.q.Exec(ctx, queryReplaceItem, accountID, itemID, string(item.Kind), item.CatalogRef, details)
	if err != nil {
		return false, mapError(err, ErrMsgFailedToReplaceItem)
	}
	return tag.RowsAffected() > 0, nil
}

// ListItems returns the account's inventory ordered by acquisition
func (q queries) ListItems(ctx context.Context, accountID int64) (*domain.Inventory, error) {
	account, err := q.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	rows, err := q.q.Query(ctx, queryListItems, accountID)
	if err != nil {
		return nil, mapError(err, ErrMsgFailedToListItems)
	}
	defer rows.Close()

	inv := &domain.Inventory{
		AccountID: accountID,
		Capacity:  account.InventoryCapacity,
		Items:     []domain.Item{},
	}
	for rows.Next() {
		var (
			item    domain.Item
			kind    string
			details []byte
		)
		if err := rows.Scan(&item.ID, &kind, &item.CatalogRef, &details, &item.CreatedAt); err != nil {
			return nil, mapError(err, ErrMsgFailedToListItems)
		}
		if item.Attributes, err = unmarshalDetails(details); err != nil {
			return nil, err
		}
		item.AccountID = accountID
		item.Kind = domain.ItemKind(kind)
		inv.Items = append(inv.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, ErrMsgFailedToListItems)
	}
	return inv, nil
}
