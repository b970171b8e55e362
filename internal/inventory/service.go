package inventory

import (
	"context"
	"fmt"

	"github.com/osse101/SpaceCases_Go/internal/catalog"
	"github.com/osse101/SpaceCases_Go/internal/domain"
	"github.com/osse101/SpaceCases_Go/internal/logger"
	"github.com/osse101/SpaceCases_Go/internal/metrics"
	"github.com/osse101/SpaceCases_Go/internal/repository"
)

// SellResult is returned after selling an owned item
type SellResult struct {
	Item    domain.Item `json:"item"`
	Price   int64       `json:"price"`
	Balance int64       `json:"balance"`
}

// Service defines the interface for inventory operations
type Service interface {
	// AddItem returns nil, nil when the inventory is full
	AddItem(ctx context.Context, accountID int64, item domain.NewItem) (*domain.Item, error)
	RemoveItem(ctx context.Context, accountID, itemID int64) (bool, error)
	GetItem(ctx context.Context, accountID, itemID int64) (bool, *domain.Item, error)
	ReplaceItem(ctx context.Context, accountID, itemID int64, item domain.NewItem) (bool, error)
	ListInventory(ctx context.Context, accountID int64) (*domain.Inventory, error)
	SellItem(ctx context.Context, accountID, itemID int64) (*SellResult, error)
}

type service struct {
	repo    repository.Store
	catalog catalog.Provider
}

// NewService creates a new inventory service
func NewService(repo repository.Store, provider catalog.Provider) Service {
	return &service{
		repo:    repo,
		catalog: provider,
	}
}

func (s *service) AddItem(ctx context.Context, accountID int64, item domain.NewItem) (*domain.Item, error) {
	log := logger.FromContext(ctx)

	added, err := s.repo.AddItem(ctx, accountID, item)
	if err != nil {
		return nil, err
	}
	if added == nil {
		log.Info(LogMsgInventoryFull, "account_id", accountID, "catalog_ref", item.CatalogRef)
		return nil, nil
	}
	log.Info(LogMsgItemAdded, "account_id", accountID, "item_id", added.ID, "catalog_ref", added.CatalogRef)
	return added, nil
}

func (s *service) RemoveItem(ctx context.Context, accountID, itemID int64) (bool, error) {
	return s.repo.RemoveItem(ctx, accountID, itemID)
}

func (s *service) GetItem(ctx context.Context, accountID, itemID int64) (bool, *domain.Item, error) {
	return s.repo.GetItem(ctx, accountID, itemID)
}

func (s *service) ReplaceItem(ctx context.Context, accountID, itemID int64, item domain.NewItem) (bool, error) {
	ok, err := s.repo.ReplaceItem(ctx, accountID, itemID, item)
	if err != nil {
		return false, err
	}
	if ok {
		logger.FromContext(ctx).Info(LogMsgItemReplaced, "account_id", accountID, "item_id", itemID, "catalog_ref", item.CatalogRef)
	}
	return ok, nil
}

func (s *service) ListInventory(ctx context.Context, accountID int64) (*domain.Inventory, error) {
	return s.repo.ListItems(ctx, accountID)
}

// SellItem removes an owned item and credits its current catalog price in
// one transaction. An item without market data cannot be sold.
func (s *service) SellItem(ctx context.Context, accountID, itemID int64) (*SellResult, error) {
	snap, err := s.catalog.Current()
	if err != nil {
		return nil, err
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBeginTransactionFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	exists, item, err := tx.GetItem(ctx, accountID, itemID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %d", domain.ErrAccountNotFound, accountID)
	}
	if item == nil {
		return nil, fmt.Errorf(ErrMsgItemNotOwnedFmt, itemID, accountID, domain.ErrItemNotFound)
	}

	entry, err := snap.Entry(item.CatalogRef)
	if err != nil {
		return nil, err
	}
	if !entry.HasPrice() {
		return nil, fmt.Errorf(ErrMsgNoMarketDataFmt, item.CatalogRef, domain.ErrCatalogEntryMissing)
	}

	removed, err := tx.RemoveItem(ctx, accountID, itemID)
	if err != nil {
		return nil, err
	}
	if !removed {
		return nil, fmt.Errorf(ErrMsgItemNotOwnedFmt, itemID, accountID, domain.ErrItemNotFound)
	}

	balance, err := tx.ChangeBalance(ctx, accountID, entry.Price)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf(ErrMsgCommitTransactionFailed, err)
	}

	metrics.ItemsSold.WithLabelValues(string(item.Kind)).Inc()
	metrics.MoneyPaidOut.WithLabelValues(metrics.SourceSale).Add(float64(entry.Price))
	logger.FromContext(ctx).Info(LogMsgItemSold, "account_id", accountID, "item_id", itemID, "price", entry.Price)

	return &SellResult{Item: *item, Price: entry.Price, Balance: balance}, nil
}

// Value sums the catalog price of every item. Items missing from the
// catalog count as zero.
func Value(inv *domain.Inventory, snap *catalog.Snapshot) int64 {
	var total int64
	for _, item := range inv.Items {
		if entry, err := snap.Entry(item.CatalogRef); err == nil {
			total += entry.Price
		}
	}
	return total
}
