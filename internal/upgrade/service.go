package upgrade

import (
	"context"
	"errors"
	"fmt"

	"github.com/osse101/SpaceCases_Go/internal/catalog"
	"github.com/osse101/SpaceCases_Go/internal/domain"
	"github.com/osse101/SpaceCases_Go/internal/drop"
	"github.com/osse101/SpaceCases_Go/internal/logger"
	"github.com/osse101/SpaceCases_Go/internal/metrics"
	"github.com/osse101/SpaceCases_Go/internal/repository"
)

// Quote is a priced upgrade proposal for one owned item
type Quote struct {
	Item   domain.Item         `json:"item"`
	Start  domain.CatalogEntry `json:"start"`
	Target domain.CatalogEntry `json:"target"`
	Odds   Odds                `json:"odds"`
}

// Result is the outcome of an executed upgrade
type Result struct {
	Quote   Quote           `json:"quote"`
	Success bool            `json:"success"`
	Roll    float64         `json:"roll"`
	Item    *domain.NewItem `json:"item,omitempty"`
}

// Service defines the interface for upgrade operations
type Service interface {
	Quote(ctx context.Context, accountID, itemID int64, target string) (*Quote, error)
	Execute(ctx context.Context, accountID, itemID int64, target string) (*Result, error)
}

type service struct {
	repo    repository.Store
	catalog catalog.Provider
	rnd     drop.Random
}

// NewService creates a new upgrade service
func NewService(repo repository.Store, provider catalog.Provider, rnd drop.Random) Service {
	return &service{
		repo:    repo,
		catalog: provider,
		rnd:     rnd,
	}
}

func (s *service) Quote(ctx context.Context, accountID, itemID int64, target string) (*Quote, error) {
	snap, err := s.catalog.Current()
	if err != nil {
		return nil, err
	}
	return s.quote(ctx, snap, accountID, itemID, target)
}

func (s *service) quote(ctx context.Context, snap *catalog.Snapshot, accountID, itemID int64, target string) (*Quote, error) {
	exists, item, err := s.repo.GetItem(ctx, accountID, itemID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %d", domain.ErrAccountNotFound, accountID)
	}
	if item == nil {
		return nil, fmt.Errorf(ErrMsgItemNotOwnedFmt, itemID, accountID, domain.ErrItemNotFound)
	}

	start, err := snap.Entry(item.CatalogRef)
	if err != nil {
		return nil, err
	}
	dest, err := snap.Entry(target)
	if err != nil {
		return nil, err
	}

	odds, err := ComputeOdds(start.Price, dest.Price)
	if err != nil {
		return nil, err
	}

	return &Quote{Item: *item, Start: start, Target: dest, Odds: odds}, nil
}

// Execute re-quotes against the current snapshot and rolls once. On success
// the item is replaced by the target in place; on failure it is destroyed.
func (s *service) Execute(ctx context.Context, accountID, itemID int64, target string) (*Result, error) {
	log := logger.FromContext(ctx)

	snap, err := s.catalog.Current()
	if err != nil {
		return nil, err
	}
	q, err := s.quote(ctx, snap, accountID, itemID, target)
	if err != nil {
		if errors.Is(err, domain.ErrUpgradeNotAllowed) {
			metrics.Upgrades.WithLabelValues(metrics.ResultRejected).Inc()
			log.Info(LogMsgUpgradeRejected, "account_id", accountID, "item_id", itemID, "target", target, "reason", err.Error())
		}
		return nil, err
	}

	res := &Result{Quote: *q, Roll: s.rnd.Float64()}
	res.Success = res.Roll < q.Odds.Chance

	if !res.Success {
		removed, err := s.repo.RemoveItem(ctx, accountID, itemID)
		if err != nil {
			return nil, err
		}
		if !removed {
			return nil, fmt.Errorf(ErrMsgItemVanishedFmt, itemID, accountID, domain.ErrItemNotFound)
		}
		metrics.Upgrades.WithLabelValues(metrics.ResultFailure).Inc()
		log.Info(LogMsgUpgradeFailed, "account_id", accountID, "item_id", itemID, "target", q.Target.Name, "chance", q.Odds.Chance)
		return res, nil
	}

	next, err := s.targetItem(q.Target)
	if err != nil {
		return nil, err
	}
	replaced, err := s.repo.ReplaceItem(ctx, accountID, itemID, next)
	if err != nil {
		return nil, err
	}
	if !replaced {
		return nil, fmt.Errorf(ErrMsgItemVanishedFmt, itemID, accountID, domain.ErrItemNotFound)
	}

	res.Item = &next
	metrics.Upgrades.WithLabelValues(metrics.ResultSuccess).Inc()
	log.Info(LogMsgUpgradeSucceeded, "account_id", accountID, "item_id", itemID, "target", q.Target.Name, "chance", q.Odds.Chance)
	return res, nil
}

// targetItem builds the replacement item. Skins get a fresh float inside
// the target's wear band.
func (s *service) targetItem(entry domain.CatalogEntry) (domain.NewItem, error) {
	switch entry.Kind {
	case domain.ItemKindSkin:
		skin := entry.Float
		if skin.Max <= skin.Min {
			skin = domain.FloatRange{Min: 0, Max: 1}
		}
		f, err := drop.FloatForCondition(s.rnd, entry.Condition, skin)
		if err != nil {
			return domain.NewItem{}, fmt.Errorf(ErrMsgTargetFloatFmt, entry.Name, err)
		}
		return domain.NewItem{Kind: entry.Kind, CatalogRef: entry.Name, Attributes: domain.SkinAttributes(f)}, nil
	case domain.ItemKindSticker:
		return domain.NewItem{Kind: entry.Kind, CatalogRef: entry.Name}, nil
	default:
		return domain.NewItem{}, fmt.Errorf("unknown item kind %q", entry.Kind)
	}
}
