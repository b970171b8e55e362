package settlement

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/SpaceCases_Go/internal/catalog"
	"github.com/osse101/SpaceCases_Go/internal/domain"
	"github.com/osse101/SpaceCases_Go/internal/drop"
	"github.com/osse101/SpaceCases_Go/internal/event"
	"github.com/osse101/SpaceCases_Go/internal/logger"
	"github.com/osse101/SpaceCases_Go/internal/metrics"
	"github.com/osse101/SpaceCases_Go/internal/repository"
)

// EventPublisher defines the interface for publishing events with retry
type EventPublisher interface {
	PublishWithRetry(ctx context.Context, evt event.Event)
}

// Config holds settlement tuning
type Config struct {
	KeyPrice int64
	Window   time.Duration
}

// DefaultConfig returns the standard key price and decision window
func DefaultConfig() Config {
	return Config{KeyPrice: DefaultKeyPrice, Window: DefaultWindow}
}

// Session is a freshly opened settlement with the details of the draw
type Session struct {
	domain.Settlement
	Drop drop.Drop `json:"drop"`
}

// Service defines the interface for open-container sessions
type Service interface {
	Open(ctx context.Context, accountID int64, containerName string) (*Session, error)
	Keep(ctx context.Context, accountID int64, sessionID uuid.UUID) (*domain.SettlementOutcome, error)
	Sell(ctx context.Context, accountID int64, sessionID uuid.UUID) (*domain.SettlementOutcome, error)
	Expire(ctx context.Context, sessionID uuid.UUID) (*domain.SettlementOutcome, error)
	Get(ctx context.Context, sessionID uuid.UUID) (*domain.Settlement, error)
	ListOpen(ctx context.Context) ([]domain.Settlement, error)
}

type service struct {
	repo      repository.Store
	catalog   catalog.Provider
	engine    *drop.Engine
	publisher EventPublisher
	cfg       Config
	now       func() time.Time
}

// NewService creates a new settlement service. publisher may be nil.
func NewService(repo repository.Store, provider catalog.Provider, engine *drop.Engine, publisher EventPublisher, cfg Config) Service {
	if cfg.Window <= 0 {
		cfg.Window = DefaultWindow
	}
	return &service{
		repo:      repo,
		catalog:   provider,
		engine:    engine,
		publisher: publisher,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Open charges the container cost and reserves the drawn item. The
// deduction and the reserved session commit together or not at all.
func (s *service) Open(ctx context.Context, accountID int64, containerName string) (*Session, error) {
	log := logger.FromContext(ctx)

	snap, err := s.catalog.Current()
	if err != nil {
		return nil, err
	}
	container, err := snap.Container(containerName)
	if err != nil {
		return nil, err
	}
	cost := container.Cost(s.cfg.KeyPrice)

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBeginTransactionFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	ok, err := tx.TryDeduct(ctx, accountID, cost)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf(ErrMsgCannotAffordFmt, container.Name, cost, domain.ErrInsufficientFunds)
	}

	// Nothing is drawn until the deduction holds; a failed draw rolls it back.
	d, err := s.engine.Open(container)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgDrawFailedFmt, container.Name, err)
	}
	entry, err := snap.Entry(d.CatalogRef)
	if err != nil {
		log.Error(LogMsgDrawMissingEntry, "container", container.Name, "catalog_ref", d.CatalogRef)
		return nil, fmt.Errorf(ErrMsgNoCatalogEntryFmt, d.CatalogRef, err)
	}

	now := s.now()
	session := domain.Settlement{
		ID:            uuid.New(),
		AccountID:     accountID,
		ContainerName: container.Name,
		AmountPaid:    cost,
		Item:          d.NewItem(),
		SellPrice:     entry.Price,
		Status:        domain.SettlementStatusReserved,
		ExpiresAt:     now.Add(s.cfg.Window),
		CreatedAt:     now,
	}
	if err := tx.CreateSettlement(ctx, session); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf(ErrMsgCommitTransactionFailed, err)
	}

	metrics.ContainersOpened.WithLabelValues(string(container.Kind)).Inc()
	metrics.MoneySpent.Add(float64(cost))
	metrics.SettlementsPending.Inc()
	log.Info(LogMsgContainerOpened,
		"account_id", accountID,
		"container", container.Name,
		"session_id", session.ID,
		"catalog_ref", d.CatalogRef,
		"cost", cost)

	s.publish(ctx, event.NewSettlementOpenedEvent(session))
	return &Session{Settlement: session, Drop: d}, nil
}

// Keep moves the reserved item into the inventory. A full inventory
// leaves the session reserved so it can still be sold.
func (s *service) Keep(ctx context.Context, accountID int64, sessionID uuid.UUID) (*domain.SettlementOutcome, error) {
	log := logger.FromContext(ctx)

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBeginTransactionFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	session, err := s.loadOwned(ctx, tx, accountID, sessionID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if session.Expired(now) {
		return nil, fmt.Errorf(ErrMsgSessionFmt, sessionID, domain.ErrSettlementExpired)
	}

	if err := s.finalize(ctx, tx, session, domain.SettlementStatusKept, now); err != nil {
		return nil, err
	}
	item, err := tx.AddItem(ctx, accountID, session.Item)
	if err != nil {
		return nil, err
	}
	if item == nil {
		log.Info(LogMsgKeepNoSpace, "account_id", accountID, "session_id", sessionID)
		return nil, fmt.Errorf(ErrMsgSessionFmt, sessionID, domain.ErrInventoryFull)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf(ErrMsgCommitTransactionFailed, err)
	}

	s.settled(ctx, *session)
	log.Info(LogMsgSettlementKept, "account_id", accountID, "session_id", sessionID, "item_id", item.ID)
	return &domain.SettlementOutcome{Settlement: *session, Item: item}, nil
}

// Sell credits the reserved item's sell price instead of keeping it
func (s *service) Sell(ctx context.Context, accountID int64, sessionID uuid.UUID) (*domain.SettlementOutcome, error) {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBeginTransactionFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	session, err := s.loadOwned(ctx, tx, accountID, sessionID)
	if err != nil {
		return nil, err
	}
	out, err := s.credit(ctx, tx, session, domain.SettlementStatusSold)
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info(LogMsgSettlementSold, "account_id", accountID, "session_id", sessionID, "price", session.SellPrice)
	return out, nil
}

// Expire auto-sells a session whose decision window has passed. It is a
// no-op returning ErrSettlementAlreadyFinalized when the user got there first.
func (s *service) Expire(ctx context.Context, sessionID uuid.UUID) (*domain.SettlementOutcome, error) {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBeginTransactionFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	session, err := tx.GetSettlement(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status.IsFinal() {
		return nil, fmt.Errorf(ErrMsgSessionFmt, sessionID, domain.ErrSettlementAlreadyFinalized)
	}
	out, err := s.credit(ctx, tx, session, domain.SettlementStatusAutoSold)
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info(LogMsgSettlementAuto, "account_id", session.AccountID, "session_id", sessionID, "price", session.SellPrice)
	return out, nil
}

func (s *service) Get(ctx context.Context, sessionID uuid.UUID) (*domain.Settlement, error) {
	return s.repo.GetSettlement(ctx, sessionID)
}

func (s *service) ListOpen(ctx context.Context) ([]domain.Settlement, error) {
	return s.repo.ListOpenSettlements(ctx)
}

// loadOwned fetches a reserved session belonging to accountID. Sessions of
// other accounts are reported as not found.
func (s *service) loadOwned(ctx context.Context, tx repository.Tx, accountID int64, sessionID uuid.UUID) (*domain.Settlement, error) {
	session, err := tx.GetSettlement(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.AccountID != accountID {
		return nil, fmt.Errorf(ErrMsgSessionFmt, sessionID, domain.ErrSettlementNotFound)
	}
	if session.Status.IsFinal() {
		return nil, fmt.Errorf(ErrMsgSessionFmt, sessionID, domain.ErrSettlementAlreadyFinalized)
	}
	return session, nil
}

// finalize flips the latch. Only one caller per session ever gets past it.
func (s *service) finalize(ctx context.Context, tx repository.Tx, session *domain.Settlement, status domain.SettlementStatus, now time.Time) error {
	ok, err := tx.FinalizeSettlement(ctx, session.ID, status, now)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf(ErrMsgSessionFmt, session.ID, domain.ErrSettlementAlreadyFinalized)
	}
	session.Status = status
	session.SettledAt = &now
	return nil
}

func (s *service) credit(ctx context.Context, tx repository.Tx, session *domain.Settlement, status domain.SettlementStatus) (*domain.SettlementOutcome, error) {
	if err := s.finalize(ctx, tx, session, status, s.now()); err != nil {
		return nil, err
	}
	balance, err := tx.ChangeBalance(ctx, session.AccountID, session.SellPrice)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf(ErrMsgCommitTransactionFailed, err)
	}

	metrics.MoneyPaidOut.WithLabelValues(metrics.SourceSettlement).Add(float64(session.SellPrice))
	s.settled(ctx, *session)
	return &domain.SettlementOutcome{Settlement: *session, Balance: &balance}, nil
}

func (s *service) settled(ctx context.Context, session domain.Settlement) {
	metrics.Settlements.WithLabelValues(string(session.Status)).Inc()
	metrics.SettlementsPending.Dec()
	s.publish(ctx, event.NewSettlementFinalizedEvent(session))
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.publisher != nil {
		s.publisher.PublishWithRetry(ctx, evt)
	}
}
