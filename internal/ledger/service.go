package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/osse101/SpaceCases_Go/internal/domain"
	"github.com/osse101/SpaceCases_Go/internal/logger"
	"github.com/osse101/SpaceCases_Go/internal/metrics"
	"github.com/osse101/SpaceCases_Go/internal/repository"
)

// Service defines the interface for balance operations
type Service interface {
	Register(ctx context.Context, accountID int64) (*domain.Account, error)
	Close(ctx context.Context, accountID int64) error
	Balance(ctx context.Context, accountID int64) (int64, error)
	TryDeduct(ctx context.Context, accountID, amount int64) (bool, error)
	ChangeBalance(ctx context.Context, accountID, delta int64) (int64, error)
	Transfer(ctx context.Context, senderID, recipientID, amount int64) (*domain.TransferResult, error)
	Claim(ctx context.Context, accountID int64) (*domain.ClaimResult, error)
}

// Config holds the economy parameters used by the ledger
type Config struct {
	StartingBalance     int64
	InventoryCapacity   int
	ClaimBaseReward     int64
	ClaimMaxMultiplier  int
	MaxTransferAttempts int
}

// DefaultConfig returns the standard economy parameters
func DefaultConfig() Config {
	return Config{
		StartingBalance:     DefaultStartingBalance,
		InventoryCapacity:   DefaultInventoryCapacity,
		ClaimBaseReward:     DefaultClaimBaseReward,
		ClaimMaxMultiplier:  DefaultClaimMaxMultiplier,
		MaxTransferAttempts: DefaultMaxTransferAttempts,
	}
}

type service struct {
	repo repository.Store
	cfg  Config
	now  func() time.Time
}

// NewService creates a new ledger service
func NewService(repo repository.Store, cfg Config) Service {
	if cfg.MaxTransferAttempts <= 0 {
		cfg.MaxTransferAttempts = DefaultMaxTransferAttempts
	}
	return &service{
		repo: repo,
		cfg:  cfg,
		now:  time.Now,
	}
}

func (s *service) Register(ctx context.Context, accountID int64) (*domain.Account, error) {
	account, err := s.repo.CreateAccount(ctx, domain.Account{
		ID:                accountID,
		Balance:           s.cfg.StartingBalance,
		InventoryCapacity: s.cfg.InventoryCapacity,
	})
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info(LogMsgAccountRegistered, "account_id", accountID)
	return account, nil
}

func (s *service) Close(ctx context.Context, accountID int64) error {
	if err := s.repo.DeleteAccount(ctx, accountID); err != nil {
		return err
	}
	logger.FromContext(ctx).Info(LogMsgAccountClosed, "account_id", accountID)
	return nil
}

func (s *service) Balance(ctx context.Context, accountID int64) (int64, error) {
	account, err := s.repo.GetAccount(ctx, accountID)
	if err != nil {
		return 0, err
	}
	return account.Balance, nil
}

func (s *service) TryDeduct(ctx context.Context, accountID, amount int64) (bool, error) {
	if amount < 0 {
		return false, fmt.Errorf("%w: deduction of %d", domain.ErrInvalidAmount, amount)
	}
	return s.repo.TryDeduct(ctx, accountID, amount)
}

func (s *service) ChangeBalance(ctx context.Context, accountID, delta int64) (int64, error) {
	return s.repo.ChangeBalance(ctx, accountID, delta)
}

// Transfer moves amount from sender to recipient. The unit of work runs
// SERIALIZABLE and is retried from the start when it loses a race.
func (s *service) Transfer(ctx context.Context, senderID, recipientID, amount int64) (*domain.TransferResult, error) {
	if senderID == recipientID {
		metrics.Transfers.WithLabelValues(metrics.ResultRejected).Inc()
		return nil, fmt.Errorf(ErrMsgSelfTransferFmt, senderID, domain.ErrInvalidTransfer)
	}
	if amount <= 0 {
		metrics.Transfers.WithLabelValues(metrics.ResultRejected).Inc()
		return nil, fmt.Errorf(ErrMsgNonPositiveTransferFmt, amount, domain.ErrInvalidTransfer)
	}

	log := logger.FromContext(ctx)
	var lastErr error
	for attempt := 1; attempt <= s.cfg.MaxTransferAttempts; attempt++ {
		result, err := s.transferOnce(ctx, senderID, recipientID, amount)
		if err == nil {
			metrics.Transfers.WithLabelValues(metrics.ResultSuccess).Inc()
			log.Info(LogMsgTransferCompleted, "sender", senderID, "recipient", recipientID, "amount", FormatAmount(amount))
			return result, nil
		}
		if !errors.Is(err, domain.ErrTxConflict) {
			metrics.Transfers.WithLabelValues(resultFor(err)).Inc()
			return nil, err
		}
		lastErr = err
		metrics.TransferRetries.Inc()
		log.Warn(LogMsgTransferRetrying, "attempt", attempt, "error", err)

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}

	metrics.Transfers.WithLabelValues(metrics.ResultError).Inc()
	return nil, fmt.Errorf(ErrMsgTransferRetriesFmt, s.cfg.MaxTransferAttempts, lastErr)
}

func (s *service) transferOnce(ctx context.Context, senderID, recipientID, amount int64) (*domain.TransferResult, error) {
	tx, err := s.repo.BeginSerializableTx(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBeginTransactionFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	sender, err := tx.GetAccountForUpdate(ctx, senderID)
	if err != nil {
		return nil, err
	}
	if sender.Balance < amount {
		return nil, fmt.Errorf("%w: balance %s, transfer %s", domain.ErrInsufficientFunds, FormatAmount(sender.Balance), FormatAmount(amount))
	}

	recipientBalance, err := tx.ChangeBalance(ctx, recipientID, amount)
	if err != nil {
		return nil, err
	}
	senderBalance, err := tx.ChangeBalance(ctx, senderID, -amount)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		if errors.Is(err, domain.ErrTxConflict) {
			return nil, err
		}
		return nil, fmt.Errorf(ErrMsgCommitTransactionFailed, err)
	}

	return &domain.TransferResult{
		SenderBalance:    senderBalance,
		RecipientBalance: recipientBalance,
		Amount:           amount,
	}, nil
}

// Claim grants the daily reward under the account row lock
func (s *service) Claim(ctx context.Context, accountID int64) (*domain.ClaimResult, error) {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBeginTransactionFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	account, err := tx.GetAccountForUpdate(ctx, accountID)
	if err != nil {
		metrics.Claims.WithLabelValues(metrics.ResultError).Inc()
		return nil, err
	}

	now := s.now()
	decision := ComputeClaim(now, account.LastClaimedAt, account.ClaimStreak, s.cfg.ClaimBaseReward, s.cfg.ClaimMaxMultiplier)
	if !decision.Allowed {
		metrics.Claims.WithLabelValues(metrics.ResultRejected).Inc()
		return nil, fmt.Errorf(ErrMsgNextClaimFmt, decision.NextClaim.Format(time.RFC3339), domain.ErrAlreadyClaimed)
	}

	balance, err := tx.UpdateClaim(ctx, accountID, decision.Streak, now, decision.Reward)
	if err != nil {
		metrics.Claims.WithLabelValues(metrics.ResultError).Inc()
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		metrics.Claims.WithLabelValues(metrics.ResultError).Inc()
		return nil, fmt.Errorf(ErrMsgCommitTransactionFailed, err)
	}

	metrics.Claims.WithLabelValues(metrics.ResultSuccess).Inc()
	metrics.MoneyPaidOut.WithLabelValues(metrics.SourceClaim).Add(float64(decision.Reward))
	logger.FromContext(ctx).Info(LogMsgClaimGranted, "account_id", accountID, "streak", decision.Streak, "reward", FormatAmount(decision.Reward))

	return &domain.ClaimResult{
		Balance: balance,
		Amount:  decision.Reward,
		Streak:  decision.Streak,
	}, nil
}

func resultFor(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientFunds), errors.Is(err, domain.ErrAccountNotFound):
		return metrics.ResultRejected
	default:
		return metrics.ResultError
	}
}
