package ledger

import "time"

// Claim rules
const (
	// ClaimCooldown is the minimum time between two claims
	ClaimCooldown = 24 * time.Hour
	// ClaimStreakWindow is how long after the last claim the streak survives
	ClaimStreakWindow = 48 * time.Hour

	DefaultClaimBaseReward    int64 = 100
	DefaultClaimMaxMultiplier       = 7
)

// Account defaults
const (
	DefaultStartingBalance   int64 = 0
	DefaultInventoryCapacity       = 50
)

// DefaultMaxTransferAttempts bounds retries of a transfer that lost a
// serialization race
const DefaultMaxTransferAttempts = 5

// CentsPerUnit is the number of minor units in one display unit
const CentsPerUnit = 100

// Formatted error messages
const (
	ErrMsgSelfTransferFmt         = "cannot transfer to self (%d): %w"
	ErrMsgNonPositiveTransferFmt  = "transfer amount must be positive, got %d: %w"
	ErrMsgTransferRetriesFmt      = "transfer abandoned after %d attempts: %w"
	ErrMsgNextClaimFmt            = "next claim available at %s: %w"
	ErrMsgBeginTransactionFailed  = "failed to begin transaction: %w"
	ErrMsgCommitTransactionFailed = "failed to commit transaction: %w"
	ErrMsgParseAmountFmt          = "cannot parse %q as an amount: %w"
)

// Log messages
const (
	LogMsgAccountRegistered = "Account registered"
	LogMsgAccountClosed     = "Account closed"
	LogMsgTransferCompleted = "Transfer completed"
	LogMsgTransferRetrying  = "Transfer lost serialization race, retrying"
	LogMsgClaimGranted      = "Daily reward claimed"
)
