package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Account errors
	ErrMsgAccountNotFound = "account not found"
	ErrMsgAccountExists   = "account already registered"

	// Ledger errors
	ErrMsgInsufficientFunds = "insufficient funds"
	ErrMsgInvalidAmount     = "invalid amount"
	ErrMsgInvalidTransfer   = "invalid transfer"
	ErrMsgAlreadyClaimed    = "daily reward already claimed"

	// Inventory errors
	ErrMsgInventoryFull = "inventory is full"
	ErrMsgItemNotFound  = "item not found"

	// Catalog errors
	ErrMsgCatalogEntryMissing = "catalog entry missing"
	ErrMsgContainerNotFound   = "container not found"
	ErrMsgInvalidContainer    = "invalid container definition"
	ErrMsgCatalogUnavailable  = "catalog not loaded"

	// Upgrade errors
	ErrMsgUpgradeNotAllowed = "upgrade not allowed"

	// Settlement errors
	ErrMsgSettlementNotFound         = "settlement not found"
	ErrMsgSettlementAlreadyFinalized = "settlement already finalized"
	ErrMsgSettlementExpired          = "settlement window has closed"

	// Database/System errors
	ErrMsgTxConflict        = "transaction conflict"
	ErrMsgConnectionTimeout = "connection timeout"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Account errors
	ErrAccountNotFound = errors.New(ErrMsgAccountNotFound)
	ErrAccountExists   = errors.New(ErrMsgAccountExists)

	// Ledger errors
	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)
	ErrInvalidAmount     = errors.New(ErrMsgInvalidAmount)
	ErrInvalidTransfer   = errors.New(ErrMsgInvalidTransfer)
	ErrAlreadyClaimed    = errors.New(ErrMsgAlreadyClaimed)

	// Inventory errors
	ErrInventoryFull = errors.New(ErrMsgInventoryFull)
	ErrItemNotFound  = errors.New(ErrMsgItemNotFound)

	// Catalog errors
	ErrCatalogEntryMissing = errors.New(ErrMsgCatalogEntryMissing)
	ErrContainerNotFound   = errors.New(ErrMsgContainerNotFound)
	ErrInvalidContainer    = errors.New(ErrMsgInvalidContainer)
	ErrCatalogUnavailable  = errors.New(ErrMsgCatalogUnavailable)

	// Upgrade errors
	ErrUpgradeNotAllowed = errors.New(ErrMsgUpgradeNotAllowed)

	// Settlement errors
	ErrSettlementNotFound         = errors.New(ErrMsgSettlementNotFound)
	ErrSettlementAlreadyFinalized = errors.New(ErrMsgSettlementAlreadyFinalized)
	ErrSettlementExpired          = errors.New(ErrMsgSettlementExpired)

	// ErrTxConflict is returned when a serializable transaction lost a race
	// and may be retried from the start.
	ErrTxConflict = errors.New(ErrMsgTxConflict)
)
