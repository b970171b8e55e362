package settlement

import "time"

// Defaults
const (
	// DefaultKeyPrice is charged on top of containers that require a key (cents)
	DefaultKeyPrice int64 = 249
	// DefaultWindow is how long a drawn item waits for a keep or sell decision
	DefaultWindow = 30 * time.Second
)

// Formatted error messages
const (
	ErrMsgBeginTransactionFailed  = "failed to begin transaction: %w"
	ErrMsgCommitTransactionFailed = "failed to commit transaction: %w"
	ErrMsgCannotAffordFmt         = "%s costs %d: %w"
	ErrMsgSessionFmt              = "session %s: %w"
	ErrMsgNoCatalogEntryFmt       = "drawn item %s: %w"
	ErrMsgDrawFailedFmt           = "failed to draw from %s: %w"
)

// Log messages
const (
	LogMsgContainerOpened  = "Container opened"
	LogMsgSettlementKept   = "Settlement kept"
	LogMsgSettlementSold   = "Settlement sold"
	LogMsgSettlementAuto   = "Settlement auto-sold"
	LogMsgKeepNoSpace      = "Keep rejected, inventory full"
	LogMsgDrawMissingEntry = "Drawn item has no catalog entry"
)
