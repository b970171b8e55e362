package handler

// Generic HTTP error messages for client responses.
// These messages do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgInvalidAccountID      = "Invalid account id"
	ErrMsgInvalidItemID         = "Invalid item id"
	ErrMsgInvalidSessionID      = "Invalid session id"
	ErrMsgMissingQueryParam     = "Missing %s query parameter"
	ErrMsgInvalidLimit          = "Invalid limit parameter"
)

// Stable error codes returned alongside the message. Clients branch on
// these, never on the message text.
const (
	CodeInvalidRequest      = "invalid_request"
	CodeAccountNotFound     = "account_not_found"
	CodeAccountExists       = "account_exists"
	CodeInsufficientFunds   = "insufficient_funds"
	CodeInvalidAmount       = "invalid_amount"
	CodeInvalidTransfer     = "invalid_transfer"
	CodeAlreadyClaimed      = "already_claimed"
	CodeInventoryFull       = "inventory_full"
	CodeItemNotFound        = "item_not_found"
	CodeCatalogEntryMissing = "catalog_entry_missing"
	CodeContainerNotFound   = "container_not_found"
	CodeCatalogUnavailable  = "catalog_unavailable"
	CodeUpgradeNotAllowed   = "upgrade_not_allowed"
	CodeSettlementNotFound  = "settlement_not_found"
	CodeSettlementFinalized = "settlement_finalized"
	CodeSettlementExpired   = "settlement_expired"
	CodeConflict            = "conflict"
	CodeInternal            = "internal_error"
)

// Success messages for API responses
const (
	MsgAccountClosed = "Account closed"
)

// Log messages
const (
	LogMsgDecodeFailed     = "Failed to decode request"
	LogMsgValidationFailed = "Request validation failed"
	LogMsgServiceRejected  = "Request rejected"
	LogMsgServiceFailed    = "Request failed"
	LogMsgEncodeFailed     = "Failed to encode JSON response"
	LogMsgWriteFailed      = "Failed to write response buffer"
	LogMsgReadinessFailed  = "Readiness check failed"

	LogMsgAccountRegistered = "Account registered"
	LogMsgAccountClosed     = "Account closed"
	LogMsgRewardClaimed     = "Daily reward claimed"
	LogMsgTransferred       = "Transfer completed"
	LogMsgItemSold          = "Item sold"
	LogMsgContainerOpened   = "Container opened"
	LogMsgSettlementDone    = "Settlement finalized"
	LogMsgUpgradeExecuted   = "Upgrade executed"
)
