package inventory

// Formatted error messages
const (
	ErrMsgItemNotOwnedFmt         = "item %d not owned by account %d: %w"
	ErrMsgNoMarketDataFmt         = "no market data for %s: %w"
	ErrMsgBeginTransactionFailed  = "failed to begin transaction: %w"
	ErrMsgCommitTransactionFailed = "failed to commit transaction: %w"
)

// Log messages
const (
	LogMsgItemAdded     = "Item added"
	LogMsgInventoryFull = "Inventory full, item not added"
	LogMsgItemSold      = "Item sold"
	LogMsgItemReplaced  = "Item replaced"
)
