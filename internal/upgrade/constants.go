package upgrade

// Odds tuning
const (
	// Exponent is applied to the price multiplier; chance = 1 / multiplier^Exponent
	Exponent = 2.0
	// MaxChance is the highest success chance an upgrade may have
	MaxChance = 0.9
)

// Rejection reasons
const (
	ReasonZeroTargetPrice = "target item has no market data"
	ReasonZeroStartPrice  = "start item has no market data"
	ReasonDowngrade       = "target item is cheaper than the start item"
	ReasonChanceTooHigh   = "target item is too close in price to the start item"
)

// Formatted error messages
const (
	ErrMsgNotAllowedFmt   = "%w: %s"
	ErrMsgItemNotOwnedFmt = "item %d not owned by account %d: %w"
	ErrMsgItemVanishedFmt = "item %d is no longer in the inventory of account %d: %w"
	ErrMsgTargetFloatFmt  = "failed to draw float for %s: %w"
)

// Log messages
const (
	LogMsgUpgradeSucceeded = "Upgrade succeeded"
	LogMsgUpgradeFailed    = "Upgrade failed"
	LogMsgUpgradeRejected  = "Upgrade rejected"
)
