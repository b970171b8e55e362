package domain

import "time"

// Account is a registered economy participant. The id is the external
// platform user id.
type Account struct {
	ID                int64      `json:"account_id"`
	Balance           int64      `json:"balance"`
	InventoryCapacity int        `json:"inventory_capacity"`
	ClaimStreak       int        `json:"claim_streak"`
	LastClaimedAt     *time.Time `json:"last_claimed_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

// TransferResult holds both post-transfer balances
type TransferResult struct {
	SenderBalance    int64 `json:"sender_balance"`
	RecipientBalance int64 `json:"recipient_balance"`
	Amount           int64 `json:"amount"`
}

// ClaimResult is returned by a successful daily claim
type ClaimResult struct {
	Balance int64 `json:"balance"`
	Amount  int64 `json:"amount"`
	Streak  int   `json:"streak"`
}
