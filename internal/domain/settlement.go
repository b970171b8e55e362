package domain

import (
	"time"

	"github.com/google/uuid"
)

// SettlementStatus is the lifecycle state of an open-container session
type SettlementStatus string

const (
	SettlementStatusReserved SettlementStatus = "reserved"
	SettlementStatusKept     SettlementStatus = "kept"
	SettlementStatusSold     SettlementStatus = "sold"
	SettlementStatusAutoSold SettlementStatus = "auto_sold"
)

// IsFinal reports whether the status is terminal
func (s SettlementStatus) IsFinal() bool {
	switch s {
	case SettlementStatusKept, SettlementStatusSold, SettlementStatusAutoSold:
		return true
	default:
		return false
	}
}

// Settlement is a paid-for drawn item awaiting a keep or sell decision
type Settlement struct {
	ID            uuid.UUID        `json:"session_id"`
	AccountID     int64            `json:"account_id"`
	ContainerName string           `json:"container"`
	AmountPaid    int64            `json:"amount_paid"`
	Item          NewItem          `json:"item"`
	SellPrice     int64            `json:"sell_price"`
	Status        SettlementStatus `json:"status"`
	ExpiresAt     time.Time        `json:"expires_at"`
	CreatedAt     time.Time        `json:"created_at"`
	SettledAt     *time.Time       `json:"settled_at,omitempty"`
}

// Expired reports whether the decision window has closed at now
func (s Settlement) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// SettlementOutcome is returned from a finalization
type SettlementOutcome struct {
	Settlement Settlement `json:"settlement"`
	Item       *Item      `json:"item,omitempty"`
	Balance    *int64     `json:"balance,omitempty"`
}
