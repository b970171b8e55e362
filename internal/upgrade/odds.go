package upgrade

import (
	"fmt"
	"math"

	"github.com/osse101/SpaceCases_Go/internal/domain"
)

// Odds describes the chance of upgrading an item worth From into one worth To
type Odds struct {
	From       int64   `json:"from_price"`
	To         int64   `json:"to_price"`
	Multiplier float64 `json:"multiplier"`
	Chance     float64 `json:"chance"`
}

// ComputeOdds returns the upgrade odds between two prices. Zero prices,
// downgrades and chances above MaxChance wrap ErrUpgradeNotAllowed.
func ComputeOdds(from, to int64) (Odds, error) {
	if to <= 0 {
		return Odds{}, fmt.Errorf(ErrMsgNotAllowedFmt, domain.ErrUpgradeNotAllowed, ReasonZeroTargetPrice)
	}
	if from <= 0 {
		return Odds{}, fmt.Errorf(ErrMsgNotAllowedFmt, domain.ErrUpgradeNotAllowed, ReasonZeroStartPrice)
	}
	if to < from {
		return Odds{}, fmt.Errorf(ErrMsgNotAllowedFmt, domain.ErrUpgradeNotAllowed, ReasonDowngrade)
	}

	mult := float64(to) / float64(from)
	chance := 1 / math.Pow(mult, Exponent)
	if chance > MaxChance {
		return Odds{}, fmt.Errorf(ErrMsgNotAllowedFmt, domain.ErrUpgradeNotAllowed, ReasonChanceTooHigh)
	}

	return Odds{From: from, To: to, Multiplier: mult, Chance: chance}, nil
}
