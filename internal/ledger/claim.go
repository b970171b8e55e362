package ledger

import (
	"time"
)

// ClaimDecision is the outcome of applying the streak rule
type ClaimDecision struct {
	Allowed   bool
	Streak    int
	Reward    int64
	NextClaim time.Time
}

// ComputeClaim applies the daily claim rule at now. A claim within
// ClaimCooldown of the last is refused. A claim at most ClaimStreakWindow
// after the last extends the streak; anything later restarts it at one. The reward is
// base times the streak, capped at maxMultiplier.
func ComputeClaim(now time.Time, last *time.Time, streak int, base int64, maxMultiplier int) ClaimDecision {
	if last != nil {
		elapsed := now.Sub(*last)
		if elapsed < ClaimCooldown {
			return ClaimDecision{Streak: streak, NextClaim: last.Add(ClaimCooldown)}
		}
		if elapsed <= ClaimStreakWindow {
			streak++
		} else {
			streak = 1
		}
	} else {
		streak = 1
	}

	return ClaimDecision{
		Allowed:   true,
		Streak:    streak,
		Reward:    base * int64(min(streak, maxMultiplier)),
		NextClaim: now.Add(ClaimCooldown),
	}
}
