package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeClaim(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	ago := func(d time.Duration) *time.Time {
		ts := now.Add(-d)
		return &ts
	}

	tests := []struct {
		name       string
		last       *time.Time
		streak     int
		allowed    bool
		wantStreak int
		wantReward int64
	}{
		{"first claim", nil, 0, true, 1, 100},
		{"too soon", ago(23 * time.Hour), 3, false, 3, 0},
		{"exactly one day continues streak", ago(24 * time.Hour), 3, true, 4, 400},
		{"within two days continues streak", ago(47 * time.Hour), 1, true, 2, 200},
		{"exactly two days continues streak", ago(48 * time.Hour), 5, true, 6, 600},
		{"just past two days resets", ago(48*time.Hour + time.Nanosecond), 5, true, 1, 100},
		{"multiplier capped", ago(30 * time.Hour), 9, true, 10, 700},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := ComputeClaim(now, tt.last, tt.streak, DefaultClaimBaseReward, DefaultClaimMaxMultiplier)
			assert.Equal(t, tt.allowed, d.Allowed)
			assert.Equal(t, tt.wantStreak, d.Streak)
			assert.Equal(t, tt.wantReward, d.Reward)
			if !tt.allowed {
				assert.Equal(t, tt.last.Add(ClaimCooldown), d.NextClaim)
			}
		})
	}
}
