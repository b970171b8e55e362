package ledger

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/osse101/SpaceCases_Go/internal/domain"
)

// ParseAmount parses a user supplied money amount into cents. Up to two
// decimal places are accepted and an optional leading "$" is ignored:
// "12.5" is 1250, "$0.07" is 7. Zero, negative and malformed amounts fail
// with domain.ErrInvalidAmount.
func ParseAmount(s string) (int64, error) {
	raw := strings.TrimPrefix(strings.TrimSpace(s), "$")
	whole, frac, hasFrac := strings.Cut(raw, ".")

	if whole == "" && (!hasFrac || frac == "") {
		return 0, fmt.Errorf(ErrMsgParseAmountFmt, s, domain.ErrInvalidAmount)
	}
	if hasFrac && (frac == "" || len(frac) > 2) {
		return 0, fmt.Errorf(ErrMsgParseAmountFmt, s, domain.ErrInvalidAmount)
	}
	if !digitsOnly(whole) || !digitsOnly(frac) {
		return 0, fmt.Errorf(ErrMsgParseAmountFmt, s, domain.ErrInvalidAmount)
	}

	var units int64
	if whole != "" {
		v, err := strconv.ParseInt(whole, 10, 64)
		if err != nil || v > math.MaxInt64/CentsPerUnit-1 {
			return 0, fmt.Errorf(ErrMsgParseAmountFmt, s, domain.ErrInvalidAmount)
		}
		units = v
	}

	var cents int64
	if frac != "" {
		if len(frac) == 1 {
			frac += "0"
		}
		v, _ := strconv.ParseInt(frac, 10, 64)
		cents = v
	}

	total := units*CentsPerUnit + cents
	if total <= 0 {
		return 0, fmt.Errorf(ErrMsgParseAmountFmt, s, domain.ErrInvalidAmount)
	}
	return total, nil
}

func digitsOnly(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// FormatAmount renders cents as a dollar string, e.g. 1250 as "$12.50"
func FormatAmount(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		// MinInt64 has no positive counterpart; it is never a real balance
		if cents == math.MinInt64 {
			cents = math.MaxInt64
		} else {
			cents = -cents
		}
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/CentsPerUnit, cents%CentsPerUnit)
}
