package intake

import (
	"finplan/pkg/domain"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Decimal input outside these exponents is not a plausible amount and is
// treated as unparsable. Rendering it would expand every digit.
const (
	minExponent = -20
	maxExponent = 15
)

var (
	hundred   = decimal.NewFromInt(100)           //nolint: gochecknoglobals
	maxAmount = decimal.New(1, maxExponent)       //nolint: gochecknoglobals
	maxCount  = decimal.NewFromInt(math.MaxInt32) //nolint: gochecknoglobals
)

// parseDecimal parses a non-negative decimal no larger than limit.
func parseDecimal(s string, limit decimal.Decimal) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Decimal{}, false
	}
	// checked before any comparison, which would rescale the coefficient
	if exp := d.Exponent(); exp < minExponent || exp > maxExponent {
		return decimal.Decimal{}, false
	}
	if d.GreaterThan(limit) {
		return decimal.Decimal{}, false
	}

	return d, true
}

// ParseAmount converts free-text input to a non-negative decimal. Input that
// does not parse, including the empty string, is 0. Negative values and values
// above 1e15 are 0.
func ParseAmount(s string) domain.Amount {
	d, ok := parseDecimal(strings.TrimSpace(s), maxAmount)
	if !ok {
		return domain.Amount{}
	}

	return domain.NewAmount(d)
}

// ParseRate is ParseAmount limited to a percentage in [0, 100].
func ParseRate(s string) domain.Amount {
	a := ParseAmount(s)
	if a.GreaterThan(hundred) {
		return domain.NewAmount(hundred)
	}

	return a
}

// ParseCount converts free-text input to a non-negative integer. A decimal
// input is truncated. Input that does not parse, or that exceeds int32, is 0.
func ParseCount(s string) int {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 || n > math.MaxInt32 {
			return 0
		}

		return n
	}

	d, ok := parseDecimal(s, maxCount)
	if !ok {
		return 0
	}

	return int(d.IntPart())
}
