package domain

import (
	"github.com/shopspring/decimal"
)

// Amount is a decimal number encoded as a bare JSON number. It is used for
// every monetary figure and percentage exchanged with the planning service.
// The zero value is 0.
type Amount struct {
	decimal.Decimal
}

// NewAmount wraps d.
func NewAmount(d decimal.Decimal) Amount {
	return Amount{Decimal: d}
}

// AmountFromInt returns an Amount holding n.
func AmountFromInt(n int64) Amount {
	return Amount{Decimal: decimal.NewFromInt(n)}
}

// AmountFromFloat returns an Amount holding f.
func AmountFromFloat(f float64) Amount {
	return Amount{Decimal: decimal.NewFromFloat(f)}
}

// MarshalJSON encodes the amount without quotes so the planning service
// receives a JSON number.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal.String()), nil
}
