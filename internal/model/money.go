package model

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Prices are stored in an INTEGER column, so cents must fit in int32.
const (
	MaxCents = math.MaxInt32
	MinCents = math.MinInt32
)

// ErrAmountOutOfRange means an amount does not fit the cents column.
var ErrAmountOutOfRange = errors.New("amount out of range")

var (
	hundred  = decimal.NewFromInt(100)
	maxCents = decimal.NewFromInt(MaxCents)
	minCents = decimal.NewFromInt(MinCents)
)

func toCents(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(hundred).Round(0)
}

// Cents converts an amount in major currency units to integer cents,
// rounding half away from zero. Amounts outside [MinCents, MaxCents]
// return ErrAmountOutOfRange.
func Cents(amount decimal.Decimal) (int64, error) {
	c := toCents(amount)
	if c.GreaterThan(maxCents) || c.LessThan(minCents) {
		return 0, fmt.Errorf("%s: %w", amount.String(), ErrAmountOutOfRange)
	}
	return c.IntPart(), nil
}

// ClampCents is Cents with out-of-range amounts pinned to the nearest bound.
func ClampCents(amount decimal.Decimal) int64 {
	c := toCents(amount)
	switch {
	case c.GreaterThan(maxCents):
		return MaxCents
	case c.LessThan(minCents):
		return MinCents
	}
	return c.IntPart()
}
