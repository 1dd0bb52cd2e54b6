package rebalance

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Weight is a fractional allocation of equity to a sleeve, e.g. 0.6 for 60%.
type Weight struct {
	value decimal.Decimal
}

func W[T float32 | float64 | int | decimal.Decimal](value T) Weight {
	return Weight{value: newDecimal(value)}
}

// weightEpsilon is the tolerance when checking that weights sum to 1.
var weightEpsilon = decimal.New(1, -6) // 1e-6

func (w Weight) IsZero() bool          { return w.value.IsZero() }
func (w Weight) IsNegative() bool      { return w.value.IsNegative() }
func (w Weight) Add(x Weight) Weight   { return Weight{value: w.value.Add(x.value)} }
func (w Weight) Equal(x Weight) bool   { return w.value.Equal(x.value) }

// Of returns the portion of 'm' this weight allocates.
func (w Weight) Of(m Money) Money { return Money{value: m.value.Mul(w.value)} }

// IsWhole reports whether the weight equals 1 within the epsilon.
func (w Weight) IsWhole() bool {
	return w.value.Sub(decimal.New(1, 0)).Abs().LessThanOrEqual(weightEpsilon)
}

// String formats the weight as a percentage, e.g. "60.00%".
func (w Weight) String() string {
	return fmt.Sprintf("%.2f%%", w.value.Shift(2).InexactFloat64())
}
