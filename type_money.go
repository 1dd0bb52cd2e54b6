package rebalance

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money represents a dollar amount. All engine arithmetic happens on exact
// decimals; floats only appear at the rendering boundary.
type Money struct {
	value decimal.Decimal
}

func M[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) Money {
	return Money{value: newDecimal(value)}
}

// usd is the single display currency of the engine.
var usd = *money.New(0, money.USD).Currency()

// String formats the amount as dollars, e.g. "$1,234.56".
func (m Money) String() string {
	minor := m.value.Shift(int32(usd.Fraction))
	return usd.Formatter().Format(minor.Round(0).IntPart())
}

// SignedString formats like String but with an explicit sign, and "-" for zero.
func (m Money) SignedString() string {
	if m.value.IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

func (m Money) IsZero() bool                 { return m.value.IsZero() }
func (m Money) IsPositive() bool             { return m.value.IsPositive() }
func (m Money) IsNegative() bool             { return m.value.IsNegative() }
func (m Money) Equal(n Money) bool           { return m.value.Equal(n.value) }
func (m Money) LessThan(n Money) bool        { return m.value.LessThan(n.value) }
func (m Money) LessThanOrEqual(n Money) bool { return m.value.LessThanOrEqual(n.value) }
func (m Money) GreaterThan(n Money) bool     { return m.value.GreaterThan(n.value) }

func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value)} }
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value)} }
func (m Money) Neg() Money        { return Money{value: m.value.Neg()} }
func (m Money) Abs() Money        { return Money{value: m.value.Abs()} }

// Mul scales the amount by a number of shares.
func (m Money) Mul(q Quantity) Money { return Money{value: m.value.Mul(q.value)} }

// Div splits the amount over a number of shares.
func (m Money) Div(q Quantity) Money { return Money{value: m.value.Div(q.value)} }

// DivPrice returns how many shares this amount buys at price 'p'.
func (m Money) DivPrice(p Money) Quantity { return Quantity{value: m.value.Div(p.value)} }

// Float64 returns the amount as a float, for rendering only.
func (m Money) Float64() float64 { return m.value.InexactFloat64() }
