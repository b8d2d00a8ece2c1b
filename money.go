package licspend

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

func init() {
	// Monetary fields are persisted as plain JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// ReportingCurrency is the currency every monetary record field is expressed in.
const ReportingCurrency = "USD"

// Money represents a monetary value in the reporting currency.
type Money struct {
	value decimal.Decimal // as major unit value
}

// M creates a Money from a numeric value.
func M[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) Money {
	return Money{value: newDecimal(value)}
}

func newDecimal(value any) decimal.Decimal {
	switch v := value.(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	default:
		panic(fmt.Sprintf("unsupported money value type %T", value))
	}
}

// currency returns the money's currency.
func (m Money) currency() money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, ReportingCurrency).Currency()
}

// String returns the formatted representation of the money value, e.g. "$5,672,880.00".
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.IntPart())
}

// Compact formats large amounts with an M or K suffix, e.g. "$5.67M".
func (m Money) Compact() string {
	grapheme := m.currency().Grapheme
	million := decimal.NewFromInt(1_000_000)
	thousand := decimal.NewFromInt(1_000)
	switch {
	case m.value.GreaterThanOrEqual(million):
		return grapheme + m.value.Div(million).Round(2).String() + "M"
	case m.value.GreaterThanOrEqual(thousand):
		return grapheme + m.value.Div(thousand).Round(2).String() + "K"
	default:
		return m.String()
	}
}

func (m Money) Decimal() decimal.Decimal { return m.value }
func (m Money) Equal(n Money) bool       { return m.value.Equal(n.value) }
func (m Money) IsZero() bool             { return m.value.IsZero() }
func (m Money) IsPositive() bool         { return m.value.IsPositive() }
func (m Money) IsNegative() bool         { return m.value.IsNegative() }
func (m Money) Add(n Money) Money        { return Money{value: m.value.Add(n.value)} }
func (m Money) Sub(n Money) Money        { return Money{value: m.value.Sub(n.value)} }

// Millions returns the value scaled to millions, rounded to 2 decimals.
func (m Money) Millions() float64 {
	return m.value.Div(decimal.NewFromInt(1_000_000)).Round(2).InexactFloat64()
}

// Thousands returns the value scaled to thousands, rounded to 2 decimals.
func (m Money) Thousands() float64 {
	return m.value.Div(decimal.NewFromInt(1_000)).Round(2).InexactFloat64()
}

// Percent is a percentage value, formatted with 2 decimals.
type Percent float64

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", float64(p))
}
