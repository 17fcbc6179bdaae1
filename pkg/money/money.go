package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidAmount is returned when a boundary amount is negative or not a number.
var ErrInvalidAmount = errors.New("invalid amount")

// Amount is a currency amount in minor units (pesewas). All arithmetic in the
// engine happens on Amount; decimal conversion only happens at the JSON/DB boundary.
type Amount int64

var hundred = decimal.NewFromInt(100)

// Parse converts a decimal string ("1234.50") to minor units.
// Rejects negative, non-numeric, and sub-minor-unit precision input.
func Parse(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return fromDecimal(d)
}

// FromDecimal converts a decimal amount to minor units.
func FromDecimal(d decimal.Decimal) (Amount, error) { return fromDecimal(d) }

func fromDecimal(d decimal.Decimal) (Amount, error) {
	if d.IsNegative() {
		return 0, fmt.Errorf("%w: negative", ErrInvalidAmount)
	}
	minor := d.Mul(hundred)
	if !minor.Equal(minor.Truncate(0)) {
		return 0, fmt.Errorf("%w: more than 2 decimal places", ErrInvalidAmount)
	}
	return Amount(minor.IntPart()), nil
}

// Decimal returns the amount in major units.
func (a Amount) Decimal() decimal.Decimal {
	return decimal.New(int64(a), -2)
}

// String formats the amount as a 2-dp decimal string, e.g. "1000.00".
func (a Amount) String() string {
	return a.Decimal().StringFixed(2)
}

func (a Amount) Add(b Amount) Amount { return a + b }

// Sub subtracts b, clamping at zero. Loan balances never go negative.
func (a Amount) Sub(b Amount) Amount {
	if b >= a {
		return 0
	}
	return a - b
}

func (a Amount) IsZero() bool              { return a == 0 }
func (a Amount) GreaterThan(b Amount) bool { return a > b }

// MarshalJSON encodes as a quoted decimal string.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.String() + `"`), nil
}

// UnmarshalJSON accepts both a JSON number and a quoted decimal string; the
// portal UI sends whichever the form field produced.
func (a *Amount) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" || s == "" {
		return fmt.Errorf("%w: empty", ErrInvalidAmount)
	}
	v, err := Parse(s)
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// SimpleInterest returns the upfront simple interest on a principal at
// ratePercent (e.g. 10 for 10%), rounded half-up to the minor unit.
func SimpleInterest(principal Amount, ratePercent float64) Amount {
	interest := decimal.NewFromInt(int64(principal)).
		Mul(decimal.NewFromFloat(ratePercent)).
		Div(hundred).
		Round(0)
	return Amount(interest.IntPart())
}

// TotalPayable is principal plus upfront simple interest.
func TotalPayable(principal Amount, ratePercent float64) Amount {
	return principal + SimpleInterest(principal, ratePercent)
}
