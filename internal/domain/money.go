package domain

import (
	"encoding/json"
	"reflect"

	"github.com/shopspring/decimal"
)

// MaxAmount is the largest value a NUMERIC(10,2) column holds.
var MaxAmount = AmountFromString("99999999.99")

// Amount is a currency value stored as NUMERIC(10,2) and rendered as a
// fixed two-decimal string in JSON ("30.00").
type Amount struct {
	decimal.Decimal
}

func NewAmount(d decimal.Decimal) Amount {
	return Amount{Decimal: d.Round(2)}
}

// AmountFromString parses s, panicking on malformed input. Intended for
// constants and tests.
func AmountFromString(s string) Amount {
	return Amount{Decimal: decimal.RequireFromString(s)}
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.StringFixed(2) + `"`), nil
}

// UnmarshalJSON accepts a JSON number or a numeric string. Anything else is
// reported as a *json.UnmarshalTypeError so callers see a typed input error.
func (a *Amount) UnmarshalJSON(b []byte) error {
	if err := a.Decimal.UnmarshalJSON(b); err != nil {
		return &json.UnmarshalTypeError{Value: jsonKind(b), Type: reflect.TypeOf(Amount{})}
	}
	return nil
}

func jsonKind(b []byte) string {
	if len(b) == 0 {
		return "empty"
	}
	switch b[0] {
	case '"':
		return "string"
	case 't', 'f':
		return "bool"
	case '{':
		return "object"
	case '[':
		return "array"
	default:
		return "number"
	}
}

func (a Amount) String() string {
	return a.StringFixed(2)
}

// Positive reports whether the amount is strictly greater than zero.
func (a Amount) Positive() bool {
	return a.Decimal.IsPositive()
}

// CheckAmount requires 0 < a <= MaxAmount, naming field in the error.
func CheckAmount(field string, a Amount) error {
	if !a.Positive() {
		return NewValidationError("%s must be greater than zero", field)
	}
	if a.GreaterThan(MaxAmount.Decimal) {
		return NewValidationError("%s must be at most %s", field, MaxAmount)
	}
	return nil
}
