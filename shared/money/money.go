// Package money stores monetary values as integer minor units (1/100 of the currency unit)
// so billing never touches floating point.
package money

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	scale = 100
	// NUMERIC(10,2) leaves eight digits before the point.
	maxWholeDigits = 8
)

var ErrInvalidAmount = errors.New("invalid amount")

// Amount is a monetary value in minor units. It maps to NUMERIC(10,2) columns.
type Amount int64

// FromMajor converts whole currency units.
func FromMajor(units int64) Amount {
	return Amount(units * scale)
}

// Parse reads decimal notation with an optional leading minus and at most
// two fractional digits. Values beyond NUMERIC(10,2) are rejected.
func Parse(value string) (Amount, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidAmount)
	}

	digits, negative := strings.CutPrefix(value, "-")

	whole, frac, hasFrac := strings.Cut(digits, ".")
	if !isDigits(whole, maxWholeDigits) || (hasFrac && !isDigits(frac, 2)) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, value)
	}

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, value)
	}

	var cents int64

	if hasFrac {
		if len(frac) == 1 {
			frac += "0"
		}

		cents, err = strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, value)
		}
	}

	amount := Amount(units*scale + cents)
	if negative {
		amount = -amount
	}

	return amount, nil
}

// isDigits reports whether value holds between 1 and limit ASCII digits.
func isDigits(value string, limit int) bool {
	if value == "" || len(value) > limit {
		return false
	}

	for i := 0; i < len(value); i++ {
		if value[i] < '0' || value[i] > '9' {
			return false
		}
	}

	return true
}

func (a Amount) Add(other Amount) Amount {
	return a + other
}

func (a Amount) Mul(n int64) Amount {
	return a * Amount(n)
}

func (a Amount) IsNegative() bool {
	return a < 0
}

// String renders the amount with exactly two decimals.
func (a Amount) String() string {
	sign := ""
	value := int64(a)

	if value < 0 {
		sign = "-"
		value = -value
	}

	return fmt.Sprintf("%s%d.%02d", sign, value/scale, value%scale)
}

// Value implements driver.Valuer.
func (a Amount) Value() (driver.Value, error) {
	return a.String(), nil
}

// Scan implements sql.Scanner.
func (a *Amount) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*a = 0

		return nil
	case []byte:
		return a.scanString(string(v))
	case string:
		return a.scanString(v)
	case int64:
		*a = FromMajor(v)

		return nil
	case float64:
		return a.scanString(strconv.FormatFloat(v, 'f', 2, 64))
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidAmount, src)
	}
}

func (a *Amount) scanString(value string) error {
	// NUMERIC(10,2) always comes back with two decimals, but tolerate trailing zeros beyond that.
	if whole, frac, ok := strings.Cut(value, "."); ok && len(frac) > 2 {
		value = whole + "." + strings.TrimRight(frac, "0")
		value = strings.TrimSuffix(value, ".")
	}

	parsed, err := Parse(value)
	if err != nil {
		return err
	}

	*a = parsed

	return nil
}

// MarshalJSON renders the amount as a JSON number with two decimals.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalJSON accepts both JSON numbers and quoted decimals.
func (a *Amount) UnmarshalJSON(data []byte) error {
	value := strings.Trim(string(data), `"`)
	if value == "null" || value == "" {
		*a = 0

		return nil
	}

	parsed, err := Parse(value)
	if err != nil {
		return err
	}

	*a = parsed

	return nil
}
