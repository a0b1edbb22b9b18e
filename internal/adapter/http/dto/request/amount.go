package request

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/shopspring/decimal"
)

var ErrInvalidAmount = errors.New("amount must be a decimal number or numeric string")

// Bounds on the parsed representation. Anything past them cannot be a money amount
// and would make later rescaling arbitrarily expensive.
const (
	maxAmountExponent = 12
	minAmountExponent = -12
	maxAmountDigits   = 24
)

// ParseAmount reads a money value sent either as a JSON number (10.5) or as a string
// ("10.50"). Absent or null returns nil. Numbers are parsed from their literal text,
// never through float64.
func ParseAmount(raw json.RawMessage) (*decimal.Decimal, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	text := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return nil, ErrInvalidAmount
		}
	} else if raw[0] != '-' && (raw[0] < '0' || raw[0] > '9') {
		return nil, ErrInvalidAmount
	}

	d, err := decimal.NewFromString(text)
	if err != nil {
		return nil, ErrInvalidAmount
	}
	if exp := d.Exponent(); exp > maxAmountExponent || exp < minAmountExponent || d.NumDigits() > maxAmountDigits {
		return nil, ErrInvalidAmount
	}
	return &d, nil
}
