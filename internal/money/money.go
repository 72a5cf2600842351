package money

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrMissingAmount  = errors.New("amount is required")
	ErrInvalidAmount  = errors.New("invalid amount")
	ErrFractional     = errors.New("amount must be a whole number")
	ErrAmountTooLarge = errors.New("amount is too large")
)

var maxAmount = decimal.NewFromInt(math.MaxInt64 / 2)

// ParseAmount accepts the raw JSON value of an amount field. Clients send
// either a number (5000) or a string ("5000"); both must describe a
// positive whole number of units.
func ParseAmount(raw json.RawMessage) (int64, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return 0, ErrMissingAmount
	}
	text := string(trimmed)
	if trimmed[0] == '"' {
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return 0, ErrInvalidAmount
		}
	}
	return Parse(text)
}

func Parse(input string) (int64, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return 0, ErrMissingAmount
	}
	value, err := decimal.NewFromString(trimmed)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	if !value.IsInteger() {
		return 0, ErrFractional
	}
	if !value.IsPositive() {
		return 0, ErrInvalidAmount
	}
	if value.GreaterThan(maxAmount) {
		return 0, ErrAmountTooLarge
	}
	return value.IntPart(), nil
}
