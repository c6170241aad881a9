package entity

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Price is a fixed-point money amount stored as cents. The column behind it
// is NUMERIC(5,2): at most three integer digits and two fractional digits.
type Price struct {
	cents int64
}

var (
	ErrPriceFormat = errors.New("price: not a valid decimal")
	ErrPriceRange  = errors.New("price: more than 5 digits or 2 decimal places")
)

// NewPriceFromCents builds a Price from an integer amount of cents.
func NewPriceFromCents(cents int64) Price {
	return Price{cents: cents}
}

// ParsePrice parses a decimal string such as "3.56" or "12".
func ParsePrice(s string) (Price, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Price{}, ErrPriceFormat
	}
	neg := false
	if s[0] == '+' || s[0] == '-' {
		neg = s[0] == '-'
		s = s[1:]
	}
	intPart, fracPart, _ := strings.Cut(s, ".")
	if intPart == "" && fracPart == "" {
		return Price{}, ErrPriceFormat
	}
	if intPart == "" {
		intPart = "0"
	}
	if !allDigits(intPart) || (fracPart != "" && !allDigits(fracPart)) {
		return Price{}, ErrPriceFormat
	}
	intPart = strings.TrimLeft(intPart, "0")
	if len(intPart) > 3 || len(fracPart) > 2 {
		return Price{}, ErrPriceRange
	}
	if neg {
		return Price{}, ErrPriceRange
	}
	for len(fracPart) < 2 {
		fracPart += "0"
	}
	var cents int64
	for _, r := range intPart + fracPart {
		cents = cents*10 + int64(r-'0')
	}
	return Price{cents: cents}, nil
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

// Cents returns the raw amount in cents.
func (p Price) Cents() int64 { return p.cents }

// String renders with exactly two fractional digits.
func (p Price) String() string {
	return fmt.Sprintf("%d.%02d", p.cents/100, p.cents%100)
}

// MarshalJSON renders the price as a fixed 2-decimal string.
func (p Price) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON accepts a JSON number or a decimal string.
func (p *Price) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if len(s) >= 2 && s[0] == '"' {
		var raw string
		if err := json.Unmarshal(b, &raw); err != nil {
			return ErrPriceFormat
		}
		s = raw
	}
	parsed, err := ParsePrice(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
