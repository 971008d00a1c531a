package inventory

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Prices are stored as integer cents; the conversion from the operator's
// decimal input is exact, never via float64.

// ParsePrice converts a non-negative decimal string ("5", "5.0", "5.25")
// to cents. More than two fraction digits cannot be represented and are
// rejected, as is anything negative or non-numeric.
func ParsePrice(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		return 0, fmt.Errorf("invalid price %q: %w", s, ErrInvalidPrice)
	}

	whole, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
	}
	if whole == "" {
		whole = "0"
	}
	if len(frac) > 2 {
		return 0, fmt.Errorf("invalid price %q: at most two decimal places: %w", s, ErrInvalidPrice)
	}
	// bare digits only: ParseInt would accept an embedded sign ("5.-5")
	for i := 0; i < len(frac); i++ {
		if frac[i] < '0' || frac[i] > '9' {
			return 0, fmt.Errorf("invalid price %q: %w", s, ErrInvalidPrice)
		}
	}
	for len(frac) < 2 {
		frac += "0"
	}

	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q: %w", s, ErrInvalidPrice)
	}
	if w > (math.MaxInt64-99)/100 {
		return 0, fmt.Errorf("invalid price %q: out of range: %w", s, ErrInvalidPrice)
	}
	var f int64
	if frac != "00" {
		f, err = strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid price %q: %w", s, ErrInvalidPrice)
		}
	}
	return w*100 + f, nil
}

// FormatPrice renders cents as a decimal string with two places.
func FormatPrice(cents int64) string {
	sign := ""
	if cents < 0 {
		sign, cents = "-", -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
