package utils

import (
	"errors"
	"strconv"
	"strings"
)

var ErrInvalidAmount = errors.New("invalid amount")

// ParseEuroCents reads amounts the way organizers type them: "20", "20.5",
// "20,50" or "€ 20". At most two decimals are accepted.
func ParseEuroCents(s string) (int64, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "€"))
	s = strings.ReplaceAll(s, ",", ".")
	if s == "" {
		return 0, ErrInvalidAmount
	}

	whole, frac, _ := strings.Cut(s, ".")
	if len(frac) > 2 || strings.HasPrefix(whole, "-") {
		return 0, ErrInvalidAmount
	}
	for len(frac) < 2 {
		frac += "0"
	}

	euros, err := strconv.ParseInt(whole, 10, 64)
	if err != nil && whole != "" {
		return 0, ErrInvalidAmount
	}
	cents, err := strconv.ParseInt(frac, 10, 64)
	if err != nil || cents < 0 {
		return 0, ErrInvalidAmount
	}
	return euros*100 + cents, nil
}
