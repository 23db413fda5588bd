// Package money converts between integer minor units (centavos) and the
// Brazilian real notation shown to Discord users, e.g. "R$ 1.457,80".
package money

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const Symbol = "R$"

var ErrInvalidAmount = errors.New("invalid amount")

var printer = message.NewPrinter(language.BrazilianPortuguese)

// Format renders cents as "R$ 49,90". Thousands are grouped with dots.
func Format(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%s %s,%02d", sign, Symbol, printer.Sprintf("%d", cents/100), cents%100)
}

// Parse is the inverse of Format. The symbol is optional and the separator
// after it may be a regular or a non-breaking space.
func Parse(s string) (int64, error) {
	raw := strings.TrimSpace(s)
	negative := strings.HasPrefix(raw, "-")
	raw = strings.TrimPrefix(raw, "-")
	raw = strings.TrimPrefix(raw, Symbol)
	raw = strings.TrimLeft(raw, " \u00a0")

	whole, frac, hasFrac := strings.Cut(raw, ",")
	whole = strings.ReplaceAll(whole, ".", "")
	if whole == "" {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	reais, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || reais < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}

	var cents int64
	if hasFrac {
		if len(frac) == 0 || len(frac) > 2 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
		}
		if len(frac) == 1 {
			frac += "0"
		}
		cents, err = strconv.ParseInt(frac, 10, 64)
		if err != nil || cents < 0 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
		}
	}

	total := reais*100 + cents
	if negative {
		total = -total
	}
	return total, nil
}

// FromReais converts a decimal amount typed by a user (49.9) to cents (4990).
func FromReais(v float64) int64 {
	return int64(math.Round(v * 100))
}

// ToReais converts cents to a decimal amount.
func ToReais(cents int64) float64 {
	return float64(cents) / 100
}
