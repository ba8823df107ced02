// Package core holds the ledger's domain types and the amount grammar
// shared by the line parser and the ledger writer.
package core

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// amountRe is the accepted amount grammar: a non-negative decimal with at
// most two fractional digits. No sign, no exponent, no thousands separator.
var amountRe = regexp.MustCompile(`^\d+(?:\.\d{1,2})?$`)

// ParseAmount converts an amount token into a decimal.
//
// Examples:
//
//	ParseAmount("120")    -> 120, nil
//	ParseAmount("12.5")   -> 12.5, nil
//	ParseAmount("12.345") -> error (three fractional digits)
//	ParseAmount("-3")     -> error (negative)
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" || !amountRe.MatchString(s) {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return d, nil
}
