// Package parse turns one line of free text into an amount and a normalized
// description.
//
// Two surface forms are accepted, order-insensitive:
//
//	120 dinner at restaurant
//	dinner at restaurant 120
//
// The amount is a non-negative decimal with at most two fractional digits;
// the description must be non-empty. Anything else is a malformed line.
package parse

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"ledgerbot/internal/core"
)

// ErrMalformedLine is returned for lines that match neither surface form.
// The wrapped message carries the offending line verbatim.
var ErrMalformedLine = errors.New("malformed line")

// Line is a successfully parsed input line.
type Line struct {
	Amount      decimal.Decimal
	Description string
}

// Amount-first or amount-last; the first alternative is preferred when both
// could apply.
var lineRe = regexp.MustCompile(`^(?:(\d+(?:\.\d{1,2})?)\s+(.+)|(.+?)\s+(\d+(?:\.\d{1,2})?))$`)

// ParseLine parses one line of input. Leading and trailing whitespace is
// insignificant; interior runs of whitespace in the description collapse to
// single spaces and every word is title-cased.
func ParseLine(line string) (Line, error) {
	m := lineRe.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return Line{}, fmt.Errorf("%w: %q", ErrMalformedLine, line)
	}
	rawAmount, description := m[1], m[2]
	if rawAmount == "" {
		rawAmount, description = m[4], m[3]
	}
	amount, err := core.ParseAmount(rawAmount)
	if err != nil {
		return Line{}, fmt.Errorf("%w: %q", ErrMalformedLine, line)
	}
	description = titleCase(description)
	if description == "" {
		return Line{}, fmt.Errorf("%w: %q", ErrMalformedLine, line)
	}
	return Line{Amount: amount, Description: description}, nil
}

// titleCase upper-cases the first rune of each word and lower-cases the
// rest, joining words with single spaces.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + strings.ToLower(w[size:])
	}
	return strings.Join(words, " ")
}
