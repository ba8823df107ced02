package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TimestampLayout is how entry times appear in the ledger: day-first date,
// 24-hour clock.
const TimestampLayout = "02/01/2006, 15:04:05"

type (
	// LedgerEntry is one fully computed expense record, persisted exactly
	// once and never mutated afterwards.
	LedgerEntry struct {
		When        time.Time
		Sender      string
		Description string
		Amount      decimal.Decimal
		Category    string
		RunningSum  decimal.Decimal
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyCategory    = errors.New("empty category")
	ErrEmptySender      = errors.New("empty sender")
)

func (e LedgerEntry) Validate() error {
	if e.When.IsZero() {
		return errors.New("timestamp cannot be zero")
	}
	if strings.TrimSpace(e.Sender) == "" {
		return ErrEmptySender
	}
	if strings.TrimSpace(e.Description) == "" {
		return ErrEmptyDescription
	}
	if e.Amount.IsNegative() {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyCategory
	}
	if e.RunningSum.LessThan(e.Amount) {
		return errors.New("running sum below own amount")
	}
	return nil
}

// Timestamp renders When in the ledger's display format.
func (e LedgerEntry) Timestamp() string {
	return e.When.Format(TimestampLayout)
}
