// Package ledger persists expense entries to per-month sheets, maintaining
// the running monthly total.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"ledgerbot/internal/core"
	"ledgerbot/internal/sheets"
)

const (
	readRange    = "A:F"
	headerRange  = "A1:F1"
	sheetColumns = 6
	// Row capacity hint for newly created month sheets.
	sheetRows    = 1000
	amountColumn = 3
)

var headerRow = []string{"Timestamp", "Sender", "Description", "Amount", "Category", "Running Sum"}

// Writer appends ledger entries to the month sheet of "now". The
// read-then-append on the running sum is not transactional: this process is
// assumed to be the sole writer to any month sheet at a time.
type Writer struct {
	store sheets.Store
	now   func() time.Time
}

func NewWriter(store sheets.Store) *Writer {
	return &Writer{store: store, now: time.Now}
}

// Record persists one entry: it resolves the current month sheet, creates it
// with the header on first use, computes the new running sum, and appends
// the row. The returned entry carries the computed timestamp and sum.
func (w *Writer) Record(ctx context.Context, sender, description, category string, amount decimal.Decimal) (core.LedgerEntry, error) {
	now := w.now()
	tab := now.Month().String()

	if err := w.ensureSheet(ctx, tab); err != nil {
		return core.LedgerEntry{}, err
	}

	entry := core.LedgerEntry{
		When:        now,
		Sender:      sender,
		Description: description,
		Amount:      amount,
		Category:    category,
		RunningSum:  w.priorSum(ctx, tab).Add(amount),
	}
	if err := entry.Validate(); err != nil {
		return core.LedgerEntry{}, fmt.Errorf("validate entry: %w", err)
	}

	row := []string{
		entry.Timestamp(),
		entry.Sender,
		entry.Description,
		entry.Amount.StringFixed(2),
		entry.Category,
		entry.RunningSum.StringFixed(2),
	}
	if err := w.store.AppendRow(ctx, tab, row); err != nil {
		return core.LedgerEntry{}, fmt.Errorf("append to sheet %q: %w", tab, err)
	}

	slog.InfoContext(ctx, "Entry recorded",
		"sheet", tab,
		"sender", entry.Sender,
		"description", entry.Description,
		"amount", entry.Amount.StringFixed(2),
		"category", entry.Category,
		"running_sum", entry.RunningSum.StringFixed(2))
	return entry, nil
}

// ensureSheet guarantees the month sheet exists with its header row. A
// lookup failure that is not "not found" aborts: creating a sheet on top of
// an unknown store state could clobber data.
func (w *Writer) ensureSheet(ctx context.Context, tab string) error {
	ok, err := w.store.HasSheet(ctx, tab)
	if err != nil {
		return fmt.Errorf("lookup sheet %q: %w", tab, err)
	}
	if ok {
		return nil
	}
	if err := w.store.AddSheet(ctx, tab, sheetColumns, sheetRows); err != nil {
		return fmt.Errorf("create sheet %q: %w", tab, err)
	}
	if err := w.store.WriteRow(ctx, tab, headerRange, headerRow); err != nil {
		return fmt.Errorf("write header for sheet %q: %w", tab, err)
	}
	slog.InfoContext(ctx, "Month sheet created", "sheet", tab)
	return nil
}

// priorSum totals the amount column, skipping the header row. Cells that are
// missing or non-numeric contribute zero. A failed read degrades to zero
// rather than blocking the write.
func (w *Writer) priorSum(ctx context.Context, tab string) decimal.Decimal {
	rows, err := w.store.ReadRange(ctx, tab, readRange)
	if err != nil {
		slog.WarnContext(ctx, "Running sum read failed, assuming zero", "sheet", tab, "error", err)
		return decimal.Zero
	}
	sum := decimal.Zero
	for i, row := range rows {
		if i == 0 || len(row) <= amountColumn {
			continue
		}
		v, err := decimal.NewFromString(strings.TrimSpace(row[amountColumn]))
		if err != nil {
			continue
		}
		sum = sum.Add(v)
	}
	return sum
}
