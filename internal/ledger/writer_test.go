package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"ledgerbot/internal/sheets"
	"ledgerbot/internal/sheets/memory"
)

func fixedClock() time.Time {
	return time.Date(2026, time.May, 12, 19, 30, 5, 0, time.Local)
}

func newTestWriter(store sheets.Store) *Writer {
	w := NewWriter(store)
	w.now = fixedClock
	return w
}

func amt(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestRecordCreatesMonthSheetWithHeader(t *testing.T) {
	store := memory.New()
	w := newTestWriter(store)

	entry, err := w.Record(context.Background(), "Sagie", "Dinner", "Dining", amt("120"))
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if got := entry.RunningSum.StringFixed(2); got != "120.00" {
		t.Fatalf("running sum = %s, want 120.00", got)
	}

	rows := store.Rows("May")
	if len(rows) != 2 {
		t.Fatalf("expected header + 1 row, got %d rows", len(rows))
	}
	wantHeader := []string{"Timestamp", "Sender", "Description", "Amount", "Category", "Running Sum"}
	for i, col := range wantHeader {
		if rows[0][i] != col {
			t.Fatalf("header[%d] = %q, want %q", i, rows[0][i], col)
		}
	}
	want := []string{"12/05/2026, 19:30:05", "Sagie", "Dinner", "120.00", "Dining", "120.00"}
	for i, col := range want {
		if rows[1][i] != col {
			t.Errorf("row[%d] = %q, want %q", i, rows[1][i], col)
		}
	}
}

func TestRecordAccumulatesRunningSum(t *testing.T) {
	store := memory.New()
	w := newTestWriter(store)
	ctx := context.Background()

	if _, err := w.Record(ctx, "Sagie", "Dinner", "Dining", amt("120")); err != nil {
		t.Fatalf("first Record: %v", err)
	}
	second, err := w.Record(ctx, "Tany", "Gym", "Fitness", amt("45.50"))
	if err != nil {
		t.Fatalf("second Record: %v", err)
	}
	if got := second.RunningSum.StringFixed(2); got != "165.50" {
		t.Fatalf("running sum = %s, want 165.50", got)
	}
	// Resubmitting the same line yields a new entry with a strictly
	// larger sum; appends are never deduplicated.
	third, err := w.Record(ctx, "Tany", "Gym", "Fitness", amt("45.50"))
	if err != nil {
		t.Fatalf("third Record: %v", err)
	}
	if got := third.RunningSum.StringFixed(2); got != "211.00" {
		t.Fatalf("running sum = %s, want 211.00", got)
	}
	if got := len(store.Rows("May")); got != 4 {
		t.Fatalf("expected header + 3 rows, got %d", got)
	}
}

func TestRecordSkipsHeaderAndJunkCells(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	if err := store.AddSheet(ctx, "May", 6, 1000); err != nil {
		t.Fatal(err)
	}
	seed := [][]string{
		{"Timestamp", "Sender", "Description", "Amount", "Category", "Running Sum"},
		{"01/05/2026, 10:00:00", "Sagie", "Lunch", "30", "Dining", "30"},
		{"02/05/2026, 10:00:00", "Tany", "Broken"}, // amount column missing
		{"03/05/2026, 10:00:00", "Tany", "Junk", "n/a", "Other", "??"},
		{"04/05/2026, 10:00:00", "Sagie", "Taxi", "12.25", "Transportation", "42.25"},
	}
	for i, row := range seed {
		if i == 0 {
			if err := store.WriteRow(ctx, "May", "A1:F1", row); err != nil {
				t.Fatal(err)
			}
			continue
		}
		if err := store.AppendRow(ctx, "May", row); err != nil {
			t.Fatal(err)
		}
	}

	w := newTestWriter(store)
	entry, err := w.Record(ctx, "Sagie", "Smoothie", "Shakes", amt("7.75"))
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	// 30 + 12.25 + 7.75; the junk rows contribute zero.
	if got := entry.RunningSum.StringFixed(2); got != "50.00" {
		t.Fatalf("running sum = %s, want 50.00", got)
	}
}

// flakyStore wraps the memory store with switchable failures.
type flakyStore struct {
	*memory.Store
	lookupErr error
	readErr   error
	appendErr error
	addCalls  int
}

func (f *flakyStore) HasSheet(ctx context.Context, title string) (bool, error) {
	if f.lookupErr != nil {
		return false, f.lookupErr
	}
	return f.Store.HasSheet(ctx, title)
}

func (f *flakyStore) AddSheet(ctx context.Context, title string, cols, rows int64) error {
	f.addCalls++
	return f.Store.AddSheet(ctx, title, cols, rows)
}

func (f *flakyStore) ReadRange(ctx context.Context, title, cellRange string) ([][]string, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	return f.Store.ReadRange(ctx, title, cellRange)
}

func (f *flakyStore) AppendRow(ctx context.Context, title string, row []string) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	return f.Store.AppendRow(ctx, title, row)
}

func TestRecordLookupFailureAbortsWithoutCreate(t *testing.T) {
	store := &flakyStore{Store: memory.New(), lookupErr: errors.New("store unreachable")}
	w := newTestWriter(store)

	_, err := w.Record(context.Background(), "Sagie", "Dinner", "Dining", amt("120"))
	if err == nil {
		t.Fatalf("expected error on lookup failure")
	}
	if store.addCalls != 0 {
		t.Fatalf("AddSheet called %d times after failed lookup, want 0", store.addCalls)
	}
}

func TestRecordReadFailureDegradesToZero(t *testing.T) {
	store := &flakyStore{Store: memory.New(), readErr: errors.New("read quota exceeded")}
	ctx := context.Background()
	if err := store.Store.AddSheet(ctx, "May", 6, 1000); err != nil {
		t.Fatal(err)
	}
	if err := store.Store.WriteRow(ctx, "May", "A1:F1", headerRow); err != nil {
		t.Fatal(err)
	}
	if err := store.Store.AppendRow(ctx, "May", []string{"ts", "Sagie", "Lunch", "30", "Dining", "30"}); err != nil {
		t.Fatal(err)
	}

	w := newTestWriter(store)
	entry, err := w.Record(ctx, "Sagie", "Dinner", "Dining", amt("120"))
	if err != nil {
		t.Fatalf("Record should not fail on sum read error: %v", err)
	}
	if got := entry.RunningSum.StringFixed(2); got != "120.00" {
		t.Fatalf("running sum = %s, want 120.00 (prior degraded to zero)", got)
	}
}

func TestRecordAppendFailureAborts(t *testing.T) {
	store := &flakyStore{Store: memory.New(), appendErr: errors.New("append rejected")}
	w := newTestWriter(store)

	if _, err := w.Record(context.Background(), "Sagie", "Dinner", "Dining", amt("120")); err == nil {
		t.Fatalf("expected error on append failure")
	}
}
