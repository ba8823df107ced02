package storage

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { j.Close() })
	return j
}

func TestJournalRecordAndRecent(t *testing.T) {
	ctx := context.Background()
	j := openTestJournal(t)

	first := Entry{
		ChatID:  "1234@g.us",
		Sender:  "Sagie",
		Line:    "120 dinner",
		Outcome: "Registered: Dinner - $120 - Dining",
		Success: true,
	}
	second := Entry{
		ChatID:  "1234@g.us",
		Sender:  "Tany",
		Line:    "abc",
		Outcome: `Invalid format: "abc"`,
		Success: false,
	}
	if err := j.Record(ctx, first); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := j.Record(ctx, second); err != nil {
		t.Fatalf("Record: %v", err)
	}

	got, err := j.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	// Newest first.
	if got[0].Line != "abc" || got[0].Success {
		t.Fatalf("unexpected newest entry: %+v", got[0])
	}
	if got[1].Sender != "Sagie" || !got[1].Success {
		t.Fatalf("unexpected oldest entry: %+v", got[1])
	}
	if got[0].RecordedAt.IsZero() {
		t.Fatalf("recorded_at not persisted")
	}
}

func TestJournalRecentLimit(t *testing.T) {
	ctx := context.Background()
	j := openTestJournal(t)
	for i := 0; i < 5; i++ {
		if err := j.Record(ctx, Entry{ChatID: "c", Sender: "s", Line: "l", Outcome: "o", Success: true}); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}
	got, err := j.Recent(ctx, 3)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(got))
	}
}
