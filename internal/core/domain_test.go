package core

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestLedgerEntryValidate(t *testing.T) {
	good := LedgerEntry{
		When:        time.Date(2026, 5, 12, 19, 30, 5, 0, time.Local),
		Sender:      "Sagie",
		Description: "Dinner",
		Amount:      decimal.RequireFromString("120"),
		Category:    "Dining",
		RunningSum:  decimal.RequireFromString("340.50"),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []LedgerEntry{
		{},
		func() LedgerEntry { e := good; e.Sender = "  "; return e }(),
		func() LedgerEntry { e := good; e.Description = ""; return e }(),
		func() LedgerEntry { e := good; e.Amount = decimal.RequireFromString("-1"); return e }(),
		func() LedgerEntry { e := good; e.Category = ""; return e }(),
		func() LedgerEntry { e := good; e.RunningSum = decimal.RequireFromString("10"); return e }(),
	}
	for i, e := range bads {
		if err := e.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestTimestampFormat(t *testing.T) {
	e := LedgerEntry{When: time.Date(2026, 8, 3, 9, 4, 7, 0, time.Local)}
	if got, want := e.Timestamp(), "03/08/2026, 09:04:07"; got != want {
		t.Fatalf("Timestamp() = %q, want %q", got, want)
	}
}
