// Package memory is an in-memory sheets.Store used by tests and as the
// default development backend.
package memory

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"ledgerbot/internal/sheets"
)

type Store struct {
	mu   sync.Mutex
	tabs map[string][][]string
}

var _ sheets.Store = (*Store)(nil)

func New() *Store {
	return &Store{tabs: make(map[string][][]string)}
}

func (s *Store) HasSheet(_ context.Context, title string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.tabs[title]
	return ok, nil
}

func (s *Store) AddSheet(_ context.Context, title string, _, _ int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tabs[title]; ok {
		return fmt.Errorf("sheet %q already exists", title)
	}
	s.tabs[title] = nil
	return nil
}

func (s *Store) WriteRow(_ context.Context, title, cellRange string, row []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, ok := s.tabs[title]
	if !ok {
		return fmt.Errorf("sheet %q not found", title)
	}
	idx := rowIndex(cellRange)
	for len(rows) <= idx {
		rows = append(rows, nil)
	}
	rows[idx] = append([]string(nil), row...)
	s.tabs[title] = rows
	return nil
}

func (s *Store) AppendRow(_ context.Context, title string, row []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, ok := s.tabs[title]
	if !ok {
		return fmt.Errorf("sheet %q not found", title)
	}
	s.tabs[title] = append(rows, append([]string(nil), row...))
	return nil
}

// ReadRange ignores the range granularity and returns every populated row;
// callers slice out the columns they need, as they would with a real store.
func (s *Store) ReadRange(_ context.Context, title, _ string) ([][]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, ok := s.tabs[title]
	if !ok {
		return nil, fmt.Errorf("sheet %q not found", title)
	}
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = append([]string(nil), r...)
	}
	return out, nil
}

// Rows is a test helper returning a snapshot of a sheet's rows.
func (s *Store) Rows(title string) [][]string {
	rows, err := s.ReadRange(context.Background(), title, "A:F")
	if err != nil {
		return nil
	}
	return rows
}

// rowIndex extracts the zero-based row from a range like "A1:F1".
func rowIndex(cellRange string) int {
	digits := strings.TrimLeftFunc(cellRange, func(r rune) bool {
		return r < '0' || r > '9'
	})
	digits, _, _ = strings.Cut(digits, ":")
	n, err := strconv.Atoi(digits)
	if err != nil || n < 1 {
		return 0
	}
	return n - 1
}
