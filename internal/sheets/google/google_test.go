package google

import (
	"errors"
	"fmt"
	"testing"

	"google.golang.org/api/googleapi"
)

func TestIsNotFound(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"bad request", &googleapi.Error{Code: 400}, true},
		{"wrapped bad request", fmt.Errorf("get: %w", &googleapi.Error{Code: 400}), true},
		{"forbidden", &googleapi.Error{Code: 403}, false},
		{"server error", &googleapi.Error{Code: 500}, false},
		{"plain error", errors.New("dial tcp: timeout"), false},
		{"nil", nil, false},
	}
	for _, tc := range cases {
		if got := isNotFound(tc.err); got != tc.want {
			t.Errorf("%s: isNotFound = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestToStrings(t *testing.T) {
	got := toStrings([]any{" 120.5 ", 45, true, nil})
	want := []string{"120.5", "45", "true", "<nil>"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("toStrings[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRangeFor(t *testing.T) {
	if got := rangeFor("May", "A1:F1"); got != "May!A1:F1" {
		t.Fatalf("rangeFor = %q", got)
	}
}
