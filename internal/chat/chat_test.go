package chat

import "testing"

func TestIsGroupID(t *testing.T) {
	tests := []struct {
		chatID string
		want   bool
	}{
		{"1234567890-9876543210@g.us", true},
		{"972526773723@c.us", false},
		{"@g.us", true},
		{"", false},
		{"1234567890@g.us ", false},
	}
	for _, tt := range tests {
		if got := IsGroupID(tt.chatID); got != tt.want {
			t.Errorf("IsGroupID(%q) = %v, want %v", tt.chatID, got, tt.want)
		}
	}
}
