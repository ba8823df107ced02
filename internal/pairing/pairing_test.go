package pairing

import "testing"

func TestCell(t *testing.T) {
	var c Cell

	if code, ok := c.Current(); ok || code != "" {
		t.Fatalf("fresh cell returned (%q, %v), want empty", code, ok)
	}

	c.Set("2@abc,def")
	code, ok := c.Current()
	if !ok || code != "2@abc,def" {
		t.Fatalf("Current = (%q, %v), want (2@abc,def, true)", code, ok)
	}

	c.Set("2@newer")
	if code, _ := c.Current(); code != "2@newer" {
		t.Fatalf("Current after overwrite = %q, want 2@newer", code)
	}
}
