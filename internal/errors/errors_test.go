package errors

import (
	"fmt"
	"testing"
)

func TestFormat(t *testing.T) {
	if got := Format(nil); got != "" {
		t.Errorf("Format(nil) = %q, want empty string", got)
	}

	err := fmt.Errorf("bird not found: b1")
	want := "Error: bird not found: b1"
	if got := Format(err); got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}
