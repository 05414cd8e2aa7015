package clipboard

import (
	"testing"

	"github.com/atotto/clipboard"
)

func TestCopy(t *testing.T) {
	if clipboard.Unsupported {
		t.Skip("clipboard not available in this environment")
	}

	const text = "pip install omnipy\n"
	if err := Copy(text); err != nil {
		t.Skipf("clipboard write failed (no display?): %v", err)
	}

	got, err := clipboard.ReadAll()
	if err != nil {
		t.Fatalf("clipboard.ReadAll() returned error: %v", err)
	}
	if got != text {
		t.Errorf("clipboard content = %q, want %q", got, text)
	}
}

func TestCopy_EmptyString(t *testing.T) {
	if clipboard.Unsupported {
		t.Skip("clipboard not available in this environment")
	}

	if err := Copy(""); err != nil {
		t.Skipf("clipboard write failed (no display?): %v", err)
	}

	got, err := clipboard.ReadAll()
	if err != nil {
		t.Fatalf("clipboard.ReadAll() returned error: %v", err)
	}
	if got != "" {
		t.Errorf("clipboard content = %q, want empty string", got)
	}
}
