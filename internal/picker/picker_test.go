package picker

import (
	"errors"
	"testing"
)

func TestPick_Empty(t *testing.T) {
	_, err := Pick(0, func(i int) string { return "" }, nil)
	if !errors.Is(err, ErrEmpty) {
		t.Errorf("expected ErrEmpty, got %v", err)
	}
}

func TestPick_NegativeCount(t *testing.T) {
	_, err := Pick(-1, func(i int) string { return "" }, nil)
	if !errors.Is(err, ErrEmpty) {
		t.Errorf("expected ErrEmpty, got %v", err)
	}
}

func TestPick_SingleItem(t *testing.T) {
	idx, err := Pick(1, func(i int) string { return "ls -la" }, nil)
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if idx != 0 {
		t.Errorf("expected index 0, got %d", idx)
	}
}
