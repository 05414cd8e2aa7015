package stdin

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// MaxSize bounds how much piped input is read (8MB, enough for large pages).
const MaxSize = 8 << 20

// ErrTooLarge indicates piped input exceeds MaxSize.
var ErrTooLarge = errors.New("stdin input too large (max 8MB)")

// Reader provides methods for reading stdin content.
type Reader struct {
	input io.Reader
}

// New creates a new Reader with the provided input.
// Pass os.Stdin for normal operation.
func New(input io.Reader) *Reader {
	return &Reader{input: input}
}

// IsPiped returns true if stdin contains piped data (not a terminal).
func (r *Reader) IsPiped() bool {
	if f, ok := r.input.(*os.File); ok {
		return !term.IsTerminal(int(f.Fd()))
	}
	return true
}

// Read reads all content from stdin if it's piped.
// Returns nil and nil error if stdin is a terminal.
func (r *Reader) Read() ([]byte, error) {
	if !r.IsPiped() {
		return nil, nil
	}

	data, err := io.ReadAll(io.LimitReader(r.input, MaxSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}
	if len(data) > MaxSize {
		return nil, ErrTooLarge
	}

	return data, nil
}
