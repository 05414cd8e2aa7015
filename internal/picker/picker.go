package picker

import (
	"errors"

	"github.com/ktr0731/go-fuzzyfinder"
)

// ErrAborted indicates user cancelled selection
var ErrAborted = errors.New("selection aborted")

// ErrEmpty is returned when there is nothing to pick from.
var ErrEmpty = errors.New("no items to pick from")

// Pick displays an fzf-style picker over n items labelled by display, with
// preview showing the full text of the highlighted item. A single item is
// returned without prompting. Returns ErrAborted if the user cancels.
func Pick(n int, display func(i int) string, preview func(i int) string) (int, error) {
	if n <= 0 {
		return -1, ErrEmpty
	}
	if n == 1 {
		return 0, nil
	}

	opts := []fuzzyfinder.Option{fuzzyfinder.WithPromptString("block> ")}
	if preview != nil {
		opts = append(opts, fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i < 0 {
				return ""
			}
			return preview(i)
		}))
	}

	idx, err := fuzzyfinder.Find(make([]struct{}, n), func(i int) string {
		return display(i)
	}, opts...)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return -1, ErrAborted
		}
		return -1, err
	}

	return idx, nil
}
