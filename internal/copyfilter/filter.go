// Package copyfilter computes the text a copy button should place on the
// clipboard: the code block text without shell prompts and command output.
package copyfilter

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound indicates a reference that matches no code block.
var ErrNotFound = errors.New("code block not found")

// ResolutionError reports a trigger reference that could not be resolved.
type ResolutionError struct {
	Ref string
	Err error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolving %q: %v", e.Ref, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// Segment is the smallest unit of text in a line. Plain text nodes have
// Element set to false and no classes.
type Segment struct {
	Text    string
	Element bool
	Classes []string
}

// LineGroup is one rendered line (or wrapped part of a line).
type LineGroup []Segment

// CodeBlock is a rendered code snippet.
type CodeBlock struct {
	Lines []LineGroup
}

// Resolver maps a trigger reference to the code block it points at.
type Resolver interface {
	Resolve(ref string) (CodeBlock, error)
}

// Trigger is a copy control whose clipboard text gets precomputed.
type Trigger interface {
	Target() string
	SetClipboardText(text string)
}

// Block is a filtered code block listed for extraction. Source identifies
// where it came from: a selector for HTML pages, a line number for markdown.
type Block struct {
	Index  int
	Source string
	Text   string
}

// Report summarizes an Initialize pass.
type Report struct {
	Triggers int
	Patched  int
	Failures []*ResolutionError
}

// Filter strips excluded segments from code blocks.
type Filter struct {
	excluded ClassSet
}

// New creates a Filter that drops element segments carrying any class in excluded.
func New(excluded ClassSet) *Filter {
	return &Filter{excluded: excluded}
}

// Excludes reports whether seg is left out of copied text.
func (f *Filter) Excludes(seg Segment) bool {
	return seg.Element && f.excluded.Intersects(seg.Classes)
}

// Text returns the concatenated text of every retained segment in document order.
func (f *Filter) Text(block CodeBlock) string {
	var b strings.Builder
	for _, line := range block.Lines {
		for _, seg := range line {
			if f.Excludes(seg) {
				continue
			}
			b.WriteString(seg.Text)
		}
	}
	return b.String()
}

// ExtractCommandText resolves ref and returns its filtered text. Resolution
// failures are returned as *ResolutionError.
func (f *Filter) ExtractCommandText(r Resolver, ref string) (string, error) {
	block, err := resolve(r, ref)
	if err != nil {
		return "", err
	}
	return f.Text(block), nil
}

// resolve normalizes resolver failures to *ResolutionError.
func resolve(r Resolver, ref string) (CodeBlock, *ResolutionError) {
	block, err := r.Resolve(ref)
	if err == nil {
		return block, nil
	}
	var resErr *ResolutionError
	if !errors.As(err, &resErr) {
		resErr = &ResolutionError{Ref: ref, Err: err}
	}
	return CodeBlock{}, resErr
}

// Initialize sets the clipboard text of every trigger. A trigger whose
// reference does not resolve is skipped and recorded in the report; the
// others are still processed.
func (f *Filter) Initialize(r Resolver, triggers []Trigger) Report {
	report := Report{Triggers: len(triggers)}
	for _, t := range triggers {
		block, err := resolve(r, t.Target())
		if err != nil {
			report.Failures = append(report.Failures, err)
			continue
		}
		t.SetClipboardText(f.Text(block))
		report.Patched++
	}
	return report
}
