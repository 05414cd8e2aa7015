package copyfilter

import "strings"

// Pygments short class names for the two decorations stripped from copied text.
const (
	ClassPrompt = "gp" // Generic.Prompt
	ClassOutput = "go" // Generic.Output
)

// ClassSet is an immutable set of class names.
type ClassSet struct {
	names map[string]struct{}
}

// NewClassSet builds a set from the given names. Blank names are ignored.
func NewClassSet(names ...string) ClassSet {
	m := make(map[string]struct{}, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		m[n] = struct{}{}
	}
	return ClassSet{names: m}
}

// DefaultExcluded returns the prompt/output set.
func DefaultExcluded() ClassSet {
	return NewClassSet(ClassPrompt, ClassOutput)
}

// Has reports whether name is in the set.
func (s ClassSet) Has(name string) bool {
	_, ok := s.names[name]
	return ok
}

// Intersects reports whether any of classes is in the set.
func (s ClassSet) Intersects(classes []string) bool {
	for _, c := range classes {
		if s.Has(c) {
			return true
		}
	}
	return false
}

// Len returns the number of names in the set.
func (s ClassSet) Len() int {
	return len(s.names)
}
