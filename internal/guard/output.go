package guard

import (
	"regexp"
	"strings"
)

// controlCharsRegex matches control characters except \t (0x09) and \n (0x0a)
var controlCharsRegex = regexp.MustCompile(`[\x00-\x08\x0b\x0c\x0e-\x1f\x7f]`)

// invisibleRegex matches zero-width characters and bidi overrides, which a
// shell would otherwise treat as part of a word.
var invisibleRegex = regexp.MustCompile(`[\x{200b}-\x{200f}\x{202a}-\x{202e}\x{2060}\x{2066}-\x{2069}\x{feff}]`)

// nbspReplacer turns the &nbsp; of rendered code and its narrow variant into
// plain spaces so arguments still split.
var nbspReplacer = strings.NewReplacer("\u00a0", " ", "\u202f", " ")

// SanitizeOutput cleans text lifted from a page before it reaches the clipboard.
func SanitizeOutput(s string) string {
	s = controlCharsRegex.ReplaceAllString(s, "")
	s = invisibleRegex.ReplaceAllString(s, "")
	return nbspReplacer.Replace(s)
}
