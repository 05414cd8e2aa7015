package guard

import (
	"fmt"
	"strings"
)

// Detection represents a detected secret.
type Detection struct {
	RuleID      string
	Description string
}

// Result contains the result of secret detection.
type Result struct {
	HasSecrets bool
	Detected   []Detection
}

// RuleIDs returns the ids of the matched rules.
func (r Result) RuleIDs() []string {
	ids := make([]string, len(r.Detected))
	for i, d := range r.Detected {
		ids[i] = d.RuleID
	}
	return ids
}

// SecretsError is returned when command text looks like it carries credentials.
type SecretsError struct {
	Detected []Detection
}

func (e *SecretsError) Error() string {
	descs := make([]string, len(e.Detected))
	for i, d := range e.Detected {
		descs[i] = d.Description
	}
	return fmt.Sprintf("possible secrets detected (%s); use --force to copy anyway", strings.Join(descs, ", "))
}

// Sanitizer checks text for potential secrets.
type Sanitizer struct {
	rules []Rule
}

// New creates a new Sanitizer with default rules.
func New() *Sanitizer {
	return &Sanitizer{rules: DefaultRules}
}

// Check scans text for secrets and returns detection result.
func (s *Sanitizer) Check(text string) Result {
	var detected []Detection
	for _, r := range s.rules {
		if r.Regex.MatchString(text) {
			detected = append(detected, Detection{
				RuleID:      r.RuleID,
				Description: r.Description,
			})
		}
	}
	return Result{
		HasSecrets: len(detected) > 0,
		Detected:   detected,
	}
}

// CheckCommand returns a *SecretsError when text contains secrets, unless force is set.
func CheckCommand(text string, force bool) error {
	if force {
		return nil
	}
	if res := New().Check(text); res.HasSecrets {
		return &SecretsError{Detected: res.Detected}
	}
	return nil
}
