// Package validation normalizes and rejects malformed tool input.
//
// Field kinds differ only by length bound and character-set strictness.
// All free-text fields pass through Sanitize before length checks, so a
// field that survives validation contains no raw angle brackets, no
// javascript: scheme markers, no inline event-handler patterns, and no
// ".." path segments.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/specsmith/specsmith/internal/toolerr"
)

// Length bounds per field kind, counted in characters (runes), not bytes.
const (
	MaxNameLength      = 100
	MaxUserStoryLength = 1000
	MaxCriterionLength = 500

	// DefaultMaxInputLength caps generic descriptions when no limit
	// is configured (MAX_INPUT_LENGTH).
	DefaultMaxInputLength = 10000
)

// namePattern is the strict character set for name fields:
// alphanumerics plus space, hyphen, underscore, and dot.
var namePattern = regexp.MustCompile(`^[A-Za-z0-9 ._-]+$`)

var (
	jsSchemeRe     = regexp.MustCompile(`(?i)javascript:`)
	eventHandlerRe = regexp.MustCompile(`(?i)on\w+\s*=`)
)

// Validator applies per-kind rules with a configurable generic bound.
type Validator struct {
	maxInputLength int
}

// New creates a Validator. A non-positive maxInputLength falls back to
// DefaultMaxInputLength.
func New(maxInputLength int) *Validator {
	if maxInputLength <= 0 {
		maxInputLength = DefaultMaxInputLength
	}
	return &Validator{maxInputLength: maxInputLength}
}

// Sanitize strips dangerous substrings from free text and trims whitespace.
//
// Stripping loops to a fixpoint: removing one pattern can splice a new one
// together (e.g. "jjavascript:avascript:"), and the contract is that the
// result never contains any disallowed substring. Sanitizing an already
// sanitized string is a no-op.
func Sanitize(s string) string {
	for {
		next := sanitizePass(s)
		if next == s {
			return strings.TrimSpace(next)
		}
		s = next
	}
}

func sanitizePass(s string) string {
	s = strings.ReplaceAll(s, "<", "")
	s = strings.ReplaceAll(s, ">", "")
	s = jsSchemeRe.ReplaceAllString(s, "")
	s = eventHandlerRe.ReplaceAllString(s, "")
	// Traversal defense. Deliberately also eats ellipses and version
	// ranges in prose — see the sanitizer notes in DESIGN.md.
	s = strings.ReplaceAll(s, "..", "")
	return s
}

// String asserts that a decoded JSON value is a string.
// Everything else (numbers, objects, null) fails with InvalidType.
func String(field string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", toolerr.New(toolerr.InvalidType, "%s must be a string", field)
	}
	return s, nil
}

// Name validates a name-kind field: required, at most MaxNameLength,
// restricted to alphanumerics plus space/hyphen/underscore/dot.
func (v *Validator) Name(field, value string) (string, error) {
	value = Sanitize(value)
	if value == "" {
		return "", toolerr.New(toolerr.InvalidLength, "%s is required", field)
	}
	if utf8.RuneCountInString(value) > MaxNameLength {
		return "", toolerr.New(toolerr.InvalidLength, "%s exceeds %d characters", field, MaxNameLength)
	}
	if !namePattern.MatchString(value) {
		return "", toolerr.New(toolerr.InvalidFormat,
			"%s may only contain letters, numbers, spaces, hyphens, underscores, and dots", field)
	}
	return value, nil
}

// UserStory validates a user-story field (free text, at most
// MaxUserStoryLength).
func (v *Validator) UserStory(field, value string) (string, error) {
	value = Sanitize(value)
	if value == "" {
		return "", toolerr.New(toolerr.InvalidLength, "%s is required", field)
	}
	if utf8.RuneCountInString(value) > MaxUserStoryLength {
		return "", toolerr.New(toolerr.InvalidLength, "%s exceeds %d characters", field, MaxUserStoryLength)
	}
	return value, nil
}

// Criterion validates a single acceptance criterion.
func (v *Validator) Criterion(field, value string) (string, error) {
	value = Sanitize(value)
	if value == "" {
		return "", toolerr.New(toolerr.InvalidLength, "%s is required", field)
	}
	if utf8.RuneCountInString(value) > MaxCriterionLength {
		return "", toolerr.New(toolerr.CriterionTooLong, "%s exceeds %d characters", field, MaxCriterionLength)
	}
	return value, nil
}

// Description validates a project/task description against the configured
// maximum input length.
func (v *Validator) Description(field, value string) (string, error) {
	value = Sanitize(value)
	if value == "" {
		return "", toolerr.New(toolerr.InvalidLength, "%s is required", field)
	}
	if utf8.RuneCountInString(value) > v.maxInputLength {
		return "", toolerr.New(toolerr.DescriptionTooLong, "%s exceeds %d characters", field, v.maxInputLength)
	}
	return value, nil
}

// Text validates a generic free-text field against a caller-supplied bound.
func (v *Validator) Text(field, value string, max int) (string, error) {
	value = Sanitize(value)
	if value == "" {
		return "", toolerr.New(toolerr.InvalidLength, "%s is required", field)
	}
	if utf8.RuneCountInString(value) > max {
		return "", toolerr.New(toolerr.InvalidLength, "%s exceeds %d characters", field, max)
	}
	return value, nil
}

// OptionalText sanitizes and bounds a field that may be absent.
// Empty input stays empty without error.
func (v *Validator) OptionalText(field, value string, max int) (string, error) {
	value = Sanitize(value)
	if value == "" {
		return "", nil
	}
	if utf8.RuneCountInString(value) > max {
		return "", toolerr.New(toolerr.InvalidLength, "%s exceeds %d characters", field, max)
	}
	return value, nil
}

// Criteria validates a collection of acceptance criteria. An empty list
// fails with EmptyCriteria; the first invalid element determines the
// failure.
func (v *Validator) Criteria(field string, items []string) ([]string, error) {
	if len(items) == 0 {
		return nil, toolerr.New(toolerr.EmptyCriteria, "%s must contain at least one entry", field)
	}
	out := make([]string, 0, len(items))
	for i, item := range items {
		clean, err := v.Criterion(fmt.Sprintf("%s[%d]", field, i), item)
		if err != nil {
			return nil, err
		}
		out = append(out, clean)
	}
	return out, nil
}
