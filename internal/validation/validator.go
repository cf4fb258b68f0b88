package validation

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"task-list/internal/domain"
)

// DefaultTextMaxLength bounds task text when no limit is configured.
const DefaultTextMaxLength = 500

var dueShorthandRegex = regexp.MustCompile(`^(\d+)(d|w|mo|y)$`)

// DueOffset is a parsed due date shorthand such as "3d" or "1mo".
type DueOffset struct {
	Count int
	Unit  string
}

// Apply returns day moved forward by the offset in calendar units.
func (o DueOffset) Apply(day time.Time) time.Time {
	switch o.Unit {
	case "w":
		return day.AddDate(0, 0, 7*o.Count)
	case "mo":
		return day.AddDate(0, o.Count, 0)
	case "y":
		return day.AddDate(o.Count, 0, 0)
	default:
		return day.AddDate(0, 0, o.Count)
	}
}

// Validator provides common validation utilities
type Validator struct {
	textMaxLength int
}

// NewValidator creates a validator using the default limits
func NewValidator() *Validator {
	return NewValidatorWithLimits(DefaultTextMaxLength)
}

// NewValidatorWithLimits creates a validator with a configured text length limit.
// A non-positive limit falls back to DefaultTextMaxLength.
func NewValidatorWithLimits(textMaxLength int) *Validator {
	if textMaxLength <= 0 {
		textMaxLength = DefaultTextMaxLength
	}
	return &Validator{textMaxLength: textMaxLength}
}

// TextMaxLength returns the configured limit in characters
func (v *Validator) TextMaxLength() int {
	return v.textMaxLength
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidTextLength checks the trimmed text against the configured limit, counting runes
func (v *Validator) IsValidTextLength(text string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(text)) <= v.textMaxLength
}

// SanitizeText folds every run of whitespace, newlines and tabs included, into
// a single space and trims the ends. Other control characters become U+FFFD.
// The result is cut to the configured limit. Blank input gives "".
func (v *Validator) SanitizeText(s string) string {
	var b strings.Builder
	pendingSpace := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			pendingSpace = true
			continue
		}
		if unicode.IsControl(r) {
			r = utf8.RuneError
		}
		if pendingSpace && b.Len() > 0 {
			b.WriteByte(' ')
		}
		pendingSpace = false
		b.WriteRune(r)
	}

	text := b.String()
	if v.IsValidTextLength(text) {
		return text
	}
	return strings.TrimRightFunc(string([]rune(text)[:v.textMaxLength]), unicode.IsSpace)
}

// MatchDueShorthand reports whether input has the "<number><unit>" shape of a
// due shorthand. The count is 0 when the number does not fit an int.
func (v *Validator) MatchDueShorthand(input string) (DueOffset, bool) {
	matches := dueShorthandRegex.FindStringSubmatch(input)
	if matches == nil {
		return DueOffset{}, false
	}
	count, err := strconv.Atoi(matches[1])
	if err != nil {
		count = 0
	}
	return DueOffset{Count: count, Unit: matches[2]}, true
}

// IsValidDueShorthand checks relative due date input such as "3d", "2w" or "1mo"
func (v *Validator) IsValidDueShorthand(shorthand string) bool {
	offset, ok := v.MatchDueShorthand(shorthand)
	return ok && offset.Count > 0
}

// IsValidPriority checks a priority given as text
func (v *Validator) IsValidPriority(s string) bool {
	_, ok := domain.ParsePriority(s)
	return ok
}

// IsValidFilter checks a filter given as text
func (v *Validator) IsValidFilter(s string) bool {
	_, ok := domain.ParseFilter(s)
	return ok
}
