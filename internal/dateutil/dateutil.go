// Package dateutil converts human-friendly date and time patterns
// (YYYY-MM-DD, MMM D, h:mm A) into Go layouts used by the dashboard.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDateFormat indicates an invalid date format string.
var ErrInvalidDateFormat = errors.New("invalid date format")

// MaxDateFormatLength limits format string length to prevent abuse.
const MaxDateFormatLength = 50

// Default patterns for the dashboard views.
const (
	DefaultDateFormat    = "MMM D, YYYY"
	DefaultTimeFormat    = "h:mm A"
	DefaultUpdatedFormat = "MMM D, YYYY h:mm A"
)

// dateTokens maps pattern tokens to Go layout components. Longer tokens
// come first so matching is greedy. Tokens are case-sensitive: MM is the
// month, mm the minute.
var dateTokens = []struct {
	token string
	goFmt string
}{
	{"YYYY", "2006"},
	{"MMMM", "January"},
	{"dddd", "Monday"},
	{"MMM", "Jan"},
	{"ddd", "Mon"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"HH", "15"},
	{"hh", "03"},
	{"mm", "04"},
	{"ss", "05"},
	{"M", "1"},
	{"D", "2"},
	{"h", "3"},
	{"A", "PM"},
}

// Presets provides named shortcuts for common patterns.
var Presets = map[string]string{
	"iso":      "YYYY-MM-DD",
	"european": "DD/MM/YYYY",
	"us":       "MM/DD/YYYY",
	"long":     "MMMM D, YYYY",
	"short":    "MMM D, YYYY",
	"time":     "h:mm A",
	"datetime": "MMM D, YYYY h:mm A",
	"weekday":  "dddd, MMM D",
}

// ParseDateFormat converts a pattern to a Go layout.
// Text inside brackets is kept literally: "[at] h:mm A" renders "at 3:04 PM".
// Any other non-token character is kept as is.
func ParseDateFormat(format string) (string, error) {
	if format == "" {
		return "", fmt.Errorf("%w: format cannot be empty", ErrInvalidDateFormat)
	}
	if len(format) > MaxDateFormatLength {
		return "", fmt.Errorf("%w: format exceeds %d characters", ErrInvalidDateFormat, MaxDateFormatLength)
	}

	var result strings.Builder
	result.Grow(len(format) + 10)

	i := 0
	for i < len(format) {
		if format[i] == '[' {
			end := strings.Index(format[i+1:], "]")
			if end == -1 {
				return "", fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidDateFormat, i)
			}
			result.WriteString(format[i+1 : i+1+end])
			i += end + 2
			continue
		}

		matched := false
		for _, t := range dateTokens {
			if strings.HasPrefix(format[i:], t.token) {
				result.WriteString(t.goFmt)
				i += len(t.token)
				matched = true
				break
			}
		}
		if !matched {
			result.WriteByte(format[i])
			i++
		}
	}

	return result.String(), nil
}

// Layout resolves a preset name (case-insensitive) or a pattern to a Go layout.
func Layout(format string) (string, error) {
	if preset, ok := Presets[strings.ToLower(format)]; ok {
		format = preset
	}
	return ParseDateFormat(format)
}

// Format renders t with a preset or pattern.
func Format(t time.Time, format string) (string, error) {
	layout, err := Layout(format)
	if err != nil {
		return "", err
	}
	return t.Format(layout), nil
}

// Formatter holds a resolved layout so templates can format many values
// without reparsing the pattern.
type Formatter struct {
	layout string
}

// NewFormatter resolves format once.
func NewFormatter(format string) (*Formatter, error) {
	layout, err := Layout(format)
	if err != nil {
		return nil, err
	}
	return &Formatter{layout: layout}, nil
}

// Format renders t. The zero time renders as an empty string.
func (f *Formatter) Format(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(f.layout)
}
