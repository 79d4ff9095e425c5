package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// DefaultDelimiterPattern is the dinkus that conventionally marks a scene
// break in a manuscript.
const DefaultDelimiterPattern = "* * *"

// ErrInvalidDelimiter is matched by a DelimiterError.
var ErrInvalidDelimiter = errors.New("invalid delimiter")

// Delimiter describes how a manuscript is cut into sections.
type Delimiter struct {
	Pattern string
	IsRegex bool
}

// DefaultDelimiter splits on a literal dinkus.
func DefaultDelimiter() Delimiter {
	return Delimiter{Pattern: DefaultDelimiterPattern}
}

// Joiner returns the text placed between sections when a reordered
// manuscript is assembled. A regex cannot be reproduced verbatim, so regex
// delimiters fall back to the dinkus.
func (d Delimiter) Joiner() string {
	if d.IsRegex {
		return "\n\n" + DefaultDelimiterPattern + "\n\n"
	}
	return "\n\n" + d.Pattern + "\n\n"
}

// String describes the delimiter for logs and listings.
func (d Delimiter) String() string {
	if d.IsRegex {
		return fmt.Sprintf("regex %q", d.Pattern)
	}
	return fmt.Sprintf("%q", d.Pattern)
}

// DelimiterError reports a regex delimiter that does not compile.
type DelimiterError struct {
	Pattern string
	Err     error
}

func (e *DelimiterError) Error() string {
	return fmt.Sprintf("invalid delimiter %q: %v", e.Pattern, e.Err)
}

func (e *DelimiterError) Unwrap() error { return e.Err }

func (e *DelimiterError) Is(target error) bool {
	return target == ErrInvalidDelimiter
}

// Split cuts manuscript into sections at every occurrence of d. Each section
// is trimmed of surrounding whitespace. An empty pattern keeps the manuscript
// whole, and a regex flag with an empty pattern is treated as literal.
func Split(manuscript string, d Delimiter) ([]string, error) {
	var parts []string
	switch {
	case d.Pattern == "":
		parts = []string{manuscript}
	case d.IsRegex:
		re, err := regexp.Compile(d.Pattern)
		if err != nil {
			return nil, &DelimiterError{Pattern: d.Pattern, Err: err}
		}
		parts = re.Split(manuscript, -1)
	default:
		parts = strings.Split(manuscript, d.Pattern)
	}

	sections := make([]string, len(parts))
	for i, part := range parts {
		sections[i] = strings.TrimSpace(part)
	}
	return sections, nil
}

// Excerpt shortens a section for list display, appending an ellipsis when
// the text was cut. Width is measured in runes.
func Excerpt(text string, width int) string {
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	return string(runes[:width]) + "…"
}
