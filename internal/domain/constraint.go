package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrMalformedList is returned when a successor list does not match the
// comma-separated section number grammar.
var ErrMalformedList = errors.New("malformed section list")

// successorListRegex accepts an optionally empty, comma-separated list of
// decimal integers with optional whitespace around each entry. A blank list
// is an empty one.
var successorListRegex = regexp.MustCompile(`^\s*(?:\d+\s*(?:,\s*\d+\s*)*)?$`)

// Constraint holds the ordering rules the writer attached to one section.
// Constraint i always describes section i.
type Constraint struct {
	// Fixed pins the section to its current position. Only meaningful for
	// the first and last sections.
	Fixed bool

	// Before lists the one-based numbers of the sections that must appear
	// strictly after this one.
	Before []int

	// RawInput is the successor list as typed, kept even when invalid so it
	// can be shown back to the writer.
	RawInput string

	// SyntaxValid reports whether RawInput is well formed (and in range).
	SyntaxValid bool

	// Problem explains why RawInput was rejected. Empty when SyntaxValid.
	Problem string

	// Paradox is the rendered cycle report for this section, or empty.
	Paradox string
}

// NewConstraint returns an unconstrained record. An empty list is well formed.
func NewConstraint() Constraint {
	return Constraint{SyntaxValid: true}
}

// NewConstraints returns n unconstrained records.
func NewConstraints(n int) []Constraint {
	constraints := make([]Constraint, n)
	for i := range constraints {
		constraints[i] = NewConstraint()
	}
	return constraints
}

// HasParadox reports whether the last validation pass found a cycle through
// this section.
func (c Constraint) HasParadox() bool {
	return c.Paradox != ""
}

// ParseSuccessors validates raw against the successor list grammar and
// returns the parsed one-based section numbers. Zero entries are dropped.
// Range is not checked here.
func ParseSuccessors(raw string) ([]int, error) {
	if !successorListRegex.MatchString(raw) {
		return nil, ErrMalformedList
	}
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	var before []int
	for _, field := range strings.Split(raw, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			// Digits that overflow int cannot name a section either.
			return nil, ErrMalformedList
		}
		if n == 0 {
			continue
		}
		before = append(before, n)
	}
	return before, nil
}

// FormatSuccessors renders section numbers in the canonical "1, 2, 3" form.
func FormatSuccessors(before []int) string {
	parts := make([]string, len(before))
	for i, n := range before {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ", ")
}

// SetRawInput records raw as the successor list and parses it. On a syntax
// error Before is cleared and the record is marked invalid. Out-of-range
// numbers are left in Before; use CheckRange to apply the range policy.
func (c *Constraint) SetRawInput(raw string) error {
	c.RawInput = raw
	before, err := ParseSuccessors(raw)
	if err != nil {
		c.Before = nil
		c.SyntaxValid = false
		c.Problem = "Invalid list of sections."
		return err
	}
	c.Before = before
	c.SyntaxValid = true
	c.Problem = ""
	return nil
}

// CheckRange rejects references outside 1..count. The record is marked
// invalid and Before is cleared so the graph builder never sees them.
func (c *Constraint) CheckRange(count int) error {
	for _, n := range c.Before {
		if n < 1 || n > count {
			c.Before = nil
			c.SyntaxValid = false
			c.Problem = fmt.Sprintf("There is no §%d (sections run from §1 to §%d).", n, count)
			return &RangeError{Section: n, Count: count}
		}
	}
	return nil
}

// RangeError reports a successor reference to a section that does not exist.
type RangeError struct {
	Section int
	Count   int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("section %d out of range 1..%d", e.Section, e.Count)
}

func (e *RangeError) Is(target error) bool {
	return target == ErrUnknownSection
}

// ConstraintSpec is the portable form of a constraint, as read from
// constraint files and tool arguments. Section is one-based.
type ConstraintSpec struct {
	Section int
	Fixed   bool
	Before  string
}
