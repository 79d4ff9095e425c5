package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var projectNameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9 _.-]*$`)

// Project is a saved manuscript together with the delimiter used to split it
// and the constraints attached to its sections.
type Project struct {
	Name        string
	Manuscript  string
	Delimiter   Delimiter
	Constraints []Constraint
	UpdatedAt   time.Time
}

// ProjectSummary is the listing form of a Project.
type ProjectSummary struct {
	Name      string
	Sections  int
	Runs      int
	UpdatedAt time.Time
}

// ShuffleRun records one ordering produced for a project. Indices are
// zero-based positions in the project's sections at the time of the run.
type ShuffleRun struct {
	ID        string
	Project   string
	Indices   []int
	CreatedAt time.Time
}

// Numbers returns the run's one-based section numbers in output order.
func (r ShuffleRun) Numbers() []int {
	numbers := make([]int, len(r.Indices))
	for i, idx := range r.Indices {
		numbers[i] = idx + 1
	}
	return numbers
}

// ValidProjectName reports whether name can be used as a project name.
func ValidProjectName(name string) bool {
	return projectNameRegex.MatchString(name) && len(name) <= 128
}

// FormatOrder renders one-based section numbers as "§3 → §1 → §2".
func FormatOrder(numbers []int) string {
	parts := make([]string, len(numbers))
	for i, n := range numbers {
		parts[i] = fmt.Sprintf("§%d", n)
	}
	return strings.Join(parts, " → ")
}

// Specs converts constraints into their portable form, skipping sections
// that carry no rule.
func Specs(constraints []Constraint) []ConstraintSpec {
	var specs []ConstraintSpec
	for i, c := range constraints {
		if !c.Fixed && strings.TrimSpace(c.RawInput) == "" {
			continue
		}
		specs = append(specs, ConstraintSpec{
			Section: i + 1,
			Fixed:   c.Fixed,
			Before:  c.RawInput,
		})
	}
	return specs
}
