package commands

import (
	"context"
	"errors"
	"fmt"

	"storyshuffle/internal/application"
	"storyshuffle/internal/domain"
)

// ProblemKind classifies a constraint problem
type ProblemKind string

const (
	ProblemSyntax  ProblemKind = "syntax"
	ProblemParadox ProblemKind = "paradox"
)

// SectionProblem is one problem attached to a section
type SectionProblem struct {
	Section int
	Kind    ProblemKind
	Message string
}

// CheckResult reports whether a manuscript's constraints admit an order
type CheckResult struct {
	Sections   []string
	Problems   []SectionProblem
	CanShuffle bool
	Message    string

	// Rejected lists constraint specs that could not be applied at all,
	// such as a rule for a section that does not exist
	Rejected []string
}

// CheckCommand validates the constraints of a manuscript without ordering it
type CheckCommand struct {
	Manuscript Manuscript
}

// NewCheckCommand creates a new CheckCommand
func NewCheckCommand(m Manuscript) *CheckCommand {
	return &CheckCommand{Manuscript: m}
}

// Execute runs syntax and paradox checks over every section
func (c *CheckCommand) Execute(ctx context.Context) (*CheckResult, error) {
	s, err := newSession(c.Manuscript)
	if errors.Is(err, domain.ErrInvalidDelimiter) {
		return nil, err
	}
	result := Check(s)
	result.Rejected = rejectedSpecs(err)
	return result, nil
}

// rejectedSpecs picks out the spec errors that are not already reported as
// a per-section problem.
func rejectedSpecs(err error) []string {
	if err == nil {
		return nil
	}
	errs := []error{err}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		errs = joined.Unwrap()
	}

	var rejected []string
	for _, e := range errs {
		var ve *application.ValidationError
		if errors.As(e, &ve) && (ve.Field == "section" || ve.Field == "fixed") {
			rejected = append(rejected, ve.Error())
		}
	}
	return rejected
}

// Check reports every syntax problem and, when all lists are well formed,
// every paradox in s.
func Check(s *application.Session) *CheckResult {
	result := &CheckResult{Sections: s.Sections()}

	if s.CanShuffle() {
		_, err := s.Validate()
		result.CanShuffle = err == nil
	}

	for i, c := range s.Constraints() {
		if !c.SyntaxValid {
			result.Problems = append(result.Problems, SectionProblem{Section: i + 1, Kind: ProblemSyntax, Message: c.Problem})
		}
		if c.HasParadox() {
			result.Problems = append(result.Problems, SectionProblem{Section: i + 1, Kind: ProblemParadox, Message: c.Paradox})
		}
	}

	switch {
	case result.CanShuffle:
		result.Message = fmt.Sprintf("%d sections, constraints are consistent", len(result.Sections))
	case len(result.Sections) <= 1:
		result.Message = "Nothing to shuffle: the manuscript has fewer than two sections"
	default:
		result.Message = fmt.Sprintf("%d problem(s) found", len(result.Problems))
	}
	return result
}
