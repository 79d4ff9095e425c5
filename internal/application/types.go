package application

import "storyshuffle/internal/domain"

// Re-export domain types for use by adapters
type (
	Project        = domain.Project
	ProjectSummary = domain.ProjectSummary
	ShuffleRun     = domain.ShuffleRun
	Constraint     = domain.Constraint
	ConstraintSpec = domain.ConstraintSpec
	Delimiter      = domain.Delimiter
	OrderingResult = domain.OrderingResult
)

// DefaultDelimiter returns the dinkus delimiter
func DefaultDelimiter() Delimiter {
	return domain.DefaultDelimiter()
}

// FormatOrder renders one-based section numbers in output order
func FormatOrder(numbers []int) string {
	return domain.FormatOrder(numbers)
}
