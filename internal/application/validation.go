package application

import (
	"fmt"
	"strings"

	"storyshuffle/internal/domain"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", formatFieldName(fieldName)),
		}
	}
	return nil
}

// formatFieldName converts field names to space-separated words
// for more readable error messages (e.g., "projectName" -> "project name")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"projectName":    "project name",
		"manuscriptPath": "manuscript path",
		"constraintPath": "constraint file",
		"outputPath":     "output path",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}

	return fieldName
}

// ValidateProjectName checks that name is present and usable as a key.
func ValidateProjectName(name string) error {
	if err := ValidateRequired("projectName", name); err != nil {
		return err
	}
	if !domain.ValidProjectName(name) {
		return &ValidationError{
			Field:   "projectName",
			Message: fmt.Sprintf("invalid project name: %q (letters, digits, space, '.', '_' and '-' only)", name),
		}
	}
	return nil
}

// ValidateSection checks that a one-based section number exists among count
// sections.
func ValidateSection(fieldName string, section, count int) error {
	if section < 1 || section > count {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("there is no §%d (sections run from §1 to §%d)", section, count),
			Err:     &domain.RangeError{Section: section, Count: count},
		}
	}
	return nil
}
