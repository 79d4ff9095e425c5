package application

import (
	"errors"
	"testing"

	"storyshuffle/internal/domain"
)

func TestValidateRequired(t *testing.T) {
	tests := []struct {
		name      string
		fieldName string
		value     string
		wantErr   bool
	}{
		{
			name:      "valid value",
			fieldName: "manuscriptPath",
			value:     "novel.txt",
			wantErr:   false,
		},
		{
			name:      "empty string",
			fieldName: "manuscriptPath",
			value:     "",
			wantErr:   true,
		},
		{
			name:      "whitespace only",
			fieldName: "manuscriptPath",
			value:     "   ",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequired(tt.fieldName, tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRequired() error = %v, wantErr %v", err, tt.wantErr)
			}

			if err != nil {
				var valErr *ValidationError
				if !errors.As(err, &valErr) {
					t.Fatalf("expected ValidationError, got %T", err)
				}
				if valErr.Field != tt.fieldName {
					t.Errorf("expected field %s, got %s", tt.fieldName, valErr.Field)
				}
				if valErr.Message != "manuscript path is required" {
					t.Errorf("unexpected message %q", valErr.Message)
				}
			}
		})
	}
}

func TestValidateProjectName(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"simple", "novel", false},
		{"with spaces and dots", "The Long Road v2.1", false},
		{"empty", "", true},
		{"leading space", " novel", true},
		{"slash", "drafts/novel", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProjectName(tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateProjectName(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
		})
	}
}

func TestValidateSection(t *testing.T) {
	if err := ValidateSection("before", 3, 3); err != nil {
		t.Errorf("last section should be valid: %v", err)
	}

	for _, section := range []int{0, 4, -1} {
		err := ValidateSection("before", section, 3)
		if err == nil {
			t.Fatalf("ValidateSection(%d) should fail", section)
		}
		if !errors.Is(err, domain.ErrUnknownSection) {
			t.Errorf("expected ErrUnknownSection, got %v", err)
		}
		var valErr *ValidationError
		if !errors.As(err, &valErr) || valErr.Field != "before" {
			t.Errorf("expected ValidationError on field before, got %v", err)
		}
	}
}

func TestShuffleErrorIs(t *testing.T) {
	err := &ShuffleError{Reason: "paradox", Err: domain.ErrParadox}
	if !errors.Is(err, ErrCannotShuffle) {
		t.Error("ShuffleError should match ErrCannotShuffle")
	}
	if !errors.Is(err, domain.ErrParadox) {
		t.Error("ShuffleError should unwrap to its cause")
	}
	if got := (&NotFoundError{Kind: "project", Name: "novel"}).Error(); got != `project "novel" not found` {
		t.Errorf("NotFoundError.Error() = %q", got)
	}
}
