package commands

import (
	"context"
	"errors"
	"fmt"

	"storyshuffle/internal/application"
	"storyshuffle/internal/domain"
	"storyshuffle/internal/ports"
)

// ImportResult contains the result of importing a manuscript
type ImportResult struct {
	Project  *domain.Project
	Sections int
	Message  string
}

// ImportProjectCommand reads a manuscript file into a named project.
// Importing over an existing project replaces its text and resets its
// constraints; its run history is kept.
type ImportProjectCommand struct {
	store     ports.ProjectStore
	source    ports.ManuscriptSource
	Name      string
	Path      string
	Delimiter domain.Delimiter
}

// NewImportProjectCommand creates a new ImportProjectCommand
func NewImportProjectCommand(store ports.ProjectStore, source ports.ManuscriptSource, name, path string, delimiter domain.Delimiter) *ImportProjectCommand {
	return &ImportProjectCommand{
		store:     store,
		source:    source,
		Name:      name,
		Path:      path,
		Delimiter: delimiter,
	}
}

// Validate checks if the import operation is valid
func (c *ImportProjectCommand) Validate() error {
	if err := application.ValidateProjectName(c.Name); err != nil {
		return err
	}
	return application.ValidateRequired("manuscriptPath", c.Path)
}

// Execute runs the import project command
func (c *ImportProjectCommand) Execute(ctx context.Context) (*ImportResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	text, err := c.source.Read(c.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manuscript: %w", err)
	}

	s := application.NewSession(application.WithDelimiter(c.Delimiter))
	s.SetName(c.Name)
	if err := s.SetManuscript(text); err != nil {
		return nil, &application.ValidationError{Field: "delimiter", Message: err.Error(), Err: err}
	}

	p := s.Project()
	if err := c.store.SaveProject(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save project: %w", err)
	}

	return &ImportResult{
		Project:  p,
		Sections: s.Len(),
		Message:  fmt.Sprintf("Imported %s: %d sections", c.Name, s.Len()),
	}, nil
}

// ConstrainResult contains the result of updating a project's constraints
type ConstrainResult struct {
	Project *domain.Project
	Check   *CheckResult
	Message string
}

// ConstrainProjectCommand applies constraint specs to a stored project.
// With Replace set, existing constraints are cleared first.
type ConstrainProjectCommand struct {
	store   ports.ProjectStore
	Name    string
	Specs   []domain.ConstraintSpec
	Replace bool
}

// NewConstrainProjectCommand creates a new ConstrainProjectCommand
func NewConstrainProjectCommand(store ports.ProjectStore, name string, specs []domain.ConstraintSpec, replace bool) *ConstrainProjectCommand {
	return &ConstrainProjectCommand{store: store, Name: name, Specs: specs, Replace: replace}
}

// Validate checks if the constrain operation is valid
func (c *ConstrainProjectCommand) Validate() error {
	return application.ValidateProjectName(c.Name)
}

// Execute runs the constrain project command. Malformed lists are stored as
// typed so the writer can fix them later; specs naming missing sections are
// rejected and nothing is saved.
func (c *ConstrainProjectCommand) Execute(ctx context.Context) (*ConstrainResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	p, err := c.store.GetProject(ctx, c.Name)
	if err != nil {
		return nil, err
	}
	if c.Replace {
		p.Constraints = nil
	}
	s, err := restoreSession(p)
	if err != nil && !errors.Is(err, domain.ErrMalformedList) && !errors.Is(err, domain.ErrUnknownSection) {
		return nil, err
	}

	err = s.ApplySpecs(c.Specs)
	if rejected := rejectedSpecs(err); len(rejected) > 0 {
		return nil, err
	}

	updated := s.Project()
	if err := c.store.SaveProject(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to save project: %w", err)
	}

	check := Check(s)
	return &ConstrainResult{
		Project: updated,
		Check:   check,
		Message: fmt.Sprintf("Updated %s: %s", c.Name, check.Message),
	}, nil
}
