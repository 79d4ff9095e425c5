package commands

import (
	"context"

	"storyshuffle/internal/application"
	"storyshuffle/internal/domain"
	"storyshuffle/internal/ports"
)

// ShowResult describes a stored project
type ShowResult struct {
	Project *domain.Project
	Check   *CheckResult
	Runs    []domain.ShuffleRun
}

// ShowProjectCommand loads a project with its latest runs
type ShowProjectCommand struct {
	store ports.ProjectStore
	Name  string
	Runs  int
}

// NewShowProjectCommand creates a new ShowProjectCommand
func NewShowProjectCommand(store ports.ProjectStore, name string, runs int) *ShowProjectCommand {
	return &ShowProjectCommand{store: store, Name: name, Runs: runs}
}

// Validate checks if the show operation is valid
func (c *ShowProjectCommand) Validate() error {
	return application.ValidateProjectName(c.Name)
}

// Execute runs the show project command
func (c *ShowProjectCommand) Execute(ctx context.Context) (*ShowResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	p, err := c.store.GetProject(ctx, c.Name)
	if err != nil {
		return nil, err
	}
	// Restore problems surface through the check below
	s, _ := restoreSession(p)

	runs, err := c.store.ListRuns(ctx, c.Name, c.Runs)
	if err != nil {
		return nil, err
	}
	return &ShowResult{
		Project: s.Project(),
		Check:   Check(s),
		Runs:    runs,
	}, nil
}

// LoadSessionCommand restores a stored project into an editable session
type LoadSessionCommand struct {
	store ports.ProjectStore
	Name  string
	Opts  []application.SessionOption
}

// NewLoadSessionCommand creates a new LoadSessionCommand
func NewLoadSessionCommand(store ports.ProjectStore, name string, opts ...application.SessionOption) *LoadSessionCommand {
	return &LoadSessionCommand{store: store, Name: name, Opts: opts}
}

// Execute runs the load session command. Stored constraints that no longer
// parse are kept in the session, marked invalid.
func (c *LoadSessionCommand) Execute(ctx context.Context) (*application.Session, error) {
	if err := application.ValidateProjectName(c.Name); err != nil {
		return nil, err
	}
	p, err := c.store.GetProject(ctx, c.Name)
	if err != nil {
		return nil, err
	}
	s, _ := restoreSession(p, c.Opts...)
	return s, nil
}
