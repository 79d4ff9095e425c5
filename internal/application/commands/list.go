package commands

import (
	"context"

	"storyshuffle/internal/domain"
	"storyshuffle/internal/ports"
)

// ListProjectsCommand lists all stored projects
type ListProjectsCommand struct {
	store ports.ProjectStore
}

// NewListProjectsCommand creates a new ListProjectsCommand
func NewListProjectsCommand(store ports.ProjectStore) *ListProjectsCommand {
	return &ListProjectsCommand{store: store}
}

// Execute runs the list projects command
func (c *ListProjectsCommand) Execute(ctx context.Context) ([]domain.ProjectSummary, error) {
	return c.store.ListProjects(ctx)
}

// ListRunsCommand lists the shuffle history of a project
type ListRunsCommand struct {
	store ports.ProjectStore
	Name  string
	Limit int
}

// NewListRunsCommand creates a new ListRunsCommand
func NewListRunsCommand(store ports.ProjectStore, name string, limit int) *ListRunsCommand {
	return &ListRunsCommand{store: store, Name: name, Limit: limit}
}

// Execute runs the list runs command. An unknown project is an error rather
// than an empty history.
func (c *ListRunsCommand) Execute(ctx context.Context) ([]domain.ShuffleRun, error) {
	if _, err := c.store.GetProject(ctx, c.Name); err != nil {
		return nil, err
	}
	return c.store.ListRuns(ctx, c.Name, c.Limit)
}
