package commands

import (
	"context"
	"fmt"

	"storyshuffle/internal/application"
	"storyshuffle/internal/ports"
)

// DeleteResult contains the result of a delete operation
type DeleteResult struct {
	Name    string
	Message string
}

// DeleteProjectCommand deletes a project and its run history
type DeleteProjectCommand struct {
	store ports.ProjectStore
	Name  string
}

// NewDeleteProjectCommand creates a new DeleteProjectCommand
func NewDeleteProjectCommand(store ports.ProjectStore, name string) *DeleteProjectCommand {
	return &DeleteProjectCommand{store: store, Name: name}
}

// Validate checks if the delete operation is valid
func (c *DeleteProjectCommand) Validate() error {
	return application.ValidateProjectName(c.Name)
}

// Execute runs the delete command
func (c *DeleteProjectCommand) Execute(ctx context.Context) (*DeleteResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if err := c.store.DeleteProject(ctx, c.Name); err != nil {
		return nil, fmt.Errorf("failed to delete: %w", err)
	}

	return &DeleteResult{
		Name:    c.Name,
		Message: fmt.Sprintf("Deleted project: %s", c.Name),
	}, nil
}
