package ports

import (
	"context"

	"storyshuffle/internal/domain"
)

// ProjectStore persists projects and the history of orderings produced for
// them. Lookups of unknown projects return an error matching
// application.ErrNotFound.
type ProjectStore interface {
	// Lifecycle
	Close() error

	// Project queries
	GetProject(ctx context.Context, name string) (*domain.Project, error)
	ListProjects(ctx context.Context) ([]domain.ProjectSummary, error)

	// Run history, newest first; limit <= 0 means all
	ListRuns(ctx context.Context, project string, limit int) ([]domain.ShuffleRun, error)

	// Single-statement writes
	SaveProject(ctx context.Context, p *domain.Project) error
	DeleteProject(ctx context.Context, name string) error

	// Batch updates (save a project and record a run atomically)
	BeginTx(ctx context.Context) (StoreTx, error)
}

// StoreTx represents a transaction over the project store
type StoreTx interface {
	SaveProject(p *domain.Project) error
	RecordRun(run *domain.ShuffleRun) error

	// Transaction control
	Commit() error
	Rollback() error
}
