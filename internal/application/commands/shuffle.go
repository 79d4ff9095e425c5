package commands

import (
	"context"
	"fmt"

	"storyshuffle/internal/application"
	"storyshuffle/internal/domain"
	"storyshuffle/internal/logging"
	"storyshuffle/internal/ports"
)

// ShuffleResult contains a new ordering and the assembled manuscript
type ShuffleResult struct {
	Ordering  *domain.OrderingResult
	Assembled string
	Run       *domain.ShuffleRun
	Message   string
}

// ShuffleManuscriptCommand orders a manuscript supplied in full
type ShuffleManuscriptCommand struct {
	Manuscript Manuscript
	Rand       domain.Rand
}

// NewShuffleManuscriptCommand creates a new ShuffleManuscriptCommand
func NewShuffleManuscriptCommand(m Manuscript, rng domain.Rand) *ShuffleManuscriptCommand {
	return &ShuffleManuscriptCommand{Manuscript: m, Rand: rng}
}

// Execute runs the shuffle manuscript command
func (c *ShuffleManuscriptCommand) Execute(ctx context.Context) (*ShuffleResult, error) {
	s, err := newSession(c.Manuscript, sessionOptions(ctx, c.Rand)...)
	if err != nil {
		return nil, err
	}
	ordering, err := s.Shuffle(ctx)
	if err != nil {
		return nil, err
	}
	text, _ := s.Assembled()
	return &ShuffleResult{
		Ordering:  ordering,
		Assembled: text,
		Message:   fmt.Sprintf("Shuffled %d sections: %s", ordering.Len(), domain.FormatOrder(ordering.Numbers())),
	}, nil
}

// ShuffleProjectCommand orders a stored project and records the run
type ShuffleProjectCommand struct {
	store ports.ProjectStore
	Name  string
	Rand  domain.Rand
}

// NewShuffleProjectCommand creates a new ShuffleProjectCommand
func NewShuffleProjectCommand(store ports.ProjectStore, name string, rng domain.Rand) *ShuffleProjectCommand {
	return &ShuffleProjectCommand{store: store, Name: name, Rand: rng}
}

// Validate checks if the shuffle operation is valid
func (c *ShuffleProjectCommand) Validate() error {
	return application.ValidateProjectName(c.Name)
}

// Execute runs the shuffle project command
func (c *ShuffleProjectCommand) Execute(ctx context.Context) (*ShuffleResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	p, err := c.store.GetProject(ctx, c.Name)
	if err != nil {
		return nil, err
	}
	s, err := restoreSession(p, sessionOptions(ctx, c.Rand)...)
	if err != nil {
		return nil, err
	}
	return ShuffleAndRecord(ctx, c.store, s)
}

// ShuffleAndRecord shuffles s and, on success, saves the project and the
// new run in one transaction.
func ShuffleAndRecord(ctx context.Context, store ports.ProjectStore, s *application.Session) (*ShuffleResult, error) {
	ordering, err := s.Shuffle(ctx)
	if err != nil {
		return nil, err
	}

	run := &domain.ShuffleRun{Project: s.Name(), Indices: ordering.Indices}
	tx, err := store.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	if err := tx.SaveProject(s.Project()); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.RecordRun(run); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit run: %w", err)
	}

	logging.FromContext(ctx).Debug("run recorded", "project", run.Project, "run", run.ID)

	text, _ := s.Assembled()
	return &ShuffleResult{
		Ordering:  ordering,
		Assembled: text,
		Run:       run,
		Message:   fmt.Sprintf("Shuffled %s: %s", run.Project, domain.FormatOrder(ordering.Numbers())),
	}, nil
}

func sessionOptions(ctx context.Context, rng domain.Rand) []application.SessionOption {
	opts := []application.SessionOption{application.WithLogger(logging.FromContext(ctx))}
	if rng != nil {
		opts = append(opts, application.WithRand(rng))
	}
	return opts
}
