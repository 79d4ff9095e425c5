package commands

import (
	"context"
	"errors"

	"storyshuffle/internal/domain"
)

// GraphResult is the precedence graph of a manuscript with the data needed
// to label it
type GraphResult struct {
	Graph       *domain.Graph
	Sections    []string
	Constraints []domain.Constraint
	Acyclic     bool
}

// GraphCommand builds the precedence graph of a manuscript. Paradoxes are
// marked on the returned constraints so they can be highlighted.
type GraphCommand struct {
	Manuscript Manuscript
}

// NewGraphCommand creates a new GraphCommand
func NewGraphCommand(m Manuscript) *GraphCommand {
	return &GraphCommand{Manuscript: m}
}

// Execute runs the graph command
func (c *GraphCommand) Execute(ctx context.Context) (*GraphResult, error) {
	s, err := newSession(c.Manuscript)
	if errors.Is(err, domain.ErrInvalidDelimiter) {
		return nil, err
	}

	result := &GraphResult{Sections: s.Sections()}
	if s.CanShuffle() {
		_, err := s.Validate()
		result.Acyclic = err == nil
	}

	g, err := s.Graph()
	if err != nil {
		return nil, err
	}
	result.Graph = g
	result.Constraints = s.Constraints()
	return result, nil
}
