package application

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"storyshuffle/internal/domain"
	"storyshuffle/internal/logging"
)

// Session owns one manuscript being edited: its delimiter, the sections cut
// from it, the constraints attached to each section and the latest ordering.
//
// Editing methods are serialized by a mutex. The latest result is published
// atomically, so Result may be called from any goroutine.
type Session struct {
	mu          sync.Mutex
	name        string
	manuscript  string
	delimiter   domain.Delimiter
	splitErr    error
	sections    []string
	constraints []domain.Constraint

	result atomic.Pointer[domain.OrderingResult]

	rng    domain.Rand
	logger *log.Logger
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithRand sets the source used to pick among ready sections.
func WithRand(r domain.Rand) SessionOption {
	return func(s *Session) { s.rng = r }
}

// WithLogger sets the session logger.
func WithLogger(l *log.Logger) SessionOption {
	return func(s *Session) { s.logger = l }
}

// WithDelimiter sets the initial delimiter.
func WithDelimiter(d domain.Delimiter) SessionOption {
	return func(s *Session) { s.delimiter = d }
}

// NewSession creates a session holding an empty manuscript.
func NewSession(opts ...SessionOption) *Session {
	s := &Session{
		delimiter: domain.DefaultDelimiter(),
		rng:       domain.ProcessRand(),
		logger:    logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.resplit()
	return s
}

// resplit recomputes sections and resets every constraint. Section numbers
// shift when the text or delimiter changes, so old rules cannot be kept.
func (s *Session) resplit() {
	sections, err := domain.Split(s.manuscript, s.delimiter)
	s.splitErr = err
	s.sections = sections
	s.constraints = domain.NewConstraints(len(sections))
}

// Name returns the project name, if any.
func (s *Session) Name() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.name
}

// SetName names the session for persistence.
func (s *Session) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
}

// Manuscript returns the current manuscript text.
func (s *Session) Manuscript() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.manuscript
}

// Delimiter returns the current delimiter.
func (s *Session) Delimiter() domain.Delimiter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.delimiter
}

// SetManuscript replaces the manuscript, re-splits it and resets all
// constraints. The returned error is the delimiter error, if any.
func (s *Session) SetManuscript(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.manuscript = text
	s.resplit()
	s.logger.Debug("manuscript updated", "sections", len(s.sections))
	return s.splitErr
}

// SetDelimiter changes the delimiter, re-splits the manuscript and resets
// all constraints. An invalid regex leaves the session with no sections.
func (s *Session) SetDelimiter(d domain.Delimiter) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delimiter = d
	s.resplit()
	if s.splitErr != nil {
		s.logger.Warn("delimiter rejected", "delimiter", d, "err", s.splitErr)
		return &ValidationError{Field: "delimiter", Message: s.splitErr.Error(), Err: s.splitErr}
	}
	s.logger.Debug("delimiter updated", "delimiter", d, "sections", len(s.sections))
	return nil
}

// SplitError returns the delimiter error from the last split, if any.
func (s *Session) SplitError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.splitErr
}

// Len returns the number of sections.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sections)
}

// Sections returns a copy of the section texts.
func (s *Session) Sections() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.sections)
}

// Constraints returns a copy of the constraint records.
func (s *Session) Constraints() []domain.Constraint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneConstraints(s.constraints)
}

// Constraint returns a copy of the record for one-based section i.
func (s *Session) Constraint(i int) (domain.Constraint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ValidateSection("section", i, len(s.sections)); err != nil {
		return domain.Constraint{}, err
	}
	c := s.constraints[i-1]
	c.Before = slices.Clone(c.Before)
	return c, nil
}

// CanFix reports whether one-based section i may be pinned. Only the first
// and last sections have a fixed position to keep.
func (s *Session) CanFix(i int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return canFix(i, len(s.sections))
}

func canFix(i, count int) bool {
	return count > 0 && (i == 1 || i == count)
}

// SetFixed pins or releases one-based section i.
func (s *Session) SetFixed(i int, fixed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setFixed(i, fixed)
}

func (s *Session) setFixed(i int, fixed bool) error {
	if err := ValidateSection("fixed", i, len(s.sections)); err != nil {
		return err
	}
	if !canFix(i, len(s.sections)) {
		return &ValidationError{
			Field:   "fixed",
			Message: fmt.Sprintf("§%d is neither the first nor the last section", i),
			Err:     ErrInvalidOperation,
		}
	}
	s.constraints[i-1].Fixed = fixed
	return nil
}

// SetBefore records raw as the successor list of one-based section i. The
// raw text is always kept; on a syntax or range problem the section is
// marked invalid and shuffling is disabled until it is corrected.
func (s *Session) SetBefore(i int, raw string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setBefore(i, raw)
}

func (s *Session) setBefore(i int, raw string) error {
	if err := ValidateSection("before", i, len(s.sections)); err != nil {
		return err
	}
	c := &s.constraints[i-1]
	if err := c.SetRawInput(raw); err != nil {
		return &ValidationError{Field: fmt.Sprintf("§%d", i), Message: c.Problem, Err: err}
	}
	if err := c.CheckRange(len(s.sections)); err != nil {
		return &ValidationError{Field: fmt.Sprintf("§%d", i), Message: c.Problem, Err: err}
	}
	return nil
}

// ApplySpecs applies a batch of portable constraints. Every spec is
// attempted; the problems found are joined into one error.
func (s *Session) ApplySpecs(specs []domain.ConstraintSpec) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error
	for _, spec := range specs {
		if err := ValidateSection("section", spec.Section, len(s.sections)); err != nil {
			errs = append(errs, err)
			continue
		}
		if spec.Fixed {
			if err := s.setFixed(spec.Section, true); err != nil {
				errs = append(errs, err)
			}
		}
		if err := s.setBefore(spec.Section, spec.Before); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// CanShuffle reports whether there is anything to reorder and every
// successor list is well formed.
func (s *Session) CanShuffle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canShuffle()
}

func (s *Session) canShuffle() bool {
	if s.splitErr != nil || len(s.sections) <= 1 {
		return false
	}
	for _, c := range s.constraints {
		if !c.SyntaxValid {
			return false
		}
	}
	return true
}

func (s *Session) shuffleBlocker() string {
	switch {
	case s.splitErr != nil:
		return "the delimiter is invalid"
	case len(s.sections) <= 1:
		return "the manuscript has fewer than two sections"
	}
	var bad []int
	for i, c := range s.constraints {
		if !c.SyntaxValid {
			bad = append(bad, i+1)
		}
	}
	return fmt.Sprintf("invalid section lists on %s", domain.FormatSections(bad))
}

// Validate runs paradox detection over every section, updating each
// record's report, and returns the precedence graph when it is acyclic.
func (s *Session) Validate() (*domain.Graph, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.validate()
}

func (s *Session) validate() (*domain.Graph, error) {
	if !s.canShuffle() {
		return nil, &ShuffleError{Reason: s.shuffleBlocker()}
	}
	g, err := domain.MarkParadoxes(s.constraints)
	if err != nil {
		return nil, &ShuffleError{Reason: "constraints contradict each other", Err: err}
	}
	return g, nil
}

// Graph builds the precedence graph from the current constraints without
// checking for cycles. Invalid lists contribute no edges.
func (s *Session) Graph() (*domain.Graph, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.BuildGraph(s.constraints)
}

// Shuffle validates the constraints and, when they admit an order, computes
// a new randomized ordering and publishes it as the latest result. On
// failure the previous result is left in place.
func (s *Session) Shuffle(ctx context.Context) (*domain.OrderingResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	progress := logging.NewProgress(s.logger)
	g, err := s.validate()
	if err != nil {
		s.logger.Info("shuffle refused", "err", err)
		return nil, err
	}

	result, err := domain.Shuffle(g, s.sections, s.rng)
	if err != nil {
		s.logger.Error("ordering failed on a validated graph", "err", err, "sections", len(s.sections))
		return nil, &ShuffleError{Reason: "internal error", Err: err}
	}

	s.result.Store(result)
	progress.Done(fmt.Sprintf("Shuffled %d sections", result.Len()), "order", domain.FormatOrder(result.Numbers()))
	return result, nil
}

// Result returns the latest ordering, or nil before the first successful
// shuffle.
func (s *Session) Result() *domain.OrderingResult {
	return s.result.Load()
}

// Assembled joins the latest ordering with the delimiter's joiner. It
// reports false when there is no result yet.
func (s *Session) Assembled() (string, bool) {
	r := s.Result()
	if r == nil {
		return "", false
	}
	return r.Assemble(s.Delimiter().Joiner()), true
}

// Project snapshots the session for persistence.
func (s *Session) Project() *domain.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &domain.Project{
		Name:        s.name,
		Manuscript:  s.manuscript,
		Delimiter:   s.delimiter,
		Constraints: cloneConstraints(s.constraints),
	}
}

// Restore loads p into the session. Constraints are re-applied from their
// raw text, so parse state is recomputed rather than trusted. Stored
// constraints beyond the section count are ignored.
func (s *Session) Restore(p *domain.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.name = p.Name
	s.manuscript = p.Manuscript
	s.delimiter = p.Delimiter
	s.resplit()
	s.result.Store(nil)
	if s.splitErr != nil {
		return &ValidationError{Field: "delimiter", Message: s.splitErr.Error(), Err: s.splitErr}
	}

	var errs []error
	for i, c := range p.Constraints {
		if i >= len(s.constraints) {
			break
		}
		if c.Fixed && canFix(i+1, len(s.sections)) {
			s.constraints[i].Fixed = true
		}
		if err := s.setBefore(i+1, c.RawInput); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func cloneConstraints(in []domain.Constraint) []domain.Constraint {
	out := make([]domain.Constraint, len(in))
	for i, c := range in {
		c.Before = slices.Clone(c.Before)
		out[i] = c
	}
	return out
}
