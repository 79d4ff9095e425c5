package commands

import (
	"storyshuffle/internal/application"
	"storyshuffle/internal/domain"
)

// Manuscript is a manuscript supplied directly rather than loaded from the
// project store.
type Manuscript struct {
	Text      string
	Delimiter domain.Delimiter
	Specs     []domain.ConstraintSpec
}

// newSession splits m and applies its constraint specs. Problems applying
// specs are recorded on the session and returned alongside it.
func newSession(m Manuscript, opts ...application.SessionOption) (*application.Session, error) {
	s := application.NewSession(append(opts, application.WithDelimiter(m.Delimiter))...)
	if err := s.SetManuscript(m.Text); err != nil {
		return s, &application.ValidationError{Field: "delimiter", Message: err.Error(), Err: err}
	}
	return s, s.ApplySpecs(m.Specs)
}

// restoreSession loads p into a fresh session.
func restoreSession(p *domain.Project, opts ...application.SessionOption) (*application.Session, error) {
	s := application.NewSession(opts...)
	return s, s.Restore(p)
}
