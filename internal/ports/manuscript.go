package ports

import "storyshuffle/internal/domain"

// ManuscriptSource reads and writes manuscript files
type ManuscriptSource interface {
	Read(path string) (string, error)
	Write(path, text string) error
}

// ConstraintFile loads and saves constraints in their portable form
type ConstraintFile interface {
	Load(path string) ([]domain.ConstraintSpec, error)
	Save(path string, specs []domain.ConstraintSpec) error
}

// ManuscriptWatcher reports changes to a watched manuscript file
type ManuscriptWatcher interface {
	// Changes delivers one value per debounced burst of writes
	Changes() <-chan struct{}
	Errors() <-chan error
	Close() error
}
