package sqlite

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"storyshuffle/internal/domain"
	"storyshuffle/internal/ports"
)

// storeTx implements ports.StoreTx
type storeTx struct {
	tx  *sql.Tx
	now func() time.Time
}

// Ensure storeTx implements StoreTx
var _ ports.StoreTx = (*storeTx)(nil)

// SaveProject upserts the project row and replaces its constraint rows.
// Sections without a rule are not stored. UpdatedAt is set to the save time.
func (t *storeTx) SaveProject(p *domain.Project) error {
	p.UpdatedAt = t.now()

	sections := 0
	if parts, err := domain.Split(p.Manuscript, p.Delimiter); err == nil {
		sections = len(parts)
	}

	_, err := t.tx.Exec(`
		INSERT INTO projects (name, manuscript, delimiter, delimiter_is_regex, section_count, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			manuscript = excluded.manuscript,
			delimiter = excluded.delimiter,
			delimiter_is_regex = excluded.delimiter_is_regex,
			section_count = excluded.section_count,
			updated_at = excluded.updated_at
	`, p.Name, p.Manuscript, p.Delimiter.Pattern, p.Delimiter.IsRegex, sections, p.UpdatedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to save project: %w", err)
	}

	if _, err := t.tx.Exec(`DELETE FROM constraints WHERE project = ?`, p.Name); err != nil {
		return fmt.Errorf("failed to clear constraints: %w", err)
	}
	for i, c := range p.Constraints {
		if !c.Fixed && strings.TrimSpace(c.RawInput) == "" {
			continue
		}
		_, err := t.tx.Exec(`
			INSERT INTO constraints (project, section, fixed, successors)
			VALUES (?, ?, ?, ?)
		`, p.Name, i+1, c.Fixed, c.RawInput)
		if err != nil {
			return fmt.Errorf("failed to save constraint on §%d: %w", i+1, err)
		}
	}
	return nil
}

// RecordRun appends a run, assigning an id and timestamp when missing
func (t *storeTx) RecordRun(run *domain.ShuffleRun) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = t.now()
	}
	_, err := t.tx.Exec(`
		INSERT INTO runs (id, project, indices, created_at)
		VALUES (?, ?, ?, ?)
	`, run.ID, run.Project, encodeIndices(run.Indices), run.CreatedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	return nil
}

// Commit commits the transaction
func (t *storeTx) Commit() error {
	return t.tx.Commit()
}

// Rollback aborts the transaction
func (t *storeTx) Rollback() error {
	return t.tx.Rollback()
}
