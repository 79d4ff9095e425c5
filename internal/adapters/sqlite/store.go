package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"storyshuffle/internal/application"
	"storyshuffle/internal/domain"
	"storyshuffle/internal/ports"
)

const schemaVersion = "1"

// Store implements ports.ProjectStore using SQLite
type Store struct {
	db     *sql.DB
	dbPath string
	now    func() time.Time
}

// Ensure Store implements ProjectStore
var _ ports.ProjectStore = (*Store)(nil)

// Open creates or opens the project store at dbPath
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	// WAL lets the CLI read while the TUI holds the database open
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA temp_store = MEMORY;

		CREATE TABLE IF NOT EXISTS projects (
			name TEXT PRIMARY KEY,
			manuscript TEXT NOT NULL,
			delimiter TEXT NOT NULL,
			delimiter_is_regex INTEGER NOT NULL,
			section_count INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS constraints (
			project TEXT NOT NULL REFERENCES projects(name) ON DELETE CASCADE,
			section INTEGER NOT NULL,
			fixed INTEGER NOT NULL,
			successors TEXT NOT NULL,
			PRIMARY KEY (project, section)
		);
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			project TEXT NOT NULL REFERENCES projects(name) ON DELETE CASCADE,
			indices TEXT NOT NULL,
			created_at INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_project ON runs(project, created_at);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	if _, err := db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)`, schemaVersion); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to update metadata: %w", err)
	}

	return &Store{db: db, dbPath: dbPath, now: time.Now}, nil
}

// Path returns the database file location
func (s *Store) Path() string {
	return s.dbPath
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// GetProject loads a project with its constraints
func (s *Store) GetProject(ctx context.Context, name string) (*domain.Project, error) {
	var (
		p         domain.Project
		isRegex   bool
		updatedAt int64
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT name, manuscript, delimiter, delimiter_is_regex, updated_at
		FROM projects WHERE name = ?
	`, name).Scan(&p.Name, &p.Manuscript, &p.Delimiter.Pattern, &isRegex, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &application.NotFoundError{Kind: "project", Name: name}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load project: %w", err)
	}
	p.Delimiter.IsRegex = isRegex
	p.UpdatedAt = time.UnixMilli(updatedAt)

	rows, err := s.db.QueryContext(ctx, `
		SELECT section, fixed, successors
		FROM constraints WHERE project = ? ORDER BY section
	`, name)
	if err != nil {
		return nil, fmt.Errorf("failed to load constraints: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			section int
			fixed   bool
			raw     string
		)
		if err := rows.Scan(&section, &fixed, &raw); err != nil {
			return nil, err
		}
		for len(p.Constraints) < section {
			p.Constraints = append(p.Constraints, domain.NewConstraint())
		}
		c := &p.Constraints[section-1]
		c.Fixed = fixed
		// Parse state is recomputed when the project is restored into a session
		_ = c.SetRawInput(raw)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &p, nil
}

// ListProjects returns a summary of every project, by name
func (s *Store) ListProjects(ctx context.Context) ([]domain.ProjectSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.name, p.section_count, p.updated_at,
			(SELECT COUNT(*) FROM runs r WHERE r.project = p.name)
		FROM projects p
		ORDER BY p.name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var summaries []domain.ProjectSummary
	for rows.Next() {
		var (
			sum       domain.ProjectSummary
			updatedAt int64
		)
		if err := rows.Scan(&sum.Name, &sum.Sections, &updatedAt, &sum.Runs); err != nil {
			return nil, err
		}
		sum.UpdatedAt = time.UnixMilli(updatedAt)
		summaries = append(summaries, sum)
	}
	return summaries, rows.Err()
}

// ListRuns returns the runs recorded for project, newest first
func (s *Store) ListRuns(ctx context.Context, project string, limit int) ([]domain.ShuffleRun, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, project, indices, created_at
		FROM runs WHERE project = ?
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, project, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.ShuffleRun
	for rows.Next() {
		var (
			run       domain.ShuffleRun
			indices   string
			createdAt int64
		)
		if err := rows.Scan(&run.ID, &run.Project, &indices, &createdAt); err != nil {
			return nil, err
		}
		run.Indices, err = decodeIndices(indices)
		if err != nil {
			return nil, fmt.Errorf("run %s: %w", run.ID, err)
		}
		run.CreatedAt = time.UnixMilli(createdAt)
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// SaveProject inserts or replaces a project and its constraints
func (s *Store) SaveProject(ctx context.Context, p *domain.Project) error {
	tx, err := s.BeginTx(ctx)
	if err != nil {
		return err
	}
	if err := tx.SaveProject(p); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// DeleteProject removes a project together with its constraints and runs
func (s *Store) DeleteProject(ctx context.Context, name string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM runs WHERE project = ?`, name); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM constraints WHERE project = ?`, name); err != nil {
		return err
	}
	res, err := tx.Exec(`DELETE FROM projects WHERE name = ?`, name)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &application.NotFoundError{Kind: "project", Name: name}
	}
	return tx.Commit()
}

// BeginTx starts a transaction for atomic updates
func (s *Store) BeginTx(ctx context.Context) (ports.StoreTx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &storeTx{tx: tx, now: s.now}, nil
}

func encodeIndices(indices []int) string {
	parts := make([]string, len(indices))
	for i, idx := range indices {
		parts[i] = strconv.Itoa(idx)
	}
	return strings.Join(parts, ",")
}

func decodeIndices(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	fields := strings.Split(s, ",")
	indices := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("corrupt indices %q: %w", s, err)
		}
		indices[i] = n
	}
	return indices, nil
}
