package commands

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"

	"storyshuffle/internal/application"
	"storyshuffle/internal/domain"
	"storyshuffle/internal/ports"
)

// memStore is an in-memory ports.ProjectStore
type memStore struct {
	projects map[string]domain.Project
	runs     []domain.ShuffleRun
	nextID   int
	failTx   bool
}

var _ ports.ProjectStore = (*memStore)(nil)

func newMemStore() *memStore {
	return &memStore{projects: make(map[string]domain.Project)}
}

func (m *memStore) Close() error { return nil }

func (m *memStore) GetProject(_ context.Context, name string) (*domain.Project, error) {
	p, ok := m.projects[name]
	if !ok {
		return nil, &application.NotFoundError{Kind: "project", Name: name}
	}
	p.Constraints = slices.Clone(p.Constraints)
	return &p, nil
}

func (m *memStore) ListProjects(_ context.Context) ([]domain.ProjectSummary, error) {
	var out []domain.ProjectSummary
	for name, p := range m.projects {
		sections, _ := domain.Split(p.Manuscript, p.Delimiter)
		runs := 0
		for _, r := range m.runs {
			if r.Project == name {
				runs++
			}
		}
		out = append(out, domain.ProjectSummary{Name: name, Sections: len(sections), Runs: runs})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memStore) ListRuns(_ context.Context, project string, limit int) ([]domain.ShuffleRun, error) {
	var out []domain.ShuffleRun
	for i := len(m.runs) - 1; i >= 0; i-- {
		if m.runs[i].Project == project {
			out = append(out, m.runs[i])
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memStore) SaveProject(_ context.Context, p *domain.Project) error {
	cp := *p
	cp.Constraints = slices.Clone(p.Constraints)
	m.projects[p.Name] = cp
	return nil
}

func (m *memStore) DeleteProject(_ context.Context, name string) error {
	if _, ok := m.projects[name]; !ok {
		return &application.NotFoundError{Kind: "project", Name: name}
	}
	delete(m.projects, name)
	m.runs = slices.DeleteFunc(m.runs, func(r domain.ShuffleRun) bool { return r.Project == name })
	return nil
}

func (m *memStore) BeginTx(_ context.Context) (ports.StoreTx, error) {
	return &memTx{store: m}, nil
}

type memTx struct {
	store    *memStore
	projects []domain.Project
	runs     []domain.ShuffleRun
}

func (t *memTx) SaveProject(p *domain.Project) error {
	cp := *p
	cp.Constraints = slices.Clone(p.Constraints)
	t.projects = append(t.projects, cp)
	return nil
}

func (t *memTx) RecordRun(run *domain.ShuffleRun) error {
	if run.ID == "" {
		t.store.nextID++
		run.ID = fmt.Sprintf("run-%d", t.store.nextID)
	}
	t.runs = append(t.runs, *run)
	return nil
}

func (t *memTx) Commit() error {
	if t.store.failTx {
		return errors.New("disk full")
	}
	for _, p := range t.projects {
		t.store.projects[p.Name] = p
	}
	t.store.runs = append(t.store.runs, t.runs...)
	return nil
}

func (t *memTx) Rollback() error { return nil }

// memFiles is an in-memory ports.ManuscriptSource
type memFiles map[string]string

func (f memFiles) Read(path string) (string, error) {
	text, ok := f[path]
	if !ok {
		return "", fmt.Errorf("open %s: no such file", path)
	}
	return text, nil
}

func (f memFiles) Write(path, text string) error {
	f[path] = text
	return nil
}

// memClipboard records what was copied
type memClipboard struct {
	text string
	err  error
}

func (c *memClipboard) WriteAll(text string) error {
	if c.err != nil {
		return c.err
	}
	c.text = text
	return nil
}
