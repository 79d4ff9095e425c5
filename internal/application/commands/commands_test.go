package commands

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storyshuffle/internal/application"
	"storyshuffle/internal/domain"
)

const threeScenes = "Arrival.\n\n* * *\n\nStorm.\n\n* * *\n\nDeparture."

func importSample(t *testing.T, store *memStore) {
	t.Helper()
	files := memFiles{"story.txt": threeScenes}
	_, err := NewImportProjectCommand(store, files, "novel", "story.txt", domain.DefaultDelimiter()).
		Execute(context.Background())
	require.NoError(t, err)
}

func TestImportProjectCommand_Validate(t *testing.T) {
	tests := []struct {
		name    string
		project string
		path    string
		wantErr bool
		errMsg  string
	}{
		{name: "valid import", project: "novel", path: "story.txt"},
		{name: "empty project name", project: "", path: "story.txt", wantErr: true, errMsg: "project name is required"},
		{name: "invalid project name", project: "../novel", path: "story.txt", wantErr: true, errMsg: "invalid project name"},
		{name: "empty path", project: "novel", path: " ", wantErr: true, errMsg: "manuscript path is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &ImportProjectCommand{Name: tt.project, Path: tt.path}
			err := cmd.Validate()

			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error containing %q, got nil", tt.errMsg)
					return
				}
				if !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("expected error containing %q, got %q", tt.errMsg, err.Error())
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestImportProjectCommand_Execute(t *testing.T) {
	store := newMemStore()
	files := memFiles{"story.txt": threeScenes}

	result, err := NewImportProjectCommand(store, files, "novel", "story.txt", domain.DefaultDelimiter()).
		Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, result.Sections)
	assert.Equal(t, "Imported novel: 3 sections", result.Message)

	p, err := store.GetProject(context.Background(), "novel")
	require.NoError(t, err)
	assert.Equal(t, threeScenes, p.Manuscript)
	assert.Len(t, p.Constraints, 3)

	_, err = NewImportProjectCommand(store, files, "other", "missing.txt", domain.DefaultDelimiter()).
		Execute(context.Background())
	assert.Error(t, err)

	_, err = NewImportProjectCommand(store, files, "bad", "story.txt", domain.Delimiter{Pattern: "(", IsRegex: true}).
		Execute(context.Background())
	require.ErrorIs(t, err, domain.ErrInvalidDelimiter)
}

func TestConstrainProjectCommand(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	importSample(t, store)

	result, err := NewConstrainProjectCommand(store, "novel", []domain.ConstraintSpec{
		{Section: 1, Fixed: true},
		{Section: 3, Before: "2"},
	}, false).Execute(ctx)
	require.NoError(t, err)
	assert.True(t, result.Check.CanShuffle)

	p, err := store.GetProject(ctx, "novel")
	require.NoError(t, err)
	assert.True(t, p.Constraints[0].Fixed)
	assert.Equal(t, "2", p.Constraints[2].RawInput)

	t.Run("adds to existing constraints", func(t *testing.T) {
		_, err := NewConstrainProjectCommand(store, "novel", []domain.ConstraintSpec{
			{Section: 2, Before: "x"},
		}, false).Execute(ctx)
		require.NoError(t, err)

		p, err := store.GetProject(ctx, "novel")
		require.NoError(t, err)
		assert.True(t, p.Constraints[0].Fixed)
		assert.Equal(t, "x", p.Constraints[1].RawInput)
	})

	t.Run("replace clears existing constraints", func(t *testing.T) {
		result, err := NewConstrainProjectCommand(store, "novel", nil, true).Execute(ctx)
		require.NoError(t, err)
		assert.True(t, result.Check.CanShuffle)

		p, err := store.GetProject(ctx, "novel")
		require.NoError(t, err)
		for _, c := range p.Constraints {
			assert.False(t, c.Fixed)
			assert.Empty(t, c.RawInput)
		}
	})

	t.Run("rejects missing sections without saving", func(t *testing.T) {
		_, err := NewConstrainProjectCommand(store, "novel", []domain.ConstraintSpec{
			{Section: 1, Before: "3"},
			{Section: 8, Before: "1"},
		}, false).Execute(ctx)
		require.ErrorIs(t, err, domain.ErrUnknownSection)

		p, err := store.GetProject(ctx, "novel")
		require.NoError(t, err)
		assert.Empty(t, p.Constraints[0].RawInput)
	})

	t.Run("unknown project", func(t *testing.T) {
		_, err := NewConstrainProjectCommand(store, "absent", nil, false).Execute(ctx)
		require.ErrorIs(t, err, application.ErrNotFound)
	})
}

func TestCheckCommand(t *testing.T) {
	tests := []struct {
		name       string
		specs      []domain.ConstraintSpec
		canShuffle bool
		kinds      []ProblemKind
		rejected   int
	}{
		{name: "no constraints", canShuffle: true},
		{
			name:       "consistent",
			specs:      []domain.ConstraintSpec{{Section: 3, Before: "1"}},
			canShuffle: true,
		},
		{
			name:  "syntax problem",
			specs: []domain.ConstraintSpec{{Section: 2, Before: "1;3"}},
			kinds: []ProblemKind{ProblemSyntax},
		},
		{
			name:  "paradox",
			specs: []domain.ConstraintSpec{{Section: 1, Before: "2"}, {Section: 2, Before: "1"}},
			kinds: []ProblemKind{ProblemParadox, ProblemParadox},
		},
		{
			name:       "middle section cannot be fixed",
			specs:      []domain.ConstraintSpec{{Section: 2, Fixed: true}},
			canShuffle: true,
			rejected:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := NewCheckCommand(Manuscript{
				Text:      threeScenes,
				Delimiter: domain.DefaultDelimiter(),
				Specs:     tt.specs,
			}).Execute(context.Background())
			require.NoError(t, err)

			assert.Equal(t, tt.canShuffle, result.CanShuffle)
			var kinds []ProblemKind
			for _, p := range result.Problems {
				kinds = append(kinds, p.Kind)
			}
			assert.Equal(t, tt.kinds, kinds)
			assert.Len(t, result.Rejected, tt.rejected)
		})
	}
}

func TestCheckCommandSingleSection(t *testing.T) {
	result, err := NewCheckCommand(Manuscript{Text: "alone", Delimiter: domain.DefaultDelimiter()}).
		Execute(context.Background())
	require.NoError(t, err)
	assert.False(t, result.CanShuffle)
	assert.Empty(t, result.Problems)
	assert.Contains(t, result.Message, "fewer than two sections")
}

func TestShuffleManuscriptCommand(t *testing.T) {
	result, err := NewShuffleManuscriptCommand(Manuscript{
		Text:      threeScenes,
		Delimiter: domain.DefaultDelimiter(),
		Specs: []domain.ConstraintSpec{
			{Section: 3, Before: "1"},
			{Section: 1, Before: "2"},
		},
	}, domain.NewSeededRand(5)).Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []int{2, 0, 1}, result.Ordering.Indices)
	assert.Equal(t, "Departure.\n\n* * *\n\nArrival.\n\n* * *\n\nStorm.", result.Assembled)
	assert.Nil(t, result.Run)
}

func TestShuffleManuscriptCommandParadox(t *testing.T) {
	_, err := NewShuffleManuscriptCommand(Manuscript{
		Text:      threeScenes,
		Delimiter: domain.DefaultDelimiter(),
		Specs:     []domain.ConstraintSpec{{Section: 2, Before: "2"}},
	}, nil).Execute(context.Background())

	require.ErrorIs(t, err, application.ErrCannotShuffle)
	require.ErrorIs(t, err, domain.ErrParadox)
}

func TestShuffleProjectCommand(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	importSample(t, store)
	_, err := NewConstrainProjectCommand(store, "novel", []domain.ConstraintSpec{{Section: 3, Fixed: true}}, false).Execute(ctx)
	require.NoError(t, err)

	for seed := uint64(1); seed <= 3; seed++ {
		result, err := NewShuffleProjectCommand(store, "novel", domain.NewSeededRand(seed)).Execute(ctx)
		require.NoError(t, err)
		require.NotNil(t, result.Run)
		assert.Equal(t, 2, result.Ordering.Indices[2], "fixed last section moved")
		assert.Equal(t, result.Ordering.Indices, result.Run.Indices)
	}

	runs, err := NewListRunsCommand(store, "novel", 2).Execute(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-3", runs[0].ID)

	_, err = NewListRunsCommand(store, "absent", 0).Execute(ctx)
	require.ErrorIs(t, err, application.ErrNotFound)
}

func TestShuffleProjectCommandCommitFailure(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	importSample(t, store)
	store.failTx = true

	_, err := NewShuffleProjectCommand(store, "novel", nil).Execute(ctx)
	require.Error(t, err)
	assert.Empty(t, store.runs)
}

func TestShowAndDeleteProject(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	importSample(t, store)
	_, err := NewShuffleProjectCommand(store, "novel", nil).Execute(ctx)
	require.NoError(t, err)

	shown, err := NewShowProjectCommand(store, "novel", 5).Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, "novel", shown.Project.Name)
	assert.Len(t, shown.Runs, 1)
	assert.Len(t, shown.Check.Sections, 3)

	summaries, err := NewListProjectsCommand(store).Execute(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, 1, summaries[0].Runs)

	deleted, err := NewDeleteProjectCommand(store, "novel").Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Deleted project: novel", deleted.Message)

	_, err = NewDeleteProjectCommand(store, "novel").Execute(ctx)
	require.ErrorIs(t, err, application.ErrNotFound)
}

func TestLoadSessionCommand(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	importSample(t, store)
	_, err := NewConstrainProjectCommand(store, "novel", []domain.ConstraintSpec{{Section: 2, Before: "9"}}, false).Execute(ctx)
	require.NoError(t, err)

	s, err := NewLoadSessionCommand(store, "novel").Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, "novel", s.Name())
	assert.False(t, s.CanShuffle(), "out-of-range list stays invalid after restore")
}

func TestExportCommand(t *testing.T) {
	t.Run("validate", func(t *testing.T) {
		err := NewExportCommand(nil, nil, "text", false, "").Validate()
		var ve *application.ValidationError
		require.ErrorAs(t, err, &ve)

		err = NewExportCommand(nil, memFiles{}, "text", true, "").Validate()
		require.ErrorIs(t, err, application.ErrInvalidOperation)
	})

	t.Run("file and clipboard", func(t *testing.T) {
		files := memFiles{}
		clip := &memClipboard{}

		result, err := NewExportCommand(clip, files, "shuffled", true, "out.txt").Execute(context.Background())
		require.NoError(t, err)
		assert.True(t, result.Copied)
		assert.Equal(t, "out.txt", result.Written)
		assert.Equal(t, "shuffled", files["out.txt"])
		assert.Equal(t, "shuffled", clip.text)
		assert.Equal(t, "Manuscript written to out.txt and copied to clipboard", result.Message)
	})

	t.Run("clipboard failure", func(t *testing.T) {
		clip := &memClipboard{err: errors.New("no display")}

		_, err := NewExportCommand(clip, nil, "shuffled", true, "").Execute(context.Background())
		require.Error(t, err)
	})
}

func TestGraphCommand(t *testing.T) {
	result, err := NewGraphCommand(Manuscript{
		Text:      threeScenes,
		Delimiter: domain.DefaultDelimiter(),
		Specs: []domain.ConstraintSpec{
			{Section: 1, Fixed: true},
			{Section: 2, Before: "3"},
		},
	}).Execute(context.Background())
	require.NoError(t, err)

	assert.True(t, result.Acyclic)
	assert.Len(t, result.Sections, 3)
	assert.True(t, result.Graph.HasEdge(1, 2), "fixed first precedes everything")
	assert.True(t, result.Graph.HasEdge(2, 3))

	result, err = NewGraphCommand(Manuscript{
		Text:      threeScenes,
		Delimiter: domain.DefaultDelimiter(),
		Specs: []domain.ConstraintSpec{
			{Section: 2, Before: "3"},
			{Section: 3, Before: "2"},
		},
	}).Execute(context.Background())
	require.NoError(t, err)
	assert.False(t, result.Acyclic)
	assert.True(t, result.Constraints[1].HasParadox())
	assert.False(t, result.Constraints[0].HasParadox())

	_, err = NewGraphCommand(Manuscript{
		Text:      threeScenes,
		Delimiter: domain.Delimiter{Pattern: "(", IsRegex: true},
	}).Execute(context.Background())
	require.ErrorIs(t, err, domain.ErrInvalidDelimiter)
}
