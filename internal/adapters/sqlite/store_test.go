package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storyshuffle/internal/application"
	"storyshuffle/internal/domain"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "data", "storyshuffle.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})
	return store
}

func sampleProject() *domain.Project {
	constraints := domain.NewConstraints(3)
	constraints[0].Fixed = true
	_ = constraints[2].SetRawInput("2")
	return &domain.Project{
		Name:        "novel",
		Manuscript:  "one * * * two * * * three",
		Delimiter:   domain.DefaultDelimiter(),
		Constraints: constraints,
	}
}

func TestStoreProjectRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	require.NoError(t, store.SaveProject(ctx, sampleProject()))

	got, err := store.GetProject(ctx, "novel")
	require.NoError(t, err)
	assert.Equal(t, "novel", got.Name)
	assert.Equal(t, "one * * * two * * * three", got.Manuscript)
	assert.Equal(t, domain.DefaultDelimiter(), got.Delimiter)
	assert.False(t, got.UpdatedAt.IsZero())

	require.Len(t, got.Constraints, 3)
	assert.True(t, got.Constraints[0].Fixed)
	assert.Empty(t, got.Constraints[1].RawInput)
	assert.Equal(t, "2", got.Constraints[2].RawInput)
	assert.Equal(t, []int{2}, got.Constraints[2].Before)
}

func TestStoreSaveReplacesConstraints(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	p := sampleProject()
	require.NoError(t, store.SaveProject(ctx, p))

	p.Constraints = domain.NewConstraints(3)
	p.Delimiter = domain.Delimiter{Pattern: `\s*\*\s*\*\s*\*\s*`, IsRegex: true}
	require.NoError(t, store.SaveProject(ctx, p))

	got, err := store.GetProject(ctx, "novel")
	require.NoError(t, err)
	assert.Empty(t, got.Constraints)
	assert.True(t, got.Delimiter.IsRegex)
}

func TestStoreBlankListRestoresAsShuffleable(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	s := application.NewSession()
	s.SetName("novel")
	require.NoError(t, s.SetManuscript("one * * * two * * * three"))
	require.NoError(t, s.SetBefore(1, "   "))
	require.True(t, s.CanShuffle())
	require.NoError(t, store.SaveProject(ctx, s.Project()))

	p, err := store.GetProject(ctx, "novel")
	require.NoError(t, err)
	restored := application.NewSession()
	require.NoError(t, restored.Restore(p))
	assert.Equal(t, s.CanShuffle(), restored.CanShuffle())
}

func TestStoreSaveStampsUpdatedAt(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	clock := time.UnixMilli(1_700_000_000_000)
	store.now = func() time.Time { return clock }

	require.NoError(t, store.SaveProject(ctx, sampleProject()))
	loaded, err := store.GetProject(ctx, "novel")
	require.NoError(t, err)
	assert.True(t, loaded.UpdatedAt.Equal(clock))

	clock = clock.Add(time.Hour)
	require.NoError(t, store.SaveProject(ctx, loaded))
	got, err := store.GetProject(ctx, "novel")
	require.NoError(t, err)
	assert.True(t, got.UpdatedAt.Equal(clock), "resaving a loaded project moves its timestamp, got %v", got.UpdatedAt)
}

func TestStoreGetMissingProject(t *testing.T) {
	store := openTestStore(t)

	_, err := store.GetProject(context.Background(), "absent")
	require.ErrorIs(t, err, application.ErrNotFound)
}

func TestStoreListProjects(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	b := sampleProject()
	b.Name = "beta"
	a := sampleProject()
	a.Name = "alpha"
	a.Manuscript = "single"
	require.NoError(t, store.SaveProject(ctx, b))
	require.NoError(t, store.SaveProject(ctx, a))

	summaries, err := store.ListProjects(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, "alpha", summaries[0].Name)
	assert.Equal(t, 1, summaries[0].Sections)
	assert.Equal(t, "beta", summaries[1].Name)
	assert.Equal(t, 3, summaries[1].Sections)
}

func TestStoreRuns(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	tick := time.UnixMilli(1_700_000_000_000)
	store.now = func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	}

	p := sampleProject()
	for _, indices := range [][]int{{0, 1, 2}, {0, 2, 1}} {
		tx, err := store.BeginTx(ctx)
		require.NoError(t, err)
		require.NoError(t, tx.SaveProject(p))
		run := &domain.ShuffleRun{Project: p.Name, Indices: indices}
		require.NoError(t, tx.RecordRun(run))
		assert.NotEmpty(t, run.ID)
		require.NoError(t, tx.Commit())
	}

	runs, err := store.ListRuns(ctx, "novel", 0)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, []int{0, 2, 1}, runs[0].Indices, "newest first")
	assert.Equal(t, []int{0, 1, 2}, runs[1].Indices)
	assert.NotEqual(t, runs[0].ID, runs[1].ID)

	limited, err := store.ListRuns(ctx, "novel", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	summaries, err := store.ListProjects(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, 2, summaries[0].Runs)
}

func TestStoreRollback(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	tx, err := store.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.SaveProject(sampleProject()))
	require.NoError(t, tx.Rollback())

	_, err = store.GetProject(ctx, "novel")
	require.ErrorIs(t, err, application.ErrNotFound)
}

func TestStoreDeleteProject(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	p := sampleProject()

	tx, err := store.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.SaveProject(p))
	require.NoError(t, tx.RecordRun(&domain.ShuffleRun{Project: p.Name, Indices: []int{0, 1, 2}}))
	require.NoError(t, tx.Commit())

	require.NoError(t, store.DeleteProject(ctx, "novel"))

	_, err = store.GetProject(ctx, "novel")
	require.ErrorIs(t, err, application.ErrNotFound)
	runs, err := store.ListRuns(ctx, "novel", 0)
	require.NoError(t, err)
	assert.Empty(t, runs)

	err = store.DeleteProject(ctx, "novel")
	require.ErrorIs(t, err, application.ErrNotFound)
}

func TestIndicesCodec(t *testing.T) {
	got, err := decodeIndices(encodeIndices([]int{3, 0, 12}))
	require.NoError(t, err)
	assert.Equal(t, []int{3, 0, 12}, got)

	_, err = decodeIndices("1,x")
	assert.Error(t, err)
}
