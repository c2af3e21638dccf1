package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s := NewSQLiteStore(nil)
	require.NoError(t, s.Open(":memory:"))
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.InitSchema())
	return s
}

func TestRunLifecycle(t *testing.T) {
	s := openTestStore(t)

	run, err := s.CreateRun()
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, StatusRunning, run.Status)

	require.NoError(t, s.CompleteRun(run.ID, StatusSuccess, "", 12, 3))

	runs, err := s.ListRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, run.ID, runs[0].ID)
	assert.Equal(t, StatusSuccess, runs[0].Status)
	assert.Equal(t, 12, runs[0].Targets)
	assert.Equal(t, 3, runs[0].Facades)
	assert.NotNil(t, runs[0].CompletedAt)
}

func TestFailedRunKeepsError(t *testing.T) {
	s := openTestStore(t)

	run, err := s.CreateRun()
	require.NoError(t, err)
	require.NoError(t, s.CompleteRun(run.ID, StatusFailed,
		`facade "assert" has no backend bound`, 4, 1))

	runs, err := s.ListRuns(1)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, StatusFailed, runs[0].Status)
	assert.Contains(t, runs[0].Error, "assert")
}

func TestListRunsLimit(t *testing.T) {
	s := openTestStore(t)
	for i := 0; i < 5; i++ {
		_, err := s.CreateRun()
		require.NoError(t, err)
	}

	runs, err := s.ListRuns(3)
	require.NoError(t, err)
	assert.Len(t, runs, 3)
}

func TestReplaceTargets(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.ReplaceTargets([]TargetRow{
		{Name: "zeta", Kind: "source_set", Deps: 0},
		{Name: "alpha", Kind: "group", Deps: 2},
	}))

	rows, err := s.ListTargets()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "alpha", rows[0].Name, "listing is name-sorted")

	// A later resolution replaces the whole index.
	require.NoError(t, s.ReplaceTargets([]TargetRow{
		{Name: "only", Kind: "facade", Deps: 1},
	}))
	rows, err = s.ListTargets()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "only", rows[0].Name)
}

func TestOpenBadPath(t *testing.T) {
	s := NewSQLiteStore(nil)
	err := s.Open("/nonexistent/dir/state.db")
	assert.Error(t, err)
}
