package resolver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/facet/internal/buildgraph"
	"github.com/leapstack-labs/facet/internal/config"
	"github.com/leapstack-labs/facet/internal/state"
)

func writeProject(t *testing.T, buildFile string, backends map[string]string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "BUILD.star"), []byte(buildFile), 0644))
	return &config.Config{
		ProjectRoot: dir,
		BuildDir:    dir,
		StatePath:   filepath.Join(dir, ".facet", "state.db"),
		Backends:    backends,
	}
}

func TestResolveSuccess(t *testing.T) {
	cfg := writeProject(t, `
target(name = "backends/log_basic", srcs = ["log_basic.cc"])
facade(name = "log", public = ["log.h"], srcs = ["log.cc", "log.h"])
`, map[string]string{"log": "backends/log_basic"})

	res, err := New(cfg, nil).Resolve(context.Background())
	require.NoError(t, err)

	assert.Len(t, res.Files, 1)
	assert.Equal(t, 3, res.Targets, "backend, interface, combined")
	assert.Equal(t, 1, res.Facades)
	assert.Empty(t, res.Unbound)
	assert.NotEmpty(t, res.RunID)

	combined, ok := res.Graph.Lookup("log")
	require.True(t, ok)
	assert.Equal(t, []string{"log.cc"}, combined.Sources)
}

func TestResolveUnboundFacadeFails(t *testing.T) {
	cfg := writeProject(t, `facade(name = "assert", public = ["assert.h"])`, nil)

	res, err := New(cfg, nil).Resolve(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "assert", "failure must name the facade")

	var missing *buildgraph.MissingBackendError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "assert", missing.Facade)

	require.NotNil(t, res)
	assert.Equal(t, []string{"assert"}, res.Unbound)
}

func TestResolveRecordsHistory(t *testing.T) {
	cfg := writeProject(t, `target(name = "core")`, nil)

	_, err := New(cfg, nil).Resolve(context.Background())
	require.NoError(t, err)

	store := state.NewSQLiteStore(nil)
	require.NoError(t, store.Open(cfg.StatePath))
	defer store.Close()

	runs, err := store.ListRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, state.StatusSuccess, runs[0].Status)
	assert.Equal(t, 1, runs[0].Targets)

	targets, err := store.ListTargets()
	require.NoError(t, err)
	require.Len(t, targets, 1)
	assert.Equal(t, "core", targets[0].Name)
}

func TestResolveRecordsFailure(t *testing.T) {
	cfg := writeProject(t, `facade(name = "sys")`, nil)

	_, err := New(cfg, nil).Resolve(context.Background())
	require.Error(t, err)

	store := state.NewSQLiteStore(nil)
	require.NoError(t, store.Open(cfg.StatePath))
	defer store.Close()

	runs, err := store.ListRuns(1)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, state.StatusFailed, runs[0].Status)
	assert.Contains(t, runs[0].Error, "sys")
}

func TestResolveWithoutStatePath(t *testing.T) {
	cfg := writeProject(t, `target(name = "core")`, nil)
	cfg.StatePath = ""

	res, err := New(cfg, nil).Resolve(context.Background())
	require.NoError(t, err)
	assert.Empty(t, res.RunID)
}

func TestResolveCanceledContext(t *testing.T) {
	cfg := writeProject(t, `target(name = "core")`, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(cfg, nil).Resolve(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResolveCycleFails(t *testing.T) {
	cfg := writeProject(t, `
target(name = "a", deps = ["b"])
target(name = "b", deps = ["a"])
`, nil)

	_, err := New(cfg, nil).Resolve(context.Background())
	var cyc *buildgraph.CycleError
	require.ErrorAs(t, err, &cyc)
}
