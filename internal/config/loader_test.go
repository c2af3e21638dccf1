package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "")

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.ProjectRoot)
	assert.Equal(t, dir, cfg.BuildDir, "default build dir resolves to project root")
	assert.Equal(t, filepath.Join(dir, DefaultStateFile), cfg.StatePath)
	assert.Equal(t, DefaultOutput, cfg.Output)
	assert.False(t, cfg.Verbose)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
build_dir: src
backends:
  log: "//backends/log_basic"
  assert: ""
`)

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "src"), cfg.BuildDir)

	label, ok := cfg.Backend("log")
	assert.True(t, ok)
	assert.Equal(t, "//backends/log_basic", label)

	// Declared but unbound: configured with the empty sentinel.
	label, ok = cfg.Backend("assert")
	assert.True(t, ok)
	assert.Empty(t, label)

	// Absent entirely.
	_, ok = cfg.Backend("rpc")
	assert.False(t, ok)
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "output: text\n")

	t.Setenv("FACET_OUTPUT", "yaml")

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "yaml", cfg.Output)
}

func TestLoadFlagsWin(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "output: text\n")

	t.Setenv("FACET_OUTPUT", "yaml")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("output", "", "")
	flags.String("state", "", "")
	require.NoError(t, flags.Parse([]string{"--output=json", "--state=/tmp/other.db"}))

	cfg, err := Load(path, flags)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Output, "flags take precedence over env vars")
	assert.Equal(t, "/tmp/other.db", cfg.StatePath, "--state maps onto state_path")
}

func TestLoadUnchangedFlagsIgnored(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "output: yaml\n")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("output", "text", "")
	require.NoError(t, flags.Parse(nil))

	cfg, err := Load(path, flags)
	require.NoError(t, err)
	assert.Equal(t, "yaml", cfg.Output, "default flag values must not mask the file")
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "")
	nested := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(nested, 0755))

	assert.Equal(t, root, FindProjectRoot(nested))
	assert.Empty(t, FindProjectRoot(t.TempDir()))
}

func TestLoadBadYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "backends: [not: a: map\n")

	_, err := Load(path, nil)
	assert.Error(t, err)
}
