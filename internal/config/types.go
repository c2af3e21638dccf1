// Package config loads Facet project configuration. Values come from
// facet.yaml, FACET_-prefixed environment variables, and CLI flags, merged
// in that order with flags winning.
package config

// Config is the resolved project configuration for one invocation.
type Config struct {
	// ProjectRoot is the directory holding facet.yaml; all relative paths
	// resolve against it.
	ProjectRoot string `koanf:"-"`

	// BuildDir is the directory searched recursively for BUILD.star files.
	BuildDir string `koanf:"build_dir"`

	// StatePath is the SQLite database recording resolution runs.
	StatePath string `koanf:"state_path"`

	// Backends maps a facade name to the implementation target bound to
	// it. The empty string is the valid "unbound" sentinel: the facade is
	// declared but resolution will fail naming it.
	Backends map[string]string `koanf:"backends"`

	// Verbose enables debug logging.
	Verbose bool `koanf:"verbose"`

	// Output selects the resolve/graph output format (text or yaml).
	Output string `koanf:"output"`
}

// Defaults used when neither file, env, nor flags provide a value.
const (
	DefaultBuildDir  = "."
	DefaultStateFile = ".facet/state.db"
	DefaultOutput    = "text"
)

// Backend returns the backend label bound to a facade name, with ok
// reporting whether the name is configured at all. An entry with an empty
// value is configured-but-unbound, which is distinct from absent.
func (c *Config) Backend(name string) (string, bool) {
	if c.Backends == nil {
		return "", false
	}
	label, ok := c.Backends[name]
	return label, ok
}
