package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Config file names, in lookup order.
const (
	ConfigFileName    = "facet.yaml"
	ConfigFileNameAlt = "facet.yml"
)

// maxUpwardSearchLevels limits how far up the tree the project-root search
// goes.
const maxUpwardSearchLevels = 10

// configExistsIn checks whether the directory holds a facet config file.
func configExistsIn(dir string) bool {
	for _, name := range []string{ConfigFileName, ConfigFileNameAlt} {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}

// FindProjectRoot searches upward from startDir for a facet config file.
// Returns empty string if none is found within the search limit.
func FindProjectRoot(startDir string) string {
	dir := startDir
	for i := 0; i < maxUpwardSearchLevels; i++ {
		if configExistsIn(dir) {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// findConfigFile picks the config file to load. An explicit path wins;
// otherwise the project root is searched.
func findConfigFile(explicit, projectRoot string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{ConfigFileName, ConfigFileNameAlt} {
		candidate := filepath.Join(projectRoot, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// Load merges configuration from defaults, the config file, FACET_
// environment variables, and explicitly-set CLI flags, in ascending
// precedence. cfgFile may be empty; flags may be nil.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	projectRoot := inferProjectRoot(cfgFile)

	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]interface{}{
		"build_dir":  DefaultBuildDir,
		"state_path": DefaultStateFile,
		"output":     DefaultOutput,
		"verbose":    false,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	configFile := findConfigFile(cfgFile, projectRoot)
	if configFile != "" {
		if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFile, err)
		}
	}

	// FACET_BUILD_DIR -> build_dir
	if err := k.Load(env.Provider("FACET_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "FACET_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key := strings.ReplaceAll(f.Name, "-", "_")
			// --state maps to the state_path config key.
			if key == "state" {
				return "state_path", posflag.FlagVal(flags, f)
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	cfg.ProjectRoot = projectRoot
	cfg.BuildDir = resolvePathRelativeTo(cfg.BuildDir, projectRoot)
	cfg.StatePath = resolvePathRelativeTo(cfg.StatePath, projectRoot)

	return &cfg, nil
}

// inferProjectRoot determines the project root. An explicit config file
// anchors the root at its directory; otherwise the tree is searched upward
// from the working directory, falling back to the working directory itself.
func inferProjectRoot(cfgFile string) string {
	if cfgFile != "" {
		if abs, err := filepath.Abs(cfgFile); err == nil {
			return filepath.Dir(abs)
		}
	}
	if cwd, err := os.Getwd(); err == nil {
		if root := FindProjectRoot(cwd); root != "" {
			return root
		}
		return cwd
	}
	return "."
}

// resolvePathRelativeTo resolves path against baseDir unless it is empty or
// already absolute.
func resolvePathRelativeTo(path, baseDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}
