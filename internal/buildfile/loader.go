// Package buildfile evaluates BUILD.star files into the target graph.
// Build files are Starlark: declarations run top to bottom in one
// deterministic configuration pass, file order fixed by path.
package buildfile

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.starlark.net/starlark"
)

// FileName is the build file name searched for under the build directory.
const FileName = "BUILD.star"

// Loader finds and executes build files against a Builder.
type Loader struct {
	dir     string
	builder *Builder
}

// NewLoader creates a loader rooted at dir.
func NewLoader(dir string, builder *Builder) *Loader {
	return &Loader{dir: dir, builder: builder}
}

// Discover returns all build file paths under the root, sorted for a
// deterministic pass. A missing root is not an error; it simply has no
// build files.
func (l *Loader) Discover() ([]string, error) {
	info, err := os.Stat(l.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to access build directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("build path is not a directory: %s", l.dir)
	}

	var files []string
	err = filepath.WalkDir(l.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// Hidden directories hold state, not build files.
			if name := d.Name(); strings.HasPrefix(name, ".") && path != l.dir {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Name() == FileName {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan build directory: %w", err)
	}
	sort.Strings(files)
	return files, nil
}

// Load discovers and executes every build file. Execution stops at the
// first failing file.
func (l *Loader) Load() ([]string, error) {
	files, err := l.Discover()
	if err != nil {
		return nil, err
	}
	for _, path := range files {
		if err := l.loadFile(path); err != nil {
			return files, err
		}
	}
	return files, nil
}

// loadFile executes a single build file with the builder's predeclared
// globals.
func (l *Loader) loadFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return &LoadError{File: path, Message: fmt.Sprintf("failed to read file: %v", err)}
	}

	rel, relErr := filepath.Rel(l.dir, path)
	if relErr != nil {
		rel = path
	}
	thread := &starlark.Thread{
		Name: fmt.Sprintf("build:%s", rel),
		Print: func(_ *starlark.Thread, msg string) {
			// Build files have no output channel of their own.
		},
	}

	_, err = starlark.ExecFile(thread, path, content, l.builder.Predeclared()) //nolint:staticcheck // SA1019: will migrate to ExecFileOptions later
	if err != nil {
		return &LoadError{File: path, Message: err.Error()}
	}
	return nil
}

// LoadError represents a failure loading or executing a build file.
type LoadError struct {
	File    string
	Message string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s", e.File, e.Message)
}
