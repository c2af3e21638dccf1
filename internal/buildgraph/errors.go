package buildgraph

import (
	"fmt"
	"strings"
)

// DuplicateTargetError reports a label declared twice in one pass.
type DuplicateTargetError struct {
	Name string
}

func (e *DuplicateTargetError) Error() string {
	return fmt.Sprintf("target %q declared more than once", e.Name)
}

// UnknownDepError reports a dependency label with no matching declaration.
type UnknownDepError struct {
	Target string
	Dep    string
}

func (e *UnknownDepError) Error() string {
	return fmt.Sprintf("target %q depends on undeclared target %q", e.Target, e.Dep)
}

// MissingBackendError reports a facade whose backend was never bound. The
// message always carries the facade's own target name so the failure is
// attributable instead of surfacing later as a confusing missing symbol.
type MissingBackendError struct {
	Facade string
}

func (e *MissingBackendError) Error() string {
	return fmt.Sprintf(
		"facade %q has no backend bound: set backends.%s in facet.yaml to an implementation target",
		e.Facade, strings.TrimSuffix(e.Facade, ".interface"))
}

// CycleError reports a dependency cycle through the listed labels.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("dependency cycle: %s", strings.Join(e.Path, " -> "))
}
