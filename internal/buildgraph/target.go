// Package buildgraph holds the configuration-time target graph: named build
// targets, their dependency edges, and the facade binding that pairs an
// interface-only target with exactly one backend implementation.
package buildgraph

// Kind classifies a build target.
type Kind string

const (
	// KindSourceSet is a plain compilable set of sources.
	KindSourceSet Kind = "source_set"
	// KindGroup is a dependency-only aggregation target.
	KindGroup Kind = "group"
	// KindAction is a build step that runs a script when reached.
	KindAction Kind = "action"
	// KindFacade is the combined target produced by a bound facade.
	KindFacade Kind = "facade"
)

// Target is a build-time entity declared exactly once during the
// configuration pass. Nothing mutates it afterwards.
type Target struct {
	// Name is the unique label of the target.
	Name string
	// Kind classifies how the target is built.
	Kind Kind
	// Sources are the target's own compilation units.
	Sources []string
	// Public is the declared public surface (headers, configs). For a
	// facade interface target this is the whole content.
	Public []string
	// Deps are labels of targets this one depends on.
	Deps []string

	// Script and Args describe action targets. Script names the build-time
	// action to run; Args are passed to it verbatim.
	Script string
	Args   []string
}

// InterfaceName returns the label of the interface-only target derived from
// a facade name.
func InterfaceName(facade string) string {
	return facade + ".interface"
}
