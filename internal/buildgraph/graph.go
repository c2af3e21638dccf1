package buildgraph

import (
	"sort"
)

// Graph is the configuration-time target registry. It is populated by a
// single pass over the build files — one Declare per target, no concurrent
// writers — and read-only afterwards.
type Graph struct {
	targets map[string]*Target
	order   []string // declaration order, for stable listings
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{targets: make(map[string]*Target)}
}

// Declare adds a target to the graph. Declaring the same label twice is an
// error; the configuration pass declares each target exactly once.
func (g *Graph) Declare(t *Target) error {
	if _, exists := g.targets[t.Name]; exists {
		return &DuplicateTargetError{Name: t.Name}
	}
	g.targets[t.Name] = t
	g.order = append(g.order, t.Name)
	return nil
}

// Lookup returns a declared target by label.
func (g *Graph) Lookup(name string) (*Target, bool) {
	t, ok := g.targets[name]
	return t, ok
}

// Targets returns all targets in declaration order.
func (g *Graph) Targets() []*Target {
	out := make([]*Target, 0, len(g.order))
	for _, name := range g.order {
		out = append(out, g.targets[name])
	}
	return out
}

// Len returns the number of declared targets.
func (g *Graph) Len() int {
	return len(g.targets)
}

// EdgeCount returns the total number of dependency edges.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, t := range g.targets {
		n += len(t.Deps)
	}
	return n
}

// CheckDeps verifies that every dependency label resolves to a declared
// target. Targets are visited in sorted order so the first error reported
// is deterministic.
func (g *Graph) CheckDeps() error {
	names := g.sortedNames()
	for _, name := range names {
		for _, dep := range g.targets[name].Deps {
			if _, ok := g.targets[dep]; !ok {
				return &UnknownDepError{Target: name, Dep: dep}
			}
		}
	}
	return nil
}

// HasCycle reports whether the dependency graph contains a cycle, along
// with the cycle path when one exists.
func (g *Graph) HasCycle() (bool, []string) {
	visited := make(map[string]bool)
	onStack := make(map[string]bool)
	parent := make(map[string]string)

	var cycle []string

	var dfs func(name string) bool
	dfs = func(name string) bool {
		visited[name] = true
		onStack[name] = true

		t := g.targets[name]
		for _, dep := range t.Deps {
			if _, ok := g.targets[dep]; !ok {
				continue // reported by CheckDeps
			}
			if !visited[dep] {
				parent[dep] = name
				if dfs(dep) {
					return true
				}
			} else if onStack[dep] {
				cycle = []string{dep}
				for curr := name; curr != dep; curr = parent[curr] {
					cycle = append([]string{curr}, cycle...)
				}
				cycle = append([]string{dep}, cycle...)
				return true
			}
		}

		onStack[name] = false
		return false
	}

	for _, name := range g.sortedNames() {
		if !visited[name] {
			if dfs(name) {
				return true, cycle
			}
		}
	}
	return false, nil
}

// Sort returns the targets in topological order, dependencies before
// dependents. Returns a CycleError when the graph is not acyclic.
func (g *Graph) Sort() ([]*Target, error) {
	if has, path := g.HasCycle(); has {
		return nil, &CycleError{Path: path}
	}

	visited := make(map[string]bool)
	var out []*Target

	var visit func(name string)
	visit = func(name string) {
		if visited[name] {
			return
		}
		visited[name] = true
		for _, dep := range g.targets[name].Deps {
			if _, ok := g.targets[dep]; ok {
				visit(dep)
			}
		}
		out = append(out, g.targets[name])
	}

	for _, name := range g.sortedNames() {
		visit(name)
	}
	return out, nil
}

// UnboundFacades returns the facade names of every planted missing-backend
// action, sorted. An entry here means binding was attempted with the unset
// sentinel; resolution must fail naming it.
func (g *Graph) UnboundFacades() []string {
	var out []string
	for name, t := range g.targets {
		if t.Kind == KindAction && t.Script == MissingBackendScript {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// Validate runs the full configuration-time checks: dependency resolution,
// acyclicity, and backend binding. The first failure wins; all of them are
// resolved here, never deferred to program runtime.
func (g *Graph) Validate() error {
	if err := g.CheckDeps(); err != nil {
		return err
	}
	if has, path := g.HasCycle(); has {
		return &CycleError{Path: path}
	}
	if unbound := g.UnboundFacades(); len(unbound) > 0 {
		return &MissingBackendError{Facade: unbound[0]}
	}
	return nil
}

func (g *Graph) sortedNames() []string {
	names := make([]string, 0, len(g.targets))
	for name := range g.targets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
