package buildgraph

// MissingBackendScript names the build-time action planted for a facade
// declared without a bound backend. Running the action fails the build and
// reports the facade's target name; it never succeeds.
const MissingBackendScript = "facet-missing-backend"

// FacadeDecl is a facade declaration from a build file: a public interface
// surface plus a backend reference that is either a target label or the
// empty-string sentinel meaning "unbound". Unbound is a valid, detectable
// state at declaration time; it only becomes a failure at resolution.
type FacadeDecl struct {
	// Name is the facade's target label.
	Name string
	// Public is the interface surface: headers and configs that form the
	// public contract.
	Public []string
	// Sources are the combined target's own compilation units. Files also
	// listed in Public are excluded from the combined target, so a source
	// never appears in both halves of the pair.
	Sources []string
	// Deps are extra dependencies of the combined target.
	Deps []string
	// Backend is the implementation target label, or "" when unbound.
	Backend string
}

// BindFacade materializes the facade's target pair in the graph.
//
// The interface-only target always exists: it carries just the declared
// public surface, so the backend can depend on the public contract without
// depending on the target that depends on the backend. That split is what
// breaks the otherwise circular facade <-> backend dependency.
//
// With a bound backend, the combined target depends on the interface target
// and the backend, and its own source list excludes anything already in the
// interface. With the unbound sentinel, a failing action is planted in the
// combined target's place so the miss surfaces as an attributable
// configuration failure instead of a missing symbol at link time.
func (g *Graph) BindFacade(d FacadeDecl) error {
	iface := &Target{
		Name:   InterfaceName(d.Name),
		Kind:   KindSourceSet,
		Public: d.Public,
	}
	if err := g.Declare(iface); err != nil {
		return err
	}

	if d.Backend == "" {
		return g.Declare(&Target{
			Name:   d.Name,
			Kind:   KindAction,
			Script: MissingBackendScript,
			Args:   []string{d.Name},
			Deps:   []string{iface.Name},
		})
	}

	return g.Declare(&Target{
		Name:    d.Name,
		Kind:    KindFacade,
		Sources: subtract(d.Sources, d.Public),
		Deps:    append([]string{iface.Name, d.Backend}, d.Deps...),
	})
}

// subtract returns the files of list that are not in exclude, preserving
// order.
func subtract(list, exclude []string) []string {
	if len(exclude) == 0 {
		return list
	}
	drop := make(map[string]bool, len(exclude))
	for _, f := range exclude {
		drop[f] = true
	}
	var out []string
	for _, f := range list {
		if !drop[f] {
			out = append(out, f)
		}
	}
	return out
}
