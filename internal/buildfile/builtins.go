package buildfile

import (
	"fmt"

	"go.starlark.net/starlark"

	"github.com/leapstack-labs/facet/internal/buildgraph"
	"github.com/leapstack-labs/facet/internal/config"
	"github.com/leapstack-labs/facet/internal/preproc"
)

// Builder accumulates declarations from build files into a target graph.
// One Builder serves one configuration pass.
type Builder struct {
	graph *buildgraph.Graph
	cfg   *config.Config
}

// NewBuilder creates a builder that declares into g, resolving backend
// references through cfg.
func NewBuilder(g *buildgraph.Graph, cfg *config.Config) *Builder {
	return &Builder{graph: g, cfg: cfg}
}

// Predeclared returns the globals available to build files: the target and
// facade declarations plus the argument toolkit.
func (b *Builder) Predeclared() starlark.StringDict {
	return starlark.StringDict{
		"target":     starlark.NewBuiltin("target", b.targetFn),
		"facade":     starlark.NewBuiltin("facade", b.facadeFn),
		"backend":    starlark.NewBuiltin("backend", b.backendFn),
		"count_args": starlark.NewBuiltin("count_args", countArgsFn),
		"has_args":   starlark.NewBuiltin("has_args", hasArgsFn),
		"comma_args": starlark.NewBuiltin("comma_args", commaArgsFn),
	}
}

// targetFn implements target(name, kind="source_set", srcs=[], public=[],
// deps=[]).
func (b *Builder) targetFn(t *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name, kind string
	var srcs, public, deps *starlark.List
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs,
		"name", &name,
		"kind?", &kind,
		"srcs?", &srcs,
		"public?", &public,
		"deps?", &deps,
	); err != nil {
		return nil, err
	}
	if kind == "" {
		kind = string(buildgraph.KindSourceSet)
	}
	switch buildgraph.Kind(kind) {
	case buildgraph.KindSourceSet, buildgraph.KindGroup, buildgraph.KindAction:
	default:
		return nil, fmt.Errorf("%s: unknown kind %q", fn.Name(), kind)
	}

	err := b.graph.Declare(&buildgraph.Target{
		Name:    name,
		Kind:    buildgraph.Kind(kind),
		Sources: stringList(srcs),
		Public:  stringList(public),
		Deps:    stringList(deps),
	})
	if err != nil {
		return nil, err
	}
	return starlark.None, nil
}

// facadeFn implements facade(name, public=[], srcs=[], deps=[],
// backend=...). When backend is omitted the binding comes from the project
// configuration; a facade with no configured entry is declared unbound.
func (b *Builder) facadeFn(t *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name string
	var backend starlark.Value
	var srcs, public, deps *starlark.List
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs,
		"name", &name,
		"public?", &public,
		"srcs?", &srcs,
		"deps?", &deps,
		"backend?", &backend,
	); err != nil {
		return nil, err
	}

	label, err := b.backendLabel(name, backend)
	if err != nil {
		return nil, err
	}

	err = b.graph.BindFacade(buildgraph.FacadeDecl{
		Name:    name,
		Public:  stringList(public),
		Sources: stringList(srcs),
		Deps:    stringList(deps),
		Backend: label,
	})
	if err != nil {
		return nil, err
	}
	return starlark.None, nil
}

// backendFn implements backend(name): an explicit configuration lookup for
// build files that wire the binding themselves. Returns the bound label, or
// the empty string when the facade is unbound or unconfigured.
func (b *Builder) backendFn(t *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name string
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "name", &name); err != nil {
		return nil, err
	}
	label, _ := b.cfg.Backend(name)
	return starlark.String(label), nil
}

// backendLabel resolves the backend parameter of a facade declaration.
// Omitted (None) means "consult the configuration"; a string is used as-is,
// with "" the explicit unbound sentinel.
func (b *Builder) backendLabel(facade string, v starlark.Value) (string, error) {
	if v == nil || v == starlark.None {
		label, _ := b.cfg.Backend(facade)
		return label, nil
	}
	s, ok := starlark.AsString(v)
	if !ok {
		return "", fmt.Errorf("facade %q: backend must be a string or None, got %s", facade, v.Type())
	}
	return s, nil
}

// countArgsFn implements count_args(payload).
func countArgsFn(t *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	payload, err := payloadArg(fn, args, kwargs)
	if err != nil {
		return nil, err
	}
	return starlark.MakeInt(preproc.Count(preproc.Split(payload))), nil
}

// hasArgsFn implements has_args(payload).
func hasArgsFn(t *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	payload, err := payloadArg(fn, args, kwargs)
	if err != nil {
		return nil, err
	}
	return starlark.Bool(preproc.HasArgs(preproc.Split(payload))), nil
}

// commaArgsFn implements comma_args(payload).
func commaArgsFn(t *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	payload, err := payloadArg(fn, args, kwargs)
	if err != nil {
		return nil, err
	}
	return starlark.String(preproc.CommaArgs(preproc.Split(payload))), nil
}

func payloadArg(fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (string, error) {
	var payload string
	err := starlark.UnpackArgs(fn.Name(), args, kwargs, "payload", &payload)
	return payload, err
}

// stringList converts a Starlark list of strings. Non-string elements are
// rendered with String(), which surfaces in validation rather than panicking
// mid-pass.
func stringList(l *starlark.List) []string {
	if l == nil {
		return nil
	}
	out := make([]string, 0, l.Len())
	for i := 0; i < l.Len(); i++ {
		if s, ok := starlark.AsString(l.Index(i)); ok {
			out = append(out, s)
		} else {
			out = append(out, l.Index(i).String())
		}
	}
	return out
}
