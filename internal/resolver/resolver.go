// Package resolver runs the configuration pass: it evaluates the build
// files, binds facades to their configured backends, validates the target
// graph, and records the run in the state store.
package resolver

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/facet/internal/buildfile"
	"github.com/leapstack-labs/facet/internal/buildgraph"
	"github.com/leapstack-labs/facet/internal/config"
	"github.com/leapstack-labs/facet/internal/state"
)

// Resolver drives one or more resolution passes over a project.
type Resolver struct {
	cfg    *config.Config
	logger *slog.Logger
	store  state.Store
}

// Result is the outcome of a resolution pass. On a failed pass the graph
// still holds everything declared before the failure.
type Result struct {
	RunID   string
	Files   []string
	Graph   *buildgraph.Graph
	Targets int
	Facades int
	Unbound []string
}

// New creates a resolver. Logger may be nil; state recording is disabled
// when the configured state path is empty.
func New(cfg *config.Config, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Resolver{cfg: cfg, logger: logger}
}

// Resolve executes one configuration pass. The returned error is the first
// configuration failure: a build file error, an unknown dependency, a
// cycle, or an unbound facade. A non-nil Result accompanies most errors so
// callers can still report what was declared.
func (r *Resolver) Resolve(ctx context.Context) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	runID, err := r.startRun()
	if err != nil {
		return nil, err
	}
	defer r.closeStore()

	graph := buildgraph.New()
	builder := buildfile.NewBuilder(graph, r.cfg)
	loader := buildfile.NewLoader(r.cfg.BuildDir, builder)

	r.logger.Debug("loading build files", "build_dir", r.cfg.BuildDir)
	files, loadErr := loader.Load()

	res := &Result{
		RunID:   runID,
		Files:   files,
		Graph:   graph,
		Targets: graph.Len(),
		Unbound: graph.UnboundFacades(),
	}
	res.Facades = countFacades(graph)

	if loadErr != nil {
		r.finishRun(runID, state.StatusFailed, loadErr.Error(), res)
		return res, loadErr
	}

	r.logger.Debug("build files loaded", "files", len(files), "targets", res.Targets)

	if err := graph.Validate(); err != nil {
		r.finishRun(runID, state.StatusFailed, err.Error(), res)
		return res, err
	}

	r.indexTargets(graph)
	r.finishRun(runID, state.StatusSuccess, "", res)
	return res, nil
}

// countFacades counts facade declarations: bound combined targets plus
// planted missing-backend actions.
func countFacades(g *buildgraph.Graph) int {
	n := 0
	for _, t := range g.Targets() {
		if t.Kind == buildgraph.KindFacade {
			n++
		}
		if t.Kind == buildgraph.KindAction && t.Script == buildgraph.MissingBackendScript {
			n++
		}
	}
	return n
}

// startRun opens the state store and creates a run record. With no state
// path configured this is a no-op returning an empty id.
func (r *Resolver) startRun() (string, error) {
	if r.cfg.StatePath == "" {
		return "", nil
	}

	if dir := filepath.Dir(r.cfg.StatePath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return "", fmt.Errorf("failed to create state directory: %w", err)
		}
	}

	store := state.NewSQLiteStore(r.logger)
	if err := store.Open(r.cfg.StatePath); err != nil {
		return "", err
	}
	if err := store.InitSchema(); err != nil {
		store.Close()
		return "", err
	}
	r.store = store

	run, err := store.CreateRun()
	if err != nil {
		return "", err
	}
	return run.ID, nil
}

// finishRun records the outcome. State errors are logged, not fatal: the
// resolution result stands on its own.
func (r *Resolver) finishRun(runID string, status state.RunStatus, errMsg string, res *Result) {
	if r.store == nil {
		return
	}
	if err := r.store.CompleteRun(runID, status, errMsg, res.Targets, res.Facades); err != nil {
		r.logger.Warn("failed to record run", "run_id", runID, "error", err)
	}
}

// indexTargets snapshots the graph into the target index.
func (r *Resolver) indexTargets(g *buildgraph.Graph) {
	if r.store == nil {
		return
	}
	rows := make([]state.TargetRow, 0, g.Len())
	for _, t := range g.Targets() {
		rows = append(rows, state.TargetRow{
			Name: t.Name,
			Kind: string(t.Kind),
			Deps: len(t.Deps),
		})
	}
	if err := r.store.ReplaceTargets(rows); err != nil {
		r.logger.Warn("failed to index targets", "error", err)
	}
}

func (r *Resolver) closeStore() {
	if r.store != nil {
		_ = r.store.Close()
		r.store = nil
	}
}
