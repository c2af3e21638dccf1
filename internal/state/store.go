// Package state persists resolution history and the target index in a
// SQLite database. One row per `facet resolve` run, plus a snapshot of the
// targets the run declared.
package state

import "time"

// RunStatus is the outcome of a resolution run.
type RunStatus string

const (
	// StatusRunning marks a run still in its configuration pass.
	StatusRunning RunStatus = "running"
	// StatusSuccess marks a run whose graph validated.
	StatusSuccess RunStatus = "success"
	// StatusFailed marks a run that stopped on a configuration error.
	StatusFailed RunStatus = "failed"
)

// Run records one resolution pass.
type Run struct {
	ID          string
	StartedAt   time.Time
	CompletedAt *time.Time
	Status      RunStatus
	Error       string
	Targets     int
	Facades     int
}

// TargetRow is one indexed target from the latest resolution.
type TargetRow struct {
	Name string
	Kind string
	Deps int
}

// Store is the persistence interface for resolution state.
type Store interface {
	Open(path string) error
	Close() error
	InitSchema() error

	CreateRun() (*Run, error)
	CompleteRun(id string, status RunStatus, errMsg string, targets, facades int) error
	ListRuns(limit int) ([]*Run, error)

	ReplaceTargets(rows []TargetRow) error
	ListTargets() ([]TargetRow, error)
}
