// Package store persists sweep runs and their per-point summaries.
package store

import "time"

// Run describes one sweep invocation.
type Run struct {
	ID         string
	Source     string
	PointCount int
	Workers    int
	Elapsed    time.Duration
	ParamsJSON string
	CreatedAt  time.Time
}

// Point is the stored summary of a single configuration within a run.
type Point struct {
	RunID         string
	Index         int
	Width         int
	Height        int
	K             int
	R             int
	Rule          uint64
	Langton       float64
	Random        bool
	Repetitions   int
	Cycles        int
	MeanCycle     float64
	FinalActivity float64
	Steps         int
	Error         string
}

// DB is the persistence interface used by the sweep driver.
type DB interface {
	Close() error
	Migrate() error

	SaveRun(run *Run) error
	SavePoints(runID string, points []Point) error

	GetRun(id string) (*Run, error)
	ListRuns(limit int) ([]Run, error)
	ListPoints(runID string) ([]Point, error)
}
