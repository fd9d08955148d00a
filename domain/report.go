package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
)

// Task names a registry workflow.
type Task string

const (
	TaskCrawl   Task = "crawl"
	TaskRefresh Task = "refresh"
	TaskSeed    Task = "seed"
	TaskFanOut  Task = "fanout"
	TaskAdd     Task = "add"
)

// Stage names the step at which a per-item failure happened.
type Stage string

const (
	StageProbe    Stage = "probe"
	StageDiscover Stage = "discover"
	StageLookup   Stage = "lookup"
	StageStore    Stage = "store"

	// StageInterrupted marks work cut short by cancellation of the cycle itself.
	StageInterrupted Stage = "interrupted"
)

// ItemFailure is one server or peer that was skipped during a cycle.
type ItemFailure struct {
	Host    string  `json:"host"`
	Network Network `json:"network,omitempty"`
	Stage   Stage   `json:"stage"`
	Message string  `json:"error"`
	Err     error   `json:"-"`
}

// CycleReport is the observable outcome of one workflow run.
// A failing item never aborts a cycle; it is recorded in Failures instead.
type CycleReport struct {
	ID         uuid.UUID     `json:"id"`
	Task       Task          `json:"task"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
	Visited    int           `json:"visited"`
	Added      int           `json:"added"`
	Known      int           `json:"known"`
	Suppressed int           `json:"suppressed"`
	Refreshed  int           `json:"refreshed"`
	Stale      int           `json:"stale"`
	Evicted    int           `json:"evicted"`
	Failures   []ItemFailure `json:"failures,omitempty"`
}

// NewCycleReport starts a report for task at now.
func NewCycleReport(task Task, now time.Time) CycleReport {
	return CycleReport{
		ID:        uuid.New(),
		Task:      task,
		StartedAt: now,
	}
}

// Fail records a skipped item.
func (r *CycleReport) Fail(host string, network Network, stage Stage, err error) {
	if err == nil {
		err = errors.New("unknown failure")
	}
	r.Failures = append(r.Failures, ItemFailure{
		Host:    host,
		Network: network,
		Stage:   stage,
		Message: err.Error(),
		Err:     err,
	})
}

// Absorb adds the counters and failures of a nested run (e.g. a fan-out inside a crawl).
func (r *CycleReport) Absorb(other CycleReport) {
	r.Visited += other.Visited
	r.Added += other.Added
	r.Known += other.Known
	r.Suppressed += other.Suppressed
	r.Refreshed += other.Refreshed
	r.Stale += other.Stale
	r.Evicted += other.Evicted
	r.Failures = append(r.Failures, other.Failures...)
}

// Finish stamps the end time.
func (r *CycleReport) Finish(now time.Time) {
	r.FinishedAt = now
}

// Duration returns how long the run took. Zero until Finish is called.
func (r CycleReport) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Err combines all recorded failures, or nil if the run was clean.
func (r CycleReport) Err() error {
	var err error
	for _, f := range r.Failures {
		err = multierr.Append(err, f.Err)
	}
	return err
}
