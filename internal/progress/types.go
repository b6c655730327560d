// Package progress carries per-item pipeline events from the migration and
// comment passes to whatever renders them (terminal UI, tests).
package progress

import (
	"sync"
	"time"
)

// Stage describes a high-level pipeline phase.
type Stage string

const (
	// StageResolve picks the newest revision in a directory.
	StageResolve Stage = "resolve"
	// StageExtract reads the file and locates the marker.
	StageExtract Stage = "extract"
	// StageMerge splices the body under the header.
	StageMerge Stage = "merge"
	// StageWrite writes the output file.
	StageWrite Stage = "write"
	// StageRewrite rewrites comment blocks in one file.
	StageRewrite Stage = "rewrite"
)

// Status captures progress state within a stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusSkipped Status = "skipped"
	StatusError   Status = "error"
)

// Terminal reports whether no further events are expected for the item.
func (s Status) Terminal() bool {
	return s == StatusDone || s == StatusSkipped || s == StatusError
}

// Event reports progress for an item (a directory or a file). An empty Item
// describes the whole run.
type Event struct {
	Item    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// Sink consumes progress events. Implementations must be goroutine-safe.
type Sink interface {
	OnEvent(Event)
}

// Timings accumulates time spent per stage across all workers.
type Timings struct {
	mu     sync.Mutex
	stages map[Stage]time.Duration
}

// Add accumulates dur for stage.
func (t *Timings) Add(stage Stage, dur time.Duration) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stages == nil {
		t.stages = make(map[Stage]time.Duration)
	}
	t.stages[stage] += dur
}

// Has reports whether a duration for stage is recorded.
func (t *Timings) Has(stage Stage) bool {
	if t == nil {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.stages[stage]
	return ok
}

// Duration returns the recorded duration for stage.
func (t *Timings) Duration(stage Stage) time.Duration {
	if t == nil {
		return 0
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stages[stage]
}

// Sum returns the sum of durations across the provided stages.
func (t *Timings) Sum(stages ...Stage) time.Duration {
	var total time.Duration
	for _, stage := range stages {
		total += t.Duration(stage)
	}
	return total
}
