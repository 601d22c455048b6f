package metrics

import "time"

// Outcome labels the result of a generation run.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailed  Outcome = "failed"
	OutcomeSkipped Outcome = "skipped" // watch rebuild with an unchanged inventory
)

// Recorder defines observability hooks for generation runs.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	ObserveInventory(dirs, entries int)
	IncRunOutcome(outcome Outcome)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) ObserveInventory(int, int)                  {}
func (NoopRecorder) IncRunOutcome(Outcome)                      {}
