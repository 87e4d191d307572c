package metrics

import "time"

// LoadOutcome enumerates results of a full content load.
type LoadOutcome string

const (
	LoadSuccess  LoadOutcome = "success"
	LoadDegraded LoadOutcome = "degraded" // at least one placeholder post
	LoadFailed   LoadOutcome = "failed"
	LoadCanceled LoadOutcome = "canceled"
)

// Recorder defines observability hooks for the content pipeline.
type Recorder interface {
	ObserveLoadDuration(d time.Duration)
	IncLoadOutcome(outcome LoadOutcome)
	SetPostCount(n int)
	IncPlaceholder()
	IncCacheResult(hit bool)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveLoadDuration(time.Duration) {}
func (NoopRecorder) IncLoadOutcome(LoadOutcome)        {}
func (NoopRecorder) SetPostCount(int)                  {}
func (NoopRecorder) IncPlaceholder()                   {}
func (NoopRecorder) IncCacheResult(bool)               {}
