package common

import "time"

// NoteMetrics is the instrumentation contract for the analysis pipeline.
// A prometheus-backed implementation lives in
// internal/infrastructure/monitoring/prometheus; tests use the noop.
type NoteMetrics interface {
	// ObserveAnalysis records one full pipeline run.
	ObserveAnalysis(duration time.Duration, succeeded bool)
	// ObserveGridSize records the day span produced by an extractor run.
	ObserveGridSize(extractor string, days int)
	// IncCacheHit / IncCacheMiss count analysis-cache lookups.
	IncCacheHit()
	IncCacheMiss()
}

type noopMetrics struct{}

func (noopMetrics) ObserveAnalysis(time.Duration, bool) {}
func (noopMetrics) ObserveGridSize(string, int)         {}
func (noopMetrics) IncCacheHit()                        {}
func (noopMetrics) IncCacheMiss()                       {}

// NewNoopMetrics returns a NoteMetrics that records nothing.
func NewNoopMetrics() NoteMetrics { return noopMetrics{} }
