// Package metrics records per-run counters and step durations behind a
// small Backend interface. The default backend discards everything, so
// callers never need to check whether metrics are configured.
package metrics

import "time"

// Labels are string key/value pairs attached to a metric.
type Labels map[string]string

const (
	StepTotal    = "etl_step_total"
	StepDuration = "etl_step_duration_seconds"
	RecordsTotal = "etl_records_total"
	BytesTotal   = "etl_uploaded_bytes_total"
)

// Backend is implemented by concrete metric systems.
type Backend interface {
	IncCounter(name string, delta float64, labels Labels)
	ObserveHistogram(name string, value float64, labels Labels)
	// Flush pushes collected metrics, if the backend needs it.
	Flush() error
}

type nopBackend struct{}

func (nopBackend) IncCounter(string, float64, Labels)       {}
func (nopBackend) ObserveHistogram(string, float64, Labels) {}
func (nopBackend) Flush() error                             { return nil }

// Nop returns a backend that records nothing.
func Nop() Backend { return nopBackend{} }

// ObserveStep records one execution of a pipeline step.
func ObserveStep(b Backend, step string, started time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	labels := Labels{"step": step, "status": status}
	b.IncCounter(StepTotal, 1, labels)
	b.ObserveHistogram(StepDuration, time.Since(started).Seconds(), labels)
}
