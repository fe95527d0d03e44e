package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type recordingBackend struct {
	counters map[string]float64
	observed []Labels
}

func (r *recordingBackend) IncCounter(name string, delta float64, labels Labels) {
	r.counters[name+"/"+labels["step"]+"/"+labels["status"]] += delta
}

func (r *recordingBackend) ObserveHistogram(name string, value float64, labels Labels) {
	r.observed = append(r.observed, labels)
}

func (r *recordingBackend) Flush() error { return nil }

func TestObserveStep(t *testing.T) {
	b := &recordingBackend{counters: map[string]float64{}}

	ObserveStep(b, "extract", time.Now(), nil)
	ObserveStep(b, "load", time.Now(), errors.New("boom"))

	assert.Equal(t, 1.0, b.counters[StepTotal+"/extract/ok"])
	assert.Equal(t, 1.0, b.counters[StepTotal+"/load/error"])
	assert.Len(t, b.observed, 2)
}

func TestNopBackend(t *testing.T) {
	b := Nop()
	b.IncCounter(StepTotal, 1, nil)
	b.ObserveHistogram(StepDuration, 1, nil)
	assert.NoError(t, b.Flush())
}
