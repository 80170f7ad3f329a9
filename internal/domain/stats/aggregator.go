// Package stats counts engine events for observability.
package stats

import (
	"sync/atomic"

	"github.com/GriffinCanCode/profile-engine/internal/shared/types"
)

// Sink receives a copy of every recorded event, e.g. a Prometheus counter
type Sink interface {
	RecordEngineEvent(event string)
}

// Aggregator holds process-lifetime counters. Record and Snapshot are
// lock-free and never block each other.
type Aggregator struct {
	apply             atomic.Uint64
	rotationTick      atomic.Uint64
	validationFailure atomic.Uint64
	parseFailure      atomic.Uint64

	sink Sink
}

// NewAggregator creates an aggregator with all counters at zero
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// WithSink mirrors recorded events into sink
func (a *Aggregator) WithSink(sink Sink) *Aggregator {
	a.sink = sink
	return a
}

// Record increments the counter for event. Unknown events are ignored.
func (a *Aggregator) Record(event types.StatEvent) {
	switch event {
	case types.StatApply:
		a.apply.Add(1)
	case types.StatRotationTick:
		a.rotationTick.Add(1)
	case types.StatValidationFailure:
		a.validationFailure.Add(1)
	case types.StatParseFailure:
		a.parseFailure.Add(1)
	default:
		return
	}

	if a.sink != nil {
		a.sink.RecordEngineEvent(string(event))
	}
}

// Snapshot returns the current counter values
func (a *Aggregator) Snapshot() types.Statistics {
	return types.Statistics{
		ApplyCount:             a.apply.Load(),
		RotationTickCount:      a.rotationTick.Load(),
		ValidationFailureCount: a.validationFailure.Load(),
		ParseFailureCount:      a.parseFailure.Load(),
	}
}
