// The package store groups the SampleSink implementations: an in-memory one
// (mock), one backed by Redis (redistore) and a Parquet writer (parquetstore).
package store

import (
	"context"
	"errors"

	"github.com/vertex-lab/sawsim/pkg/models"
)

// Fanout is a SampleSink forwarding every call to all of its sinks, in order.
type Fanout []models.SampleSink

// NewFanout() returns the sink of the non-nil sinks, or nil if there are none.
func NewFanout(sinks ...models.SampleSink) models.SampleSink {
	var fanout Fanout
	for _, sink := range sinks {
		if sink != nil {
			fanout = append(fanout, sink)
		}
	}

	switch len(fanout) {
	case 0:
		return nil
	case 1:
		return fanout[0]
	default:
		return fanout
	}
}

// AddSamples() adds the samples to every sink, returning the joined errors.
func (f Fanout) AddSamples(ctx context.Context, runID string, samples []models.Sample) error {
	var errs []error
	for _, sink := range f {
		if err := sink.AddSamples(ctx, runID, samples); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// SaveRun() saves the record in every sink, returning the joined errors.
func (f Fanout) SaveRun(ctx context.Context, record models.RunRecord) error {
	var errs []error
	for _, sink := range f {
		if err := sink.SaveRun(ctx, record); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
