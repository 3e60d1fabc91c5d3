package models

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/vertex-lab/sawsim/pkg/lattice"
)

// Sample holds the observables of one accepted walk.
type Sample struct {
	// Trial is the index of the attempt (accepted or not) that produced the sample.
	Trial int

	// Length is the number of positions in the trajectory.
	Length int

	// SquaredDistance is the squared end-to-end distance |R_N|^2.
	SquaredDistance float64

	// Weight is the importance weight of the walk; 1 for unweighted walk types.
	Weight float64

	// End is the final site of the walk. It can be nil.
	End lattice.Site
}

// Validate() returns ErrInvalidSample if the sample cannot enter the statistics.
func (s Sample) Validate() error {
	if s.Length < 1 {
		return ErrInvalidSample
	}
	if s.SquaredDistance < 0 || math.IsNaN(s.SquaredDistance) || math.IsInf(s.SquaredDistance, 0) {
		return ErrInvalidSample
	}
	if s.Weight <= 0 || math.IsNaN(s.Weight) || math.IsInf(s.Weight, 0) {
		return ErrInvalidSample
	}
	return nil
}

// RunRecord is the persisted description of a simulation run and its results.
type RunRecord struct {
	RunID        string        `redis:"run_id"`
	Dim          int           `redis:"dim"`
	Steps        int           `redis:"steps"`
	WalkType     string        `redis:"walk_type"`
	Trials       int           `redis:"trials"`
	Seed         int64         `redis:"seed"`
	Attempts     int           `redis:"attempts"`
	Accepted     int           `redis:"accepted"`
	AcceptedRate float64       `redis:"accepted_rate"`
	Mean         float64       `redis:"mean"`
	StdErr       float64       `redis:"std_err"`
	P            float64       `redis:"p"`
	PLow         float64       `redis:"p_low"`
	PHigh        float64       `redis:"p_high"`
	Complete     bool          `redis:"complete"`
	StartedAt    int64         `redis:"started_at"`
	Duration     time.Duration `redis:"duration"`
}

// SampleSink receives the accepted samples of a run, in batches, and its
// final summary.
type SampleSink interface {
	// AddSamples() appends the samples to the run.
	AddSamples(ctx context.Context, runID string, samples []Sample) error

	// SaveRun() stores the run record, overwriting any previous one.
	SaveRun(ctx context.Context, record RunRecord) error
}

// SampleStore is a SampleSink that can also be read back.
type SampleStore interface {
	SampleSink

	// Samples() returns all the samples of the run, in insertion order.
	Samples(ctx context.Context, runID string) ([]Sample, error)

	// Run() returns the record of the run.
	Run(ctx context.Context, runID string) (RunRecord, error)
}

// Attempt describes the outcome of a single walk, accepted or not.
type Attempt struct {
	WalkType        WalkType
	Worker          int
	Length          int
	Accepted        bool
	SquaredDistance float64
	Weight          float64
}

// Observer is notified of every attempt of a simulation. Implementations must be
// safe for concurrent use, since parallel workers notify the same Observer.
type Observer interface {
	ObserveAttempt(attempt Attempt)
}

//---------------------------------ERROR-CODES---------------------------------

var ErrNoAcceptedWalks = errors.New("no walk was accepted")
var ErrDegenerateStatistics = errors.New("degenerate statistics: non-positive argument of logarithm")
var ErrInvalidSample = errors.New("invalid sample")
var ErrNilSink = errors.New("nil sample sink")
var ErrEmptyRunID = errors.New("empty run ID")
var ErrRunNotFound = errors.New("run not found")
