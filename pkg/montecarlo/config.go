package montecarlo

import (
	"time"

	"github.com/vertex-lab/sawsim/pkg/lattice"
	"github.com/vertex-lab/sawsim/pkg/models"
	"github.com/vertex-lab/sawsim/pkg/utils/logger"
)

const (
	// seedStride separates the seeds of parallel workers.
	seedStride int64 = 1000003

	defaultFlushEvery = 1000
)

// Config holds the parameters of a simulation.
type Config struct {
	// Trials is the number of accepted walks to collect.
	Trials int

	// Dim is the lattice dimension, Steps the number of positions N of a walk.
	Dim   int
	Steps int

	WalkType models.WalkType

	// Workers is the number of goroutines growing walks. Worker i uses the seed
	// Seed + i*1000003, so a run is reproducible for a fixed number of workers.
	Workers int
	Seed    int64

	// MaxAttempts bounds the total number of attempts; zero means unbounded.
	MaxAttempts int

	// RecordTrajectories keeps a copy of every accepted trajectory in the Result.
	RecordTrajectories bool

	// RunID identifies the run in the Sink. Required when Sink is not nil.
	RunID string

	// Sink receives the accepted samples in batches of FlushEvery, and the
	// RunRecord at the end of a successful run.
	Sink       models.SampleSink
	FlushEvery int

	// Observers are notified of every attempt.
	Observers []models.Observer

	// Logger prints the run header and the final statistics; nil discards them.
	Logger *logger.Aggregate
}

// NewConfig() returns a Config with one worker and a time based seed.
func NewConfig(trials, dim, steps int, walkType models.WalkType) Config {
	return Config{
		Trials:     trials,
		Dim:        dim,
		Steps:      steps,
		WalkType:   walkType,
		Workers:    1,
		Seed:       time.Now().UnixNano(),
		FlushEvery: defaultFlushEvery,
	}
}

// Validate() returns the first configuration error, if any.
func (c Config) Validate() error {

	if c.Trials <= 0 {
		return models.ErrInvalidTrials
	}

	if err := lattice.Validate(c.Dim); err != nil {
		return err
	}

	if c.Steps < 2 {
		return models.ErrInvalidSteps
	}

	if err := c.WalkType.Validate(); err != nil {
		return err
	}

	if c.Workers <= 0 {
		return models.ErrInvalidWorkers
	}

	if c.Sink != nil && c.RunID == "" {
		return models.ErrEmptyRunID
	}

	return nil
}

// workerSeed() returns the seed of the i-th worker.
func (c Config) workerSeed(i int) int64 {
	return c.Seed + int64(i)*seedStride
}

func (c Config) flushEvery() int {
	if c.FlushEvery <= 0 {
		return defaultFlushEvery
	}
	return c.FlushEvery
}

func (c Config) logger() *logger.Aggregate {
	if c.Logger == nil {
		return logger.Discard()
	}
	return c.Logger
}
