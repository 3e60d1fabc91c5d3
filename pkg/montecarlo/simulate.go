/*
Package montecarlo drives the Monte Carlo estimation of the scaling exponent of
lattice walks: it grows walks until the requested number is accepted, streams
the accepted samples into the statistics and the configured sink, and
summarizes the run.
*/
package montecarlo

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/puzpuzpuz/xsync/v3"
	"github.com/vertex-lab/sawsim/pkg/lattice"
	"github.com/vertex-lab/sawsim/pkg/models"
	"github.com/vertex-lab/sawsim/pkg/stats"
	"github.com/vertex-lab/sawsim/pkg/walks"
	"golang.org/x/sync/errgroup"
)

// Result is the outcome of a simulation.
type Result struct {
	// Attempts is the number of walks grown, Accepted how many of them were accepted.
	Attempts     int
	Accepted     int
	AcceptedRate float64

	Summary stats.Summary

	// Complete is false when MaxAttempts was exhausted before Trials walks were accepted.
	Complete bool

	StartedAt time.Time
	Duration  time.Duration

	// Trajectories holds the accepted trajectories if Config.RecordTrajectories is set.
	Trajectories [][]lattice.Site
}

/*
Simulate() grows walks of cfg.WalkType until cfg.Trials of them are accepted,
and returns the statistics of the accepted walks.

Acceptance depends on the walk type: a random walk is always accepted, a plain
self-avoiding walk only if it reaches cfg.Steps positions, a biased walk only
if it never got trapped. Each worker reuses one Walker, resetting it after
every attempt.

It returns:
  - the configuration errors of Config.Validate(), before doing any work
  - the context error (wrapped) if ctx is cancelled; ctx is checked once per attempt
  - ErrNoAcceptedWalks if MaxAttempts is exhausted without accepted walks
  - ErrDegenerateStatistics if the exponent is undefined for the accepted samples
  - the sink errors (wrapped)

If MaxAttempts is exhausted after some walks were accepted, the Result is
returned with Complete = false.
*/
func Simulate(ctx context.Context, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log := cfg.logger()
	sim := newSimulation(cfg)

	log.Info("Simulating %d %s walks of %d positions in %d dimensions (workers: %d, seed: %d)",
		cfg.Trials, cfg.WalkType, cfg.Steps, cfg.Dim, cfg.Workers, cfg.Seed)
	log.Info("Start time: %s", sim.startedAt.Format(time.DateTime))

	workers := make([]*worker, cfg.Workers)
	for i := range workers {
		w, err := newWorker(i, cfg)
		if err != nil {
			return nil, err
		}
		workers[i] = w
	}

	group, groupCtx := errgroup.WithContext(ctx)
	for _, w := range workers {
		group.Go(func() error {
			return sim.run(groupCtx, w)
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	res, err := sim.result()
	if err != nil {
		return nil, err
	}

	if !res.Complete {
		log.Warn("MaxAttempts exhausted: accepted %d of %d walks in %d attempts",
			res.Accepted, cfg.Trials, res.Attempts)
	}

	log.Info("Accepted %d walks in %d attempts (rate: %.6f)", res.Accepted, res.Attempts, res.AcceptedRate)
	log.Info("%s", res.Summary)
	log.Info("Runtime: %v", res.Duration)

	if cfg.Sink != nil {
		if err := cfg.Sink.SaveRun(ctx, NewRunRecord(cfg, res)); err != nil {
			return nil, fmt.Errorf("failed to save run %s: %w", cfg.RunID, err)
		}
	}

	return res, nil
}

/*
SimulateWalks() runs a single worker simulation of `trials` accepted walks and
returns the exponent p and the accepted walks rate.
*/
func SimulateWalks(ctx context.Context, trials, dim, steps int,
	walkType models.WalkType) (p float64, acceptedRate float64, err error) {

	res, err := Simulate(ctx, NewConfig(trials, dim, steps, walkType))
	if err != nil {
		return 0, 0, err
	}
	return res.Summary.P, res.AcceptedRate, nil
}

// NewRunRecord() returns the persisted description of the run.
func NewRunRecord(cfg Config, res *Result) models.RunRecord {
	return models.RunRecord{
		RunID:        cfg.RunID,
		Dim:          cfg.Dim,
		Steps:        cfg.Steps,
		WalkType:     cfg.WalkType.String(),
		Trials:       cfg.Trials,
		Seed:         cfg.Seed,
		Attempts:     res.Attempts,
		Accepted:     res.Accepted,
		AcceptedRate: res.AcceptedRate,
		Mean:         res.Summary.Mean,
		StdErr:       res.Summary.StdErr,
		P:            res.Summary.P,
		PLow:         res.Summary.PLow,
		PHigh:        res.Summary.PHigh,
		Complete:     res.Complete,
		StartedAt:    res.StartedAt.Unix(),
		Duration:     res.Duration,
	}
}

// simulation holds the state shared by the workers of a run.
type simulation struct {
	cfg       Config
	trials    int64
	startedAt time.Time

	// nextTrial hands out the trial indices, and bounds them by MaxAttempts.
	nextTrial atomic.Int64

	// reserved counts the accepted walks claimed by the workers. A worker whose
	// accepted walk would exceed Trials discards it and stops.
	reserved atomic.Int64

	attempts *xsync.Counter
	estimate sync.Once

	// mu guards the sink and the reduction of the workers' results.
	mu           sync.Mutex
	acc          stats.Accumulator
	trajectories [][]lattice.Site
}

func newSimulation(cfg Config) *simulation {
	return &simulation{
		cfg:       cfg,
		trials:    int64(cfg.Trials),
		startedAt: time.Now(),
		attempts:  xsync.NewCounter(),
	}
}

// worker grows walks with its own Walker and rng, accumulating locally.
type worker struct {
	id           int
	walker       models.Walker
	acc          stats.Accumulator
	batch        []models.Sample
	trajectories [][]lattice.Site
}

func newWorker(id int, cfg Config) (*worker, error) {
	rng := rand.New(rand.NewSource(cfg.workerSeed(id)))
	walker, err := walks.NewWalker(cfg.WalkType, cfg.Dim, cfg.Steps, rng)
	if err != nil {
		return nil, err
	}

	return &worker{
		id:     id,
		walker: walker,
		batch:  make([]models.Sample, 0, min(cfg.flushEvery(), cfg.Trials)),
	}, nil
}

// run() is the loop of a single worker.
func (s *simulation) run(ctx context.Context, w *worker) error {
	for s.reserved.Load() < s.trials {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("simulation interrupted after %d attempts: %w", s.attempts.Value(), err)
		}

		trial := s.nextTrial.Add(1) - 1
		if s.cfg.MaxAttempts > 0 && trial >= int64(s.cfg.MaxAttempts) {
			break
		}

		w.walker.Walk()
		accepted := w.walker.Accepted()
		if accepted && s.reserved.Add(1) > s.trials {
			// another worker collected the last walk
			break
		}
		if !accepted && s.reserved.Load() >= s.trials {
			break
		}

		s.attempts.Inc()
		s.notify(w)

		if accepted {
			if err := s.collect(ctx, w, walks.Observe(w.walker, int(trial))); err != nil {
				return err
			}
		}

		s.estimate.Do(s.logEstimate)
		w.walker.Reset()
	}

	return s.reduce(ctx, w)
}

// notify() passes the outcome of the current attempt of w to the observers.
func (s *simulation) notify(w *worker) {
	if len(s.cfg.Observers) == 0 {
		return
	}

	attempt := models.Attempt{
		WalkType:        s.cfg.WalkType,
		Worker:          w.id,
		Length:          len(w.walker.Trajectory()),
		Accepted:        w.walker.Accepted(),
		SquaredDistance: float64(w.walker.Position().SquaredNorm()),
		Weight:          w.walker.Weight(),
	}

	for _, observer := range s.cfg.Observers {
		observer.ObserveAttempt(attempt)
	}
}

// collect() adds the accepted sample to the worker's statistics and batch,
// flushing the batch when full.
func (s *simulation) collect(ctx context.Context, w *worker, sample models.Sample) error {
	w.acc.Add(sample.SquaredDistance, sample.Weight)

	if s.cfg.RecordTrajectories {
		w.trajectories = append(w.trajectories, walks.CloneTrajectory(w.walker.Trajectory()))
	}

	if s.cfg.Sink == nil {
		return nil
	}

	w.batch = append(w.batch, sample)
	if len(w.batch) < s.cfg.flushEvery() {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flush(ctx, w)
}

// flush() sends the worker's batch to the sink. The caller must hold s.mu.
func (s *simulation) flush(ctx context.Context, w *worker) error {
	if s.cfg.Sink == nil || len(w.batch) == 0 {
		return nil
	}

	if err := s.cfg.Sink.AddSamples(ctx, s.cfg.RunID, w.batch); err != nil {
		return fmt.Errorf("failed to add %d samples to run %s: %w", len(w.batch), s.cfg.RunID, err)
	}

	w.batch = w.batch[:0]
	return nil
}

// reduce() merges the worker's results into the simulation.
func (s *simulation) reduce(ctx context.Context, w *worker) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.flush(ctx, w); err != nil {
		return err
	}

	s.acc.Merge(&w.acc)
	s.trajectories = append(s.trajectories, w.trajectories...)
	return nil
}

// logEstimate() logs the runtime estimated from the first attempt.
func (s *simulation) logEstimate() {
	perAttempt := time.Since(s.startedAt)
	estimate := perAttempt * time.Duration(s.trials) / time.Duration(s.cfg.Workers)
	s.cfg.logger().Info("Estimated runtime: %v (at least, rejections excluded)", estimate)
}

// result() summarizes the simulation once all the workers returned.
func (s *simulation) result() (*Result, error) {
	attempts := int(s.attempts.Value())
	accepted := s.acc.Count()

	if accepted == 0 {
		return nil, fmt.Errorf("%w in %d attempts", models.ErrNoAcceptedWalks, attempts)
	}

	summary, err := stats.Summarize(&s.acc, s.cfg.Steps, s.cfg.WalkType.Weighted())
	if err != nil {
		return nil, err
	}

	return &Result{
		Attempts:     attempts,
		Accepted:     accepted,
		AcceptedRate: float64(accepted) / float64(attempts),
		Summary:      summary,
		Complete:     accepted == s.cfg.Trials,
		StartedAt:    s.startedAt,
		Duration:     time.Since(s.startedAt),
		Trajectories: s.trajectories,
	}, nil
}
