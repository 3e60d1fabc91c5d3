// The package progress tracks a running simulation and reports on it.
package progress

import (
	"context"
	"fmt"
	"time"

	"github.com/puzpuzpuz/xsync/v3"
	"github.com/vertex-lab/sawsim/pkg/models"
	"github.com/vertex-lab/sawsim/pkg/utils/counter"
	"github.com/vertex-lab/sawsim/pkg/utils/logger"
)

// Tracker counts the attempts of a simulation. It implements models.Observer
// and is safe for concurrent use.
type Tracker struct {
	target    int
	startedAt time.Time

	attempts *xsync.Counter
	accepted *xsync.Counter

	// running sum of the squared distances of the accepted walks
	sumSquaredDistance *counter.Float
}

// NewTracker() returns a Tracker of a simulation collecting `target` accepted walks.
func NewTracker(target int) *Tracker {
	return &Tracker{
		target:             target,
		startedAt:          time.Now(),
		attempts:           xsync.NewCounter(),
		accepted:           xsync.NewCounter(),
		sumSquaredDistance: counter.NewFloatCounterWithScale(1000),
	}
}

// ObserveAttempt() records the attempt.
func (t *Tracker) ObserveAttempt(attempt models.Attempt) {
	t.attempts.Inc()
	if attempt.Accepted {
		t.accepted.Inc()
		t.sumSquaredDistance.Add(attempt.SquaredDistance)
	}
}

// Snapshot is the state of a Tracker at a point in time.
type Snapshot struct {
	Target   int
	Attempts int
	Accepted int

	// MeanSquaredDistance is the unweighted mean of the accepted walks.
	MeanSquaredDistance float64
	Elapsed             time.Duration
}

// Snapshot() returns the current state of the tracker.
func (t *Tracker) Snapshot() Snapshot {
	s := Snapshot{
		Target:   t.target,
		Attempts: int(t.attempts.Value()),
		Accepted: int(t.accepted.Value()),
		Elapsed:  time.Since(t.startedAt),
	}

	if s.Accepted > 0 {
		s.MeanSquaredDistance = t.sumSquaredDistance.Load() / float64(s.Accepted)
	}
	return s
}

// AcceptedRate() returns accepted/attempts, or 0 before the first attempt.
func (s Snapshot) AcceptedRate() float64 {
	if s.Attempts == 0 {
		return 0
	}
	return float64(s.Accepted) / float64(s.Attempts)
}

// Fraction() returns the completed fraction of the target, in [0, 1].
func (s Snapshot) Fraction() float64 {
	if s.Target <= 0 {
		return 0
	}
	return min(1, float64(s.Accepted)/float64(s.Target))
}

// Remaining() estimates the time left from the current throughput.
func (s Snapshot) Remaining() time.Duration {
	if s.Accepted == 0 || s.Accepted >= s.Target {
		return 0
	}
	perWalk := s.Elapsed / time.Duration(s.Accepted)
	return perWalk * time.Duration(s.Target-s.Accepted)
}

func (s Snapshot) String() string {
	return fmt.Sprintf("accepted %d/%d (%.1f%%), attempts %d, rate %.4f, <R^2> %.3f, elapsed %s, remaining ~%s",
		s.Accepted, s.Target, 100*s.Fraction(), s.Attempts, s.AcceptedRate(), s.MeanSquaredDistance,
		s.Elapsed.Round(time.Second), s.Remaining().Round(time.Second))
}

// Report() logs a snapshot every `every` until ctx is cancelled.
func (t *Tracker) Report(ctx context.Context, l *logger.Aggregate, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.Info("Progress: %s", t.Snapshot())
		}
	}
}
