package stochastictest

import (
	"context"
	"math"
	"testing"

	"github.com/vertex-lab/sawsim/pkg/models"
	"github.com/vertex-lab/sawsim/pkg/montecarlo"
)

// simulate runs a parallel simulation with a fixed seed, failing the test on errors.
func simulate(t *testing.T, trials, dim, steps int, walkType models.WalkType) *montecarlo.Result {
	t.Helper()

	cfg := montecarlo.NewConfig(trials, dim, steps, walkType)
	cfg.Seed = 69
	cfg.Workers = 4

	res, err := montecarlo.Simulate(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Simulate(): expected nil, got %v", err)
	}
	return res
}

// zScore returns the distance between the two estimates in units of their
// combined standard error.
func zScore(mean1, stdErr1, mean2, stdErr2 float64) float64 {
	return math.Abs(mean1-mean2) / math.Sqrt(stdErr1*stdErr1+stdErr2*stdErr2)
}
