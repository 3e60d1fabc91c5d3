package stats

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vertex-lab/sawsim/pkg/models"
)

const tolerance = 1e-9

func TestUnweightedSummary(t *testing.T) {
	var acc Accumulator
	for _, s := range []float64{1, 4, 9} {
		acc.Add(s, 1)
	}

	summary, err := Summarize(&acc, 16, false)
	require.NoError(t, err)

	mean := 14.0 / 3.0
	std := math.Sqrt(((1-mean)*(1-mean) + (4-mean)*(4-mean) + (9-mean)*(9-mean)) / 3)
	stdErr := std / math.Sqrt(3)
	p := math.Log(mean) / math.Log(16)

	assert.Equal(t, 3, summary.Count)
	assert.InDelta(t, mean, summary.Mean, tolerance)
	assert.InDelta(t, std, summary.StdDev, tolerance)
	assert.InDelta(t, stdErr, summary.StdErr, tolerance)
	assert.InDelta(t, p, summary.P, tolerance)
	assert.InDelta(t, 0.5556, summary.P, 1e-4)
	assert.InDelta(t, p-math.Log(mean-stdErr)/math.Log(16), summary.PLow, tolerance)
	assert.InDelta(t, math.Log(mean+stdErr)/math.Log(16)-p, summary.PHigh, tolerance)

	// the logarithm is concave, so the lower error is larger
	assert.Greater(t, summary.PLow, summary.PHigh)
}

func TestWeightedSummary(t *testing.T) {
	s1, w1 := 9.0, 0.5
	s2, w2 := 25.0, 1.5

	var acc Accumulator
	acc.Add(s1, w1)
	acc.Add(s2, w2)

	mean, err := acc.Mean(true)
	require.NoError(t, err)
	assert.InDelta(t, (w1*s1+w2*s2)/(w1+w2), mean, tolerance)

	direct, err := WeightedMean([]float64{s1, s2}, []float64{w1, w2})
	require.NoError(t, err)
	assert.InDelta(t, direct, mean, tolerance)

	// the standard error is the one of the products w*s
	stdErr, err := acc.StdErr()
	require.NoError(t, err)
	expected, err := StandardError([]float64{w1 * s1, w2 * s2})
	require.NoError(t, err)
	assert.InDelta(t, expected, stdErr, tolerance)

	summary, err := Summarize(&acc, 10, true)
	require.NoError(t, err)
	assert.True(t, summary.Weighted)
	assert.InDelta(t, math.Log(mean)/math.Log(10), summary.P, tolerance)
}

func TestSummarizeErrors(t *testing.T) {
	testCases := []struct {
		name     string
		samples  []float64
		weights  []float64
		steps    int
		expected error
	}{
		{
			name:     "no samples",
			samples:  nil,
			steps:    10,
			expected: models.ErrNoAcceptedWalks,
		},
		{
			name:     "steps = 1",
			samples:  []float64{1, 4},
			steps:    1,
			expected: models.ErrInvalidSteps,
		},
		{
			name:     "zero mean",
			samples:  []float64{0, 0, 0},
			steps:    10,
			expected: models.ErrDegenerateStatistics,
		},
		{
			name:     "weighted, mean - stderr <= 0",
			samples:  []float64{0, 10},
			weights:  []float64{100, 100},
			steps:    10,
			expected: models.ErrDegenerateStatistics,
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			var acc Accumulator
			for i, s := range test.samples {
				w := 1.0
				if test.weights != nil {
					w = test.weights[i]
				}
				acc.Add(s, w)
			}

			_, err := Summarize(&acc, test.steps, test.weights != nil)
			assert.ErrorIs(t, err, test.expected)
		})
	}

	_, err := Summarize(nil, 10, false)
	assert.ErrorIs(t, err, ErrNoSamples)
}

func TestMerge(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	var serial Accumulator
	parts := make([]Accumulator, 4)

	for i := 0; i < 1000; i++ {
		s := float64(rng.Intn(100))
		w := rng.Float64() + 0.1
		serial.Add(s, w)
		parts[i%len(parts)].Add(s, w)
	}

	var merged Accumulator
	for i := range parts {
		merged.Merge(&parts[i])
	}
	merged.Merge(nil)
	merged.Merge(&Accumulator{})

	assert.Equal(t, serial.Count(), merged.Count())
	assert.InDelta(t, serial.SumWeights(), merged.SumWeights(), 1e-6)

	for _, weighted := range []bool{false, true} {
		m1, err := serial.Mean(weighted)
		require.NoError(t, err)
		m2, err := merged.Mean(weighted)
		require.NoError(t, err)
		assert.InDelta(t, m1, m2, 1e-9)
	}

	s1, _ := serial.StdDev()
	s2, _ := merged.StdDev()
	assert.InDelta(t, s1, s2, 1e-9)
}

func TestSliceHelpers(t *testing.T) {
	data := []float64{1, 4, 9}

	mean, err := Mean(data)
	require.NoError(t, err)
	assert.InDelta(t, 14.0/3.0, mean, tolerance)

	_, err = Mean(nil)
	assert.ErrorIs(t, err, ErrNoSamples)

	_, err = WeightedMean(data, []float64{1})
	assert.ErrorIs(t, err, ErrLengthMismatch)

	_, err = WeightedMean(data, []float64{0, 0, 0})
	assert.ErrorIs(t, err, ErrDegenerate)

	std, err := PopulationStdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	require.NoError(t, err)
	assert.InDelta(t, 2.0, std, tolerance)

	stdErr, err := StandardError([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	require.NoError(t, err)
	assert.InDelta(t, 2.0/math.Sqrt(8), stdErr, tolerance)
}

func TestSummarizeSamples(t *testing.T) {
	samples := []models.Sample{
		{Length: 5, SquaredDistance: 4, Weight: 0.5},
		{Length: 5, SquaredDistance: 16, Weight: 2},
	}

	unweighted, err := SummarizeSamples(samples, 5, false)
	require.NoError(t, err)
	assert.InDelta(t, 10.0, unweighted.Mean, tolerance)

	weighted, err := SummarizeSamples(samples, 5, true)
	require.NoError(t, err)
	assert.InDelta(t, (0.5*4+2*16)/2.5, weighted.Mean, tolerance)
}
