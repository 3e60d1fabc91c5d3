package stats

import (
	"errors"
	"fmt"
	"math"

	"github.com/vertex-lab/sawsim/pkg/models"
)

// Summary is the outcome of the statistics of a run.
type Summary struct {
	Count    int
	Steps    int
	Weighted bool

	// Mean is the estimator of <R_N^2>, StdErr its standard error.
	Mean   float64
	StdDev float64
	StdErr float64

	// P is the exponent ln(Mean)/ln(N); PLow and PHigh are the distances of the
	// lower and upper error bounds from P.
	P     float64
	PLow  float64
	PHigh float64
}

// String() returns a one-line description of the summary.
func (s Summary) String() string {
	return fmt.Sprintf("p = %.4f (-%.4f, +%.4f), <R^2> = %.4f ± %.4f over %d walks",
		s.P, s.PLow, s.PHigh, s.Mean, s.StdErr, s.Count)
}

/*
Summarize() computes the Summary of the samples in acc for walks of `steps`
positions. If weighted is true the weighted estimator of the mean is used.

It returns:
  - ErrNoSamples if acc is empty
  - ErrInvalidSteps if steps <= 1
  - ErrDegenerate if the mean or the lower bound mean - stderr is not positive
*/
func Summarize(acc *Accumulator, steps int, weighted bool) (Summary, error) {
	if acc == nil || acc.Count() == 0 {
		return Summary{}, ErrNoSamples
	}

	mean, err := acc.Mean(weighted)
	if err != nil {
		return Summary{}, err
	}

	std, err := acc.StdDev()
	if err != nil {
		return Summary{}, err
	}
	stdErr := std / math.Sqrt(float64(acc.Count()))

	p, err := Exponent(mean, steps)
	if err != nil {
		return Summary{}, err
	}

	pLow, pHigh, err := ExponentBounds(mean, stdErr, steps)
	if err != nil {
		return Summary{}, err
	}

	return Summary{
		Count:    acc.Count(),
		Steps:    steps,
		Weighted: weighted,
		Mean:     mean,
		StdDev:   std,
		StdErr:   stdErr,
		P:        p,
		PLow:     pLow,
		PHigh:    pHigh,
	}, nil
}

// SummarizeSamples() accumulates the samples and summarizes them.
func SummarizeSamples(samples []models.Sample, steps int, weighted bool) (Summary, error) {
	var acc Accumulator
	for _, s := range samples {
		weight := 1.0
		if weighted {
			weight = s.Weight
		}
		acc.Add(s.SquaredDistance, weight)
	}
	return Summarize(&acc, steps, weighted)
}

// Exponent() returns p = ln(mean)/ln(steps).
func Exponent(mean float64, steps int) (float64, error) {
	if steps <= 1 {
		return 0, ErrInvalidSteps
	}

	if mean <= 0 || math.IsNaN(mean) || math.IsInf(mean, 0) {
		return 0, fmt.Errorf("%w: mean = %v", ErrDegenerate, mean)
	}

	return math.Log(mean) / math.Log(float64(steps)), nil
}

/*
ExponentBounds() returns the asymmetric error bounds of p = ln(mean)/ln(N):

	pLow  = p - ln(mean - stderr)/ln(N)
	pHigh = ln(mean + stderr)/ln(N) - p

They differ because the logarithm is not linear.
*/
func ExponentBounds(mean, stdErr float64, steps int) (pLow, pHigh float64, err error) {
	p, err := Exponent(mean, steps)
	if err != nil {
		return 0, 0, err
	}

	if stdErr < 0 || math.IsNaN(stdErr) {
		return 0, 0, fmt.Errorf("%w: stderr = %v", ErrDegenerate, stdErr)
	}

	if mean-stdErr <= 0 {
		return 0, 0, fmt.Errorf("%w: mean - stderr = %v", ErrDegenerate, mean-stdErr)
	}

	logN := math.Log(float64(steps))
	pLow = p - math.Log(mean-stdErr)/logN
	pHigh = math.Log(mean+stdErr)/logN - p
	return pLow, pHigh, nil
}

// Mean() returns the arithmetic mean of data.
func Mean(data []float64) (float64, error) {
	if len(data) == 0 {
		return 0, ErrNoSamples
	}

	sum := 0.0
	for _, x := range data {
		sum += x
	}
	return sum / float64(len(data)), nil
}

// WeightedMean() returns sum(w_i * s_i) / sum(w_i).
func WeightedMean(data, weights []float64) (float64, error) {
	if len(data) == 0 {
		return 0, ErrNoSamples
	}

	if len(data) != len(weights) {
		return 0, ErrLengthMismatch
	}

	sum, sumWeights := 0.0, 0.0
	for i := range data {
		sum += weights[i] * data[i]
		sumWeights += weights[i]
	}

	if sumWeights <= 0 {
		return 0, ErrDegenerate
	}
	return sum / sumWeights, nil
}

// PopulationStdDev() returns the population (1/n) standard deviation of data.
func PopulationStdDev(data []float64) (float64, error) {
	mean, err := Mean(data)
	if err != nil {
		return 0, err
	}

	sum := 0.0
	for _, x := range data {
		sum += (x - mean) * (x - mean)
	}
	return math.Sqrt(sum / float64(len(data))), nil
}

// StandardError() returns PopulationStdDev(data) / sqrt(n).
func StandardError(data []float64) (float64, error) {
	std, err := PopulationStdDev(data)
	if err != nil {
		return 0, err
	}
	return std / math.Sqrt(float64(len(data))), nil
}

//---------------------------------ERROR-CODES---------------------------------

var ErrNoSamples = models.ErrNoAcceptedWalks
var ErrDegenerate = models.ErrDegenerateStatistics
var ErrInvalidSteps = models.ErrInvalidSteps
var ErrLengthMismatch = errors.New("data and weights have different lengths")
