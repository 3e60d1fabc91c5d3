package stats

import (
	"math"
)

/*
Accumulator collects the observables of accepted walks in a single pass.

It keeps the running mean and the sum of squared deviations of the values
x_i = w_i * s_i (Welford's algorithm), together with sum(w_i) and sum(x_i).
The zero value is an empty accumulator ready to use.
*/
type Accumulator struct {
	n           int
	mean        float64
	m2          float64
	sumWeights  float64
	sumProducts float64
}

// Add() adds a sample with squared distance s and importance weight w.
// Unweighted samples use w = 1.
func (a *Accumulator) Add(s, w float64) {
	x := w * s

	a.n++
	delta := x - a.mean
	a.mean += delta / float64(a.n)
	a.m2 += delta * (x - a.mean)

	a.sumWeights += w
	a.sumProducts += x
}

/*
Merge() adds all the samples of other to a, as if they were added one by one.

It uses the pairwise update of Chan, Golub and LeVeque for the sum of squared
deviations, so merging per-worker accumulators gives the same result (up to
rounding) as a single serial pass.
*/
func (a *Accumulator) Merge(other *Accumulator) {
	if other == nil || other.n == 0 {
		return
	}

	if a.n == 0 {
		*a = *other
		return
	}

	n := a.n + other.n
	delta := other.mean - a.mean

	a.m2 += other.m2 + delta*delta*float64(a.n)*float64(other.n)/float64(n)
	a.mean += delta * float64(other.n) / float64(n)
	a.n = n

	a.sumWeights += other.sumWeights
	a.sumProducts += other.sumProducts
}

// Count() returns the number of samples.
func (a *Accumulator) Count() int {
	return a.n
}

// SumWeights() returns the sum of the importance weights.
func (a *Accumulator) SumWeights() float64 {
	return a.sumWeights
}

// Mean() returns the estimator of <R_N^2>: the arithmetic mean if weighted is
// false, sum(w*s)/sum(w) otherwise.
func (a *Accumulator) Mean(weighted bool) (float64, error) {
	if a.n == 0 {
		return 0, ErrNoSamples
	}

	if !weighted {
		return a.mean, nil
	}

	if a.sumWeights <= 0 {
		return 0, ErrDegenerate
	}
	return a.sumProducts / a.sumWeights, nil
}

// StdDev() returns the population standard deviation of the accumulated
// values w*s.
func (a *Accumulator) StdDev() (float64, error) {
	if a.n == 0 {
		return 0, ErrNoSamples
	}

	// rounding can make m2 slightly negative for constant samples
	return math.Sqrt(math.Max(a.m2, 0) / float64(a.n)), nil
}

// StdErr() returns StdDev() / sqrt(n).
func (a *Accumulator) StdErr() (float64, error) {
	std, err := a.StdDev()
	if err != nil {
		return 0, err
	}
	return std / math.Sqrt(float64(a.n)), nil
}
