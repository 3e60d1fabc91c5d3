package walks

import (
	"math/rand"

	"github.com/vertex-lab/sawsim/pkg/lattice"
	"github.com/vertex-lab/sawsim/pkg/models"
)

/*
BiasedWalker generates self-avoiding walks by biased (Rosenbluth) sampling.

At each step the walker looks at its 2d neighbours, keeps the k that are still
vacant and moves to one of them uniformly at random, recording the step weight
k/(2d-1). Because constrained configurations are favoured over a naive
self-avoiding walk, statistics over accepted walks must be reweighted by the
product of the step weights, returned by Weight().

If no neighbour is vacant the walker is trapped: Intersected() becomes true and
the walk ends with fewer than `steps` positions. This is a terminal state, not
an error.

# REFERENCES

[1] M. N. Rosenbluth, A. W. Rosenbluth; "Monte Carlo Calculation of the Average
Extension of Molecular Chains", J. Chem. Phys. 23, 356 (1955)
*/
type BiasedWalker struct {
	base
	occupied    occupancy
	intersected bool
	stepWeights []float64

	// reused buffer of vacant neighbours
	vacant []lattice.Site
}

// NewBiasedWalker() returns a BiasedWalker at the origin.
func NewBiasedWalker(dim, steps int, rng *rand.Rand) (*BiasedWalker, error) {
	if err := checkInputs(dim, steps, rng); err != nil {
		return nil, err
	}

	w := &BiasedWalker{
		base:        newBase(dim, steps, rng),
		occupied:    newOccupancy(steps),
		stepWeights: make([]float64, 0, steps),
		vacant:      make([]lattice.Site, 0, 2*dim),
	}
	w.Reset()
	return w, nil
}

// Walk() takes steps until the walk has `steps` positions or the walker is trapped.
func (w *BiasedWalker) Walk() {
	for !w.done() {
		if !w.TakeStep() {
			break
		}
	}
}

/*
TakeStep() moves the walker to a vacant neighbour chosen uniformly at random
and returns true. If no neighbour is vacant, it sets Intersected() and returns
false, leaving the trajectory unchanged.
*/
func (w *BiasedWalker) TakeStep() bool {
	if w.intersected {
		return false
	}

	w.vacant = w.vacant[:0]
	for _, move := range w.moves {
		next := w.position.Add(move)
		if !w.occupied.visited(next) {
			w.vacant = append(w.vacant, next)
		}
	}

	k := len(w.vacant)
	if k == 0 {
		w.intersected = true
		return false
	}

	next := w.vacant[w.rng.Intn(k)]
	w.stepWeights = append(w.stepWeights, float64(k)/float64(2*w.dim-1))
	w.occupied.visit(next)
	w.advance(next)
	return true
}

// Reset() puts the walker back at the origin with no weights.
func (w *BiasedWalker) Reset() {
	w.reset()
	w.occupied.clear()
	w.occupied.visit(w.position)
	w.intersected = false
	w.stepWeights = w.stepWeights[:0]
}

// Intersected() returns whether the walker got trapped during the last walk.
func (w *BiasedWalker) Intersected() bool {
	return w.intersected
}

// StepWeights() returns the weights k/(2d-1) of the steps taken so far.
func (w *BiasedWalker) StepWeights() []float64 {
	return w.stepWeights
}

// Accepted() returns whether the walk reached the full length without getting trapped.
func (w *BiasedWalker) Accepted() bool {
	return !w.intersected && len(w.trajectory) == w.steps
}

// Weight() returns the product of the step weights.
func (w *BiasedWalker) Weight() float64 {
	weight := 1.0
	for _, a := range w.stepWeights {
		weight *= a
	}
	return weight
}

// Type() returns models.Biased.
func (w *BiasedWalker) Type() models.WalkType {
	return models.Biased
}
