package walks

import (
	"math/rand"

	"github.com/vertex-lab/sawsim/pkg/models"
)

// RandomWalker generates unbiased lattice random walks: every step is drawn
// uniformly from the 2d unit moves, and sites may be revisited.
type RandomWalker struct {
	base
}

// NewRandomWalker() returns a RandomWalker at the origin.
func NewRandomWalker(dim, steps int, rng *rand.Rand) (*RandomWalker, error) {
	if err := checkInputs(dim, steps, rng); err != nil {
		return nil, err
	}
	return &RandomWalker{base: newBase(dim, steps, rng)}, nil
}

// Walk() takes steps-1 uniformly random steps.
func (w *RandomWalker) Walk() {
	for !w.done() {
		move := w.moves[w.rng.Intn(len(w.moves))]
		w.advance(w.position.Add(move))
	}
}

// Reset() puts the walker back at the origin.
func (w *RandomWalker) Reset() {
	w.reset()
}

// Accepted() returns true once the walk is complete; random walks cannot fail.
func (w *RandomWalker) Accepted() bool {
	return w.done()
}

// Weight() returns 1.
func (w *RandomWalker) Weight() float64 {
	return 1
}

// Type() returns models.Random.
func (w *RandomWalker) Type() models.WalkType {
	return models.Random
}
