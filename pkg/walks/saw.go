package walks

import (
	"math/rand"

	"github.com/vertex-lab/sawsim/pkg/lattice"
	"github.com/vertex-lab/sawsim/pkg/models"
)

/*
performs a walk step position --> next and returns `next`, the index of the
move taken in `moves` and `shouldStop`.

The move is drawn uniformly among all moves except the reverse of lastMove
(the index of the previous move, or -1 on the first step). The walker never
backtracks, but it can still run into an older part of its trajectory.

`shouldStop` is true if and only if `next` was already visited, in which case
next is nil and the index is -1.
*/
func SAWStep(moves []lattice.Site, position lattice.Site, lastMove int,
	visited func(lattice.Site) bool, rng *rand.Rand) (lattice.Site, int, bool) {

	dim := len(moves) / 2
	var index int

	if lastMove < 0 {
		index = rng.Intn(len(moves))
	} else {
		// draw among the 2d-1 moves that don't reverse lastMove
		reverse := lattice.Reverse(lastMove, dim)
		index = rng.Intn(len(moves) - 1)
		if index >= reverse {
			index++
		}
	}

	next := position.Add(moves[index])
	if visited(next) {
		return nil, -1, true
	}

	return next, index, false
}

/*
SelfAvoidingWalker generates self-avoiding walks by rejection.

Each step excludes the immediate backtrack and then checks the new site against
the whole trajectory; the first revisit terminates the walk at its current
length. Callers classify the walk with Accepted(), which is true only when the
trajectory reached the full length.
*/
type SelfAvoidingWalker struct {
	base
	occupied    occupancy
	lastMove    int
	intersected bool
}

// NewSelfAvoidingWalker() returns a SelfAvoidingWalker at the origin.
func NewSelfAvoidingWalker(dim, steps int, rng *rand.Rand) (*SelfAvoidingWalker, error) {
	if err := checkInputs(dim, steps, rng); err != nil {
		return nil, err
	}

	w := &SelfAvoidingWalker{
		base:     newBase(dim, steps, rng),
		occupied: newOccupancy(steps),
	}
	w.Reset()
	return w, nil
}

// Walk() grows the walk until it has `steps` positions or it intersects itself.
func (w *SelfAvoidingWalker) Walk() {
	for !w.done() && !w.intersected {

		next, move, shouldStop := SAWStep(w.moves, w.position, w.lastMove, w.occupied.visited, w.rng)
		if shouldStop {
			w.intersected = true
			break
		}

		w.occupied.visit(next)
		w.advance(next)
		w.lastMove = move
	}
}

// Reset() puts the walker back at the origin with an empty occupancy.
func (w *SelfAvoidingWalker) Reset() {
	w.reset()
	w.occupied.clear()
	w.occupied.visit(w.position)
	w.lastMove = -1
	w.intersected = false
}

// Intersected() returns whether the last walk was terminated by a revisit.
func (w *SelfAvoidingWalker) Intersected() bool {
	return w.intersected
}

// Accepted() returns whether the trajectory reached the full length.
func (w *SelfAvoidingWalker) Accepted() bool {
	return len(w.trajectory) == w.steps
}

// Weight() returns 1.
func (w *SelfAvoidingWalker) Weight() float64 {
	return 1
}

// Type() returns models.SelfAvoiding.
func (w *SelfAvoidingWalker) Type() models.WalkType {
	return models.SelfAvoiding
}
