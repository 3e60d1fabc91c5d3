package walks

import (
	"math/rand"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/vertex-lab/sawsim/pkg/lattice"
	"github.com/vertex-lab/sawsim/pkg/models"
)

/*
NewWalker() returns the Walker for walkType on the dim-dimensional lattice,
growing walks of `steps` positions (steps-1 moves) and drawing from rng.

This is the only place where the walk type is dispatched; callers drive the
returned Walker through the models.Walker interface.
*/
func NewWalker(walkType models.WalkType, dim, steps int, rng *rand.Rand) (models.Walker, error) {

	if err := checkInputs(dim, steps, rng); err != nil {
		return nil, err
	}

	switch walkType {
	case models.Random:
		return NewRandomWalker(dim, steps, rng)

	case models.SelfAvoiding:
		return NewSelfAvoidingWalker(dim, steps, rng)

	case models.Biased:
		return NewBiasedWalker(dim, steps, rng)

	default:
		return nil, models.ErrInvalidWalkType
	}
}

// base holds the state shared by all walkers: the lattice, the current position
// and the trajectory.
type base struct {
	dim   int
	steps int
	moves []lattice.Site
	rng   *rand.Rand

	position   lattice.Site
	trajectory []lattice.Site
}

func newBase(dim, steps int, rng *rand.Rand) base {
	b := base{
		dim:        dim,
		steps:      steps,
		moves:      lattice.Moves(dim),
		rng:        rng,
		trajectory: make([]lattice.Site, 0, steps),
	}
	b.reset()
	return b
}

// reset() puts the walker back at the origin. The backing array of the
// trajectory is reused, so callers that want to keep a trajectory must copy it.
func (b *base) reset() {
	b.position = lattice.Origin(b.dim)
	b.trajectory = append(b.trajectory[:0], b.position)
}

// advance() moves the walker to next and appends it to the trajectory.
func (b *base) advance(next lattice.Site) {
	b.position = next
	b.trajectory = append(b.trajectory, next)
}

func (b *base) done() bool {
	return len(b.trajectory) >= b.steps
}

// Trajectory() returns the visited sites in order of visitation. The slice is
// only valid until the next call to Walk() or Reset().
func (b *base) Trajectory() []lattice.Site {
	return b.trajectory
}

// Position() returns the current site of the walker.
func (b *base) Position() lattice.Site {
	return b.position
}

// Dim() returns the lattice dimension.
func (b *base) Dim() int {
	return b.dim
}

// Steps() returns the target number of positions of a walk.
func (b *base) Steps() int {
	return b.steps
}

// occupancy tracks the sites visited by a self-avoiding walker.
type occupancy struct {
	sites mapset.Set[string]
}

func newOccupancy(capacity int) occupancy {
	return occupancy{sites: mapset.NewThreadUnsafeSetWithSize[string](capacity)}
}

func (o occupancy) visit(site lattice.Site) {
	o.sites.Add(site.Key())
}

func (o occupancy) visited(site lattice.Site) bool {
	return o.sites.Contains(site.Key())
}

func (o occupancy) clear() {
	o.sites.Clear()
}

// checkInputs function is used to check whether the inputs are valid.
// If not, an appropriate error is returned
func checkInputs(dim, steps int, rng *rand.Rand) error {

	if err := lattice.Validate(dim); err != nil {
		return err
	}

	if steps < 1 {
		return models.ErrInvalidSteps
	}

	if rng == nil {
		return models.ErrNilRNG
	}

	return nil
}
