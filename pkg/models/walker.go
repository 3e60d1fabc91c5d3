package models

import (
	"errors"
	"fmt"

	"github.com/vertex-lab/sawsim/pkg/lattice"
)

// WalkType selects which Walker generates the trials of a simulation.
type WalkType int

const (
	// Random is the unbiased lattice random walk; every walk is accepted.
	Random WalkType = iota

	// SelfAvoiding is the rejection based self-avoiding walk; a walk is
	// accepted only if it reaches the full length without revisiting a site.
	SelfAvoiding

	// Biased is the self-avoiding walk grown by Rosenbluth (biased) sampling;
	// accepted walks carry an importance weight.
	Biased
)

// String() returns the short name used by the CLI ("rand", "saw", "biased").
func (t WalkType) String() string {
	switch t {
	case Random:
		return "rand"
	case SelfAvoiding:
		return "saw"
	case Biased:
		return "biased"
	default:
		return fmt.Sprintf("WalkType(%d)", int(t))
	}
}

// Weighted() returns whether accepted walks of this type carry a non-trivial
// importance weight, which changes the estimator of the mean.
func (t WalkType) Weighted() bool {
	return t == Biased
}

// Validate() returns ErrInvalidWalkType if t is not one of the known walk types.
func (t WalkType) Validate() error {
	switch t {
	case Random, SelfAvoiding, Biased:
		return nil
	default:
		return ErrInvalidWalkType
	}
}

// ParseWalkType() parses the short name of a walk type.
func ParseWalkType(name string) (WalkType, error) {
	switch name {
	case "rand", "random":
		return Random, nil
	case "saw", "self-avoiding":
		return SelfAvoiding, nil
	case "biased":
		return Biased, nil
	default:
		return Random, fmt.Errorf("%w: %q", ErrInvalidWalkType, name)
	}
}

/*
Walker grows one lattice walk of fixed dimension and length at a time.

A Walker is constructed once per simulation and reused across trials: Walk()
mutates it in place, and Reset() restores the exact state it had right after
construction (position and trajectory at the origin, no weights, not intersected).
*/
type Walker interface {
	// Walk() grows the trajectory from the origin for up to Steps()-1 steps.
	Walk()

	// Reset() restores the state right after construction.
	Reset()

	// Trajectory() returns the visited sites in order; the first is the origin.
	Trajectory() []lattice.Site

	// Position() returns the current site of the walker.
	Position() lattice.Site

	// Accepted() reports whether the last walk satisfies the acceptance rule
	// of the walk type.
	Accepted() bool

	// Weight() returns the importance weight of the last walk (1 if unweighted).
	Weight() float64

	// Type() returns the walk type of the walker.
	Type() WalkType

	// Dim() returns the lattice dimension.
	Dim() int

	// Steps() returns the target number of positions N of a walk.
	Steps() int
}

//---------------------------------ERROR-CODES---------------------------------

var ErrInvalidDimension = lattice.ErrInvalidDimension
var ErrInvalidSteps = errors.New("the number of steps is too small for the requested computation")
var ErrInvalidTrials = errors.New("the number of trials should be greater than zero")
var ErrInvalidWalkType = errors.New("unknown walk type")
var ErrInvalidWorkers = errors.New("the number of workers should be greater than zero")
var ErrInvalidAcceptedRate = errors.New("the accepted walks rate should be in (0, 1]")
var ErrNilRNG = errors.New("nil random number generator")
