package walks

import (
	"math/rand"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/vertex-lab/sawsim/pkg/lattice"
	"github.com/vertex-lab/sawsim/pkg/models"
)

// IsSelfAvoiding() returns whether every site of the trajectory is visited once.
func IsSelfAvoiding(trajectory []lattice.Site) bool {
	sites := mapset.NewThreadUnsafeSetWithSize[string](len(trajectory))
	for _, site := range trajectory {
		if !sites.Add(site.Key()) {
			return false
		}
	}
	return true
}

// CloneTrajectory() returns a deep copy of the trajectory.
func CloneTrajectory(trajectory []lattice.Site) []lattice.Site {
	if trajectory == nil {
		return nil
	}

	clone := make([]lattice.Site, len(trajectory))
	for i, site := range trajectory {
		clone[i] = site.Clone()
	}
	return clone
}

// StepsOf() returns the moves between consecutive sites of the trajectory.
func StepsOf(trajectory []lattice.Site) []lattice.Site {
	if len(trajectory) < 2 {
		return []lattice.Site{}
	}

	steps := make([]lattice.Site, 0, len(trajectory)-1)
	for i := 1; i < len(trajectory); i++ {
		steps = append(steps, trajectory[i].Add(trajectory[i-1].Neg()))
	}
	return steps
}

// Observe() returns the Sample of the walker's current walk.
func Observe(w models.Walker, trial int) models.Sample {
	end := w.Position().Clone()
	return models.Sample{
		Trial:           trial,
		Length:          len(w.Trajectory()),
		SquaredDistance: float64(end.SquaredNorm()),
		Weight:          w.Weight(),
		End:             end,
	}
}

// function that returns a Walker setup based on the walkerType, seeded for reproducibility.
func SetupWalker(walkerType string, seed int64) models.Walker {
	rng := rand.New(rand.NewSource(seed))

	switch walkerType {

	case "nil":
		return nil

	case "rand-2D":
		w, _ := NewRandomWalker(2, 20, rng)
		return w

	case "saw-1D":
		w, _ := NewSelfAvoidingWalker(1, 10, rng)
		return w

	case "saw-2D":
		w, _ := NewSelfAvoidingWalker(2, 20, rng)
		return w

	case "saw-3D":
		w, _ := NewSelfAvoidingWalker(3, 30, rng)
		return w

	case "biased-1D":
		w, _ := NewBiasedWalker(1, 10, rng)
		return w

	case "biased-2D":
		w, _ := NewBiasedWalker(2, 40, rng)
		return w

	case "biased-3D":
		w, _ := NewBiasedWalker(3, 40, rng)
		return w

	default:
		return nil // Default to nil for unrecognized scenarios
	}
}
