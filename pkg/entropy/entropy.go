/*
Package entropy estimates the dimensionless conformational entropy per monomer
of lattice walks of N positions.

The number of configurations of an unbiased non-reversal walk of N-2 free steps
is (2d)^(N-2). For self-avoiding walks only a fraction r of the (2d-1)^(N-2)
non-reversal walks survive, where r is the accepted walks rate measured by the
Monte Carlo simulation, so

	Omega = r * (2d-1)^(N-2)     (self-avoiding)
	Omega = (2d)^(N-2)           (otherwise)

and the entropy per monomer is ln(Omega)/(N-2).
*/
package entropy

import (
	"math"

	"github.com/vertex-lab/sawsim/pkg/lattice"
	"github.com/vertex-lab/sawsim/pkg/models"
)

// LogOmega() returns ln(Omega), computed in log space so that it doesn't
// overflow for long walks.
func LogOmega(dim, steps int, walkType models.WalkType, acceptedRate float64) (float64, error) {
	if err := checkInputs(dim, steps, walkType, acceptedRate); err != nil {
		return 0, err
	}

	free := float64(steps - 2)
	if walkType == models.SelfAvoiding {
		return math.Log(acceptedRate) + free*math.Log(float64(2*dim-1)), nil
	}
	return free * math.Log(float64(2*dim)), nil
}

// Omega() returns the number of configurations Omega. It can overflow to +Inf
// for long walks; use LogOmega() in that case.
func Omega(dim, steps int, walkType models.WalkType, acceptedRate float64) (float64, error) {
	logOmega, err := LogOmega(dim, steps, walkType, acceptedRate)
	if err != nil {
		return 0, err
	}
	return math.Exp(logOmega), nil
}

/*
Entropy() returns the dimensionless entropy per monomer ln(Omega)/(N-2).

It returns:
  - ErrInvalidDimension if dim < 1
  - ErrInvalidSteps if steps < 3
  - ErrInvalidWalkType for an unknown walk type
  - ErrInvalidAcceptedRate if the walk type is self-avoiding and acceptedRate is not in (0, 1]
*/
func Entropy(dim, steps int, walkType models.WalkType, acceptedRate float64) (float64, error) {
	logOmega, err := LogOmega(dim, steps, walkType, acceptedRate)
	if err != nil {
		return 0, err
	}
	return logOmega / float64(steps-2), nil
}

// checkInputs function is used to check whether the inputs are valid.
// If not, an appropriate error is returned
func checkInputs(dim, steps int, walkType models.WalkType, acceptedRate float64) error {

	if err := lattice.Validate(dim); err != nil {
		return err
	}

	if steps < 3 {
		return models.ErrInvalidSteps
	}

	if err := walkType.Validate(); err != nil {
		return err
	}

	if walkType == models.SelfAvoiding {
		if !(acceptedRate > 0 && acceptedRate <= 1) {
			return models.ErrInvalidAcceptedRate
		}
	}

	return nil
}
