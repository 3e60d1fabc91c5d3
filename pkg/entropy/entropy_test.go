package entropy

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vertex-lab/sawsim/pkg/models"
)

func TestEntropy(t *testing.T) {
	testCases := []struct {
		name          string
		dim           int
		steps         int
		walkType      models.WalkType
		acceptedRate  float64
		expectedOmega float64
	}{
		{
			name:          "3D self-avoiding",
			dim:           3,
			steps:         12,
			walkType:      models.SelfAvoiding,
			acceptedRate:  0.5,
			expectedOmega: 0.5 * math.Pow(5, 10),
		},
		{
			name:          "2D random",
			dim:           2,
			steps:         6,
			walkType:      models.Random,
			acceptedRate:  1,
			expectedOmega: math.Pow(4, 4),
		},
		{
			name:          "biased uses the unbiased count",
			dim:           2,
			steps:         6,
			walkType:      models.Biased,
			acceptedRate:  0.3,
			expectedOmega: math.Pow(4, 4),
		},
		{
			name:          "1D self-avoiding",
			dim:           1,
			steps:         10,
			walkType:      models.SelfAvoiding,
			acceptedRate:  1,
			expectedOmega: 1,
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			omega, err := Omega(test.dim, test.steps, test.walkType, test.acceptedRate)
			require.NoError(t, err)
			assert.InEpsilon(t, test.expectedOmega, omega, 1e-9)

			entropy, err := Entropy(test.dim, test.steps, test.walkType, test.acceptedRate)
			require.NoError(t, err)
			assert.InDelta(t, math.Log(test.expectedOmega)/float64(test.steps-2), entropy, 1e-9)
		})
	}
}

func TestEntropyReference(t *testing.T) {
	// Omega = 0.5 * 5^10 = 4882812.5
	omega, err := Omega(3, 12, models.SelfAvoiding, 0.5)
	require.NoError(t, err)
	assert.InDelta(t, 4882812.5, omega, 1e-3)

	entropy, err := Entropy(3, 12, models.SelfAvoiding, 0.5)
	require.NoError(t, err)
	assert.InDelta(t, 1.540, entropy, 1e-3)
}

func TestEntropyLongWalks(t *testing.T) {
	// (2d)^(N-2) overflows a float64, the entropy doesn't
	entropy, err := Entropy(3, 2000, models.Random, 1)
	require.NoError(t, err)
	assert.InDelta(t, math.Log(6), entropy, 1e-9)
}

func TestEntropyErrors(t *testing.T) {
	testCases := []struct {
		name         string
		dim          int
		steps        int
		walkType     models.WalkType
		acceptedRate float64
		expected     error
	}{
		{
			name:         "N = 2",
			dim:          2,
			steps:        2,
			walkType:     models.SelfAvoiding,
			acceptedRate: 0.5,
			expected:     models.ErrInvalidSteps,
		},
		{
			name:         "invalid dimension",
			dim:          0,
			steps:        10,
			walkType:     models.Random,
			acceptedRate: 1,
			expected:     models.ErrInvalidDimension,
		},
		{
			name:         "zero rate",
			dim:          2,
			steps:        10,
			walkType:     models.SelfAvoiding,
			acceptedRate: 0,
			expected:     models.ErrInvalidAcceptedRate,
		},
		{
			name:         "rate above one",
			dim:          2,
			steps:        10,
			walkType:     models.SelfAvoiding,
			acceptedRate: 1.5,
			expected:     models.ErrInvalidAcceptedRate,
		},
		{
			name:         "NaN rate",
			dim:          2,
			steps:        10,
			walkType:     models.SelfAvoiding,
			acceptedRate: math.NaN(),
			expected:     models.ErrInvalidAcceptedRate,
		},
		{
			name:         "unknown walk type",
			dim:          2,
			steps:        10,
			walkType:     models.WalkType(9),
			acceptedRate: 1,
			expected:     models.ErrInvalidWalkType,
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			_, err := Entropy(test.dim, test.steps, test.walkType, test.acceptedRate)
			assert.ErrorIs(t, err, test.expected)
		})
	}
}
