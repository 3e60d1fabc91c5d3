package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vertex-lab/sawsim/pkg/models"
)

func writePlan(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadPlan(t *testing.T) {
	path := writePlan(t, `
walk_type: biased
trials: 200
dims: [2, 3]
steps: [10, 20]
workers: 2
seed: 11
`)

	plan, err := LoadPlan(path)
	require.NoError(t, err)

	assert.Equal(t, "biased", plan.WalkType)
	assert.Equal(t, 200, plan.Trials)
	assert.Equal(t, []Point{{2, 10}, {2, 20}, {3, 10}, {3, 20}}, plan.Points())

	config := NewConfig()
	plan.Apply(config)
	assert.Equal(t, 2, config.Workers)
	assert.True(t, config.SeedSet)
	assert.Equal(t, int64(11), config.Seed)
	assert.Equal(t, 0, config.MaxAttempts)
}

func TestLoadPlanDefaults(t *testing.T) {
	plan, err := LoadPlan(writePlan(t, "steps: [5]\n"))
	require.NoError(t, err)

	assert.Equal(t, "saw", plan.WalkType)
	assert.Equal(t, 1000, plan.Trials)
	assert.Equal(t, []Point{{2, 5}}, plan.Points())

	config := NewConfig()
	plan.Apply(config)
	assert.False(t, config.SeedSet)
}

func TestLoadPlanErrors(t *testing.T) {
	testCases := []struct {
		name     string
		content  string
		expected error
	}{
		{
			name:     "unknown walk type",
			content:  "walk_type: levy\nsteps: [5]\n",
			expected: models.ErrInvalidWalkType,
		},
		{
			name:     "zero trials",
			content:  "trials: 0\nsteps: [5]\n",
			expected: models.ErrInvalidTrials,
		},
		{
			name:     "invalid dimension",
			content:  "dims: [0]\nsteps: [5]\n",
			expected: models.ErrInvalidDimension,
		},
		{
			name:     "too few steps",
			content:  "steps: [2]\n",
			expected: models.ErrInvalidSteps,
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			_, err := LoadPlan(writePlan(t, test.content))
			assert.ErrorIs(t, err, test.expected)
		})
	}

	t.Run("no steps", func(t *testing.T) {
		_, err := LoadPlan(writePlan(t, "dims: [2]\n"))
		assert.Error(t, err)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := LoadPlan(writePlan(t, "steps: [5\n"))
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadPlan(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})
}
