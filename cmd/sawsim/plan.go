package main

import (
	"fmt"
	"os"

	"github.com/vertex-lab/sawsim/pkg/models"
	"gopkg.in/yaml.v3"
)

// Plan describes a sweep of simulations over the lattice dimension and the
// number of positions. Fields left to zero take their defaults.
type Plan struct {
	WalkType string `yaml:"walk_type"`
	Trials   int    `yaml:"trials"`
	Dims     []int  `yaml:"dims"`
	Steps    []int  `yaml:"steps"`

	// optional overrides of the configuration
	Workers     int    `yaml:"workers"`
	Seed        *int64 `yaml:"seed"`
	MaxAttempts int    `yaml:"max_attempts"`
}

// Point is a single simulation of a sweep.
type Point struct {
	Dim   int
	Steps int
}

// LoadPlan() reads and validates the YAML plan at path.
func LoadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading the plan: %w", err)
	}

	plan := &Plan{
		WalkType: "saw",
		Trials:   1000,
		Dims:     []int{2},
	}

	if err := yaml.Unmarshal(data, plan); err != nil {
		return nil, fmt.Errorf("error parsing the plan %q: %w", path, err)
	}

	if err := plan.Validate(); err != nil {
		return nil, err
	}
	return plan, nil
}

// Validate() returns an error if the plan cannot be run.
func (p *Plan) Validate() error {
	if _, err := models.ParseWalkType(p.WalkType); err != nil {
		return err
	}

	if p.Trials <= 0 {
		return models.ErrInvalidTrials
	}

	if len(p.Dims) == 0 || len(p.Steps) == 0 {
		return fmt.Errorf("the plan needs at least one dimension and one number of steps")
	}

	for _, dim := range p.Dims {
		if dim < 1 {
			return fmt.Errorf("%w: %d", models.ErrInvalidDimension, dim)
		}
	}

	for _, steps := range p.Steps {
		if steps < 3 {
			return fmt.Errorf("%w: the entropy needs N >= 3, got %d", models.ErrInvalidSteps, steps)
		}
	}

	if p.Workers < 0 {
		return models.ErrInvalidWorkers
	}
	return nil
}

// Points() returns the simulations of the plan, by dimension then by steps.
func (p *Plan) Points() []Point {
	points := make([]Point, 0, len(p.Dims)*len(p.Steps))
	for _, dim := range p.Dims {
		for _, steps := range p.Steps {
			points = append(points, Point{Dim: dim, Steps: steps})
		}
	}
	return points
}

// Apply() overrides the config with the parameters set in the plan.
func (p *Plan) Apply(config *Config) {
	if p.Workers > 0 {
		config.Workers = p.Workers
	}
	if p.Seed != nil {
		config.Seed = *p.Seed
		config.SeedSet = true
	}
	if p.MaxAttempts > 0 {
		config.MaxAttempts = p.MaxAttempts
	}
}
