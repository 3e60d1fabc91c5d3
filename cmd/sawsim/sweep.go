package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/vertex-lab/sawsim/pkg/entropy"
	"github.com/vertex-lab/sawsim/pkg/models"
)

func newSweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Run a simulation for every dimension and length of a YAML plan",
		Example: `  sawsim sweep --plan plan.yaml

  # plan.yaml
  walk_type: saw
  trials: 5000
  dims: [2, 3]
  steps: [10, 20, 40, 80]
  workers: 4`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("plan")
			plan, err := LoadPlan(path)
			if err != nil {
				return err
			}

			config := configFrom(cmd)
			plan.Apply(config)
			walkType, _ := models.ParseWalkType(plan.WalkType)

			out := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(out, "d\tN\tp\tp_low\tp_high\trate\tentropy\trun")

			for _, point := range plan.Points() {
				params := walkParams{
					Trials:   plan.Trials,
					Dim:      point.Dim,
					Steps:    point.Steps,
					WalkType: walkType,
				}

				outcome, err := runSimulation(cmd.Context(), config, params)
				if err != nil {
					out.Flush()
					return fmt.Errorf("sweep point d = %d, N = %d: %w", point.Dim, point.Steps, err)
				}

				res := outcome.Result
				S, err := entropy.Entropy(point.Dim, point.Steps, walkType, res.AcceptedRate)
				if err != nil {
					out.Flush()
					return err
				}

				fmt.Fprintf(out, "%d\t%d\t%.6f\t%.6f\t%.6f\t%.6f\t%.6f\t%s\n",
					point.Dim, point.Steps, res.Summary.P, res.Summary.PLow, res.Summary.PHigh,
					res.AcceptedRate, S, outcome.RunID)
			}

			return out.Flush()
		},
	}

	cmd.Flags().String("plan", "plan.yaml", "Path of the YAML plan")
	return cmd
}
