package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/vertex-lab/sawsim/pkg/entropy"
)

func newSimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Estimate the exponent p of <R^2> ~ N^p",
		Example: `  sawsim simulate --trials 10000 --dim 3 --steps 20 --type saw
  sawsim simulate --trials 100000 --dim 2 --steps 100 --type biased --workers 8 --tui`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := parseWalkFlags(cmd)
			if err != nil {
				return err
			}

			outcome, err := runSimulation(cmd.Context(), configFrom(cmd), params)
			if err != nil {
				return err
			}

			printOutcome(cmd.OutOrStdout(), params, outcome)
			return nil
		},
	}

	addWalkFlags(cmd)
	return cmd
}

func newEntropyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entropy",
		Short: "Estimate the exponent p and the entropy per monomer",
		Long: `Runs a simulation like simulate, then estimates the dimensionless entropy
per monomer ln(Omega)/(N-2), with Omega = rate * (2d-1)^(N-2) for self-avoiding
walks and Omega = (2d)^(N-2) otherwise. Requires N >= 3.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := parseWalkFlags(cmd)
			if err != nil {
				return err
			}

			// fail before simulating if the entropy is undefined
			if _, err := entropy.Entropy(params.Dim, params.Steps, params.WalkType, 1); err != nil {
				return err
			}

			outcome, err := runSimulation(cmd.Context(), configFrom(cmd), params)
			if err != nil {
				return err
			}

			S, err := entropy.Entropy(params.Dim, params.Steps, params.WalkType, outcome.Result.AcceptedRate)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printOutcome(out, params, outcome)
			fmt.Fprintf(out, "entropy per monomer: %.6f\n", S)
			return nil
		},
	}

	addWalkFlags(cmd)
	return cmd
}

// printOutcome() prints the results of the simulation.
func printOutcome(w io.Writer, params walkParams, outcome *runOutcome) {
	res := outcome.Result
	fmt.Fprintf(w, "run %s: %s walks, d = %d, N = %d\n", outcome.RunID, params.WalkType, params.Dim, params.Steps)
	fmt.Fprintf(w, "p = %.6f (-%.6f, +%.6f)\n", res.Summary.P, res.Summary.PLow, res.Summary.PHigh)
	fmt.Fprintf(w, "<R^2> = %.6f ± %.6f\n", res.Summary.Mean, res.Summary.StdErr)
	fmt.Fprintf(w, "accepted rate: %.6f (%d/%d)\n", res.AcceptedRate, res.Accepted, res.Attempts)
	if !res.Complete {
		fmt.Fprintf(w, "incomplete: max attempts reached before %d accepted walks\n", params.Trials)
	}
	if outcome.ParquetPath != "" {
		fmt.Fprintf(w, "samples: %s\n", outcome.ParquetPath)
	}
}
