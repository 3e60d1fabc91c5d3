package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/vertex-lab/sawsim/pkg/entropy"
	"github.com/vertex-lab/sawsim/pkg/models"
	"github.com/vertex-lab/sawsim/pkg/stats"
	"github.com/vertex-lab/sawsim/pkg/store/parquetstore"
	"github.com/vertex-lab/sawsim/pkg/store/redistore"
	"github.com/vertex-lab/sawsim/pkg/utils/redisutils"
)

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Recompute the statistics of a stored run",
		Long: `Reloads the samples of a run, from Redis (--run and --redis) or from a
Parquet file (--parquet), and recomputes the exponent and its error bounds.`,
		Example: `  sawsim report --run 12 --redis localhost:6379
  sawsim report --parquet data/run_12_1700000000.parquet`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runID, _ := cmd.Flags().GetString("run")
			parquetPath, _ := cmd.Flags().GetString("parquet")
			config := configFrom(cmd)

			var record models.RunRecord
			var samples []models.Sample
			var err error

			switch {
			case parquetPath != "":
				if record, err = parquetstore.ReadRun(parquetPath); err != nil {
					return err
				}
				if samples, err = parquetstore.ReadSamples(parquetPath); err != nil {
					return err
				}

			case runID != "":
				if config.RedisAddr == "" {
					return errors.New("report --run needs the address of Redis (--redis or SAWSIM_REDIS_ADDR)")
				}

				cl, err := redisutils.NewClient(cmd.Context(), config.RedisAddr)
				if err != nil {
					return err
				}
				defer cl.Close()

				RS, err := redistore.NewSampleStore(cl)
				if err != nil {
					return err
				}
				if record, err = RS.Run(cmd.Context(), runID); err != nil {
					return fmt.Errorf("run %s: %w", runID, err)
				}
				if samples, err = RS.Samples(cmd.Context(), runID); err != nil {
					return fmt.Errorf("run %s: %w", runID, err)
				}

			default:
				return errors.New("report needs either --run or --parquet")
			}

			return printReport(cmd.OutOrStdout(), record, samples)
		},
	}

	cmd.Flags().String("run", "", "ID of the run stored in Redis")
	cmd.Flags().String("parquet", "", "Path of a Parquet file of samples")
	return cmd
}

// printReport() recomputes and prints the statistics of the stored samples.
func printReport(w io.Writer, record models.RunRecord, samples []models.Sample) error {
	walkType, err := models.ParseWalkType(record.WalkType)
	if err != nil {
		return err
	}

	summary, err := stats.SummarizeSamples(samples, record.Steps, walkType.Weighted())
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "run %s: %s walks, d = %d, N = %d, seed = %d\n",
		record.RunID, walkType, record.Dim, record.Steps, record.Seed)
	fmt.Fprintf(w, "samples: %d (stored accepted: %d, attempts: %d)\n", len(samples), record.Accepted, record.Attempts)
	fmt.Fprintf(w, "p = %.6f (-%.6f, +%.6f)\n", summary.P, summary.PLow, summary.PHigh)
	fmt.Fprintf(w, "<R^2> = %.6f ± %.6f\n", summary.Mean, summary.StdErr)
	fmt.Fprintf(w, "accepted rate: %.6f\n", record.AcceptedRate)

	if record.Steps >= 3 && record.AcceptedRate > 0 {
		S, err := entropy.Entropy(record.Dim, record.Steps, walkType, record.AcceptedRate)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "entropy per monomer: %.6f\n", S)
	}

	if !record.Complete {
		fmt.Fprintln(w, "incomplete: max attempts reached before the requested accepted walks")
	}
	return nil
}
