package main

import (
	"github.com/spf13/cobra"
)

// configKey is the key of the *Config in the context of the commands.
type configKey struct{}

// newRootCmd() returns the sawsim command with all its subcommands.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "sawsim",
		Short: "Monte Carlo simulations of lattice walks and self-avoiding walks",
		Long: `sawsim grows random, self-avoiding and Rosenbluth-biased self-avoiding walks
on the d-dimensional cubic lattice, and estimates the scaling exponent p of the
mean squared end-to-end distance <R^2> ~ N^p and the entropy per monomer.

Parameters are read from the environment (and a .env file); flags override them.`,
		SilenceUsage:      true,
		PersistentPreRunE: loadConfig,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if config, ok := cmd.Context().Value(configKey{}).(*Config); ok {
				config.CloseLogs()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.String("env-file", defaultEnvFile, "File with the environment variables to load")
	flags.String("logs", "", "Log destination: a path ending in .log, or stdout (env SAWSIM_LOGS)")
	flags.Int("workers", 1, "Number of parallel walkers (env SAWSIM_WORKERS)")
	flags.Int64("seed", 0, "Seed of the random number generators; time based if unset (env SAWSIM_SEED)")
	flags.Int("max-attempts", 0, "Maximum number of attempts, 0 for unbounded (env SAWSIM_MAX_ATTEMPTS)")
	flags.Int("flush-every", 1000, "Samples buffered before writing to the stores (env SAWSIM_FLUSH_EVERY)")
	flags.String("redis", "", "Address of the Redis server storing the runs (env SAWSIM_REDIS_ADDR)")
	flags.String("parquet-dir", "", "Directory of the Parquet files of the samples (env SAWSIM_PARQUET_DIR)")
	flags.String("metrics-addr", "", "Address serving the Prometheus /metrics (env SAWSIM_METRICS_ADDR)")
	flags.Bool("print-config", false, "Print the effective configuration before running")

	root.AddCommand(
		newSimulateCmd(),
		newEntropyCmd(),
		newSweepCmd(),
		newReportCmd(),
	)
	return root
}

// loadConfig() loads the .env file and the environment, applies the flags
// explicitly set, and stores the config in the context of the command.
func loadConfig(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()

	envFile, _ := flags.GetString("env-file")
	if err := LoadEnvFile(envFile); err != nil {
		return err
	}

	config, err := LoadConfig()
	if err != nil {
		return err
	}

	if flags.Changed("logs") {
		target, _ := flags.GetString("logs")
		if err := config.SetLogs(target); err != nil {
			return err
		}
	}
	if flags.Changed("workers") {
		config.Workers, _ = flags.GetInt("workers")
	}
	if flags.Changed("seed") {
		config.Seed, _ = flags.GetInt64("seed")
		config.SeedSet = true
	}
	if flags.Changed("max-attempts") {
		config.MaxAttempts, _ = flags.GetInt("max-attempts")
	}
	if flags.Changed("flush-every") {
		config.FlushEvery, _ = flags.GetInt("flush-every")
	}
	if flags.Changed("redis") {
		config.RedisAddr, _ = flags.GetString("redis")
	}
	if flags.Changed("parquet-dir") {
		config.ParquetDir, _ = flags.GetString("parquet-dir")
	}
	if flags.Changed("metrics-addr") {
		config.MetricsAddr, _ = flags.GetString("metrics-addr")
	}

	if print, _ := flags.GetBool("print-config"); print {
		config.Print(cmd.OutOrStdout())
	}

	cmd.SetContext(withConfig(cmd, config))
	return nil
}
