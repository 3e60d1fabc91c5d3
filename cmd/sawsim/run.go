package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/vertex-lab/sawsim/pkg/models"
	"github.com/vertex-lab/sawsim/pkg/montecarlo"
	"github.com/vertex-lab/sawsim/pkg/store"
	"github.com/vertex-lab/sawsim/pkg/store/parquetstore"
	"github.com/vertex-lab/sawsim/pkg/store/redistore"
	"github.com/vertex-lab/sawsim/pkg/utils/logger"
	"github.com/vertex-lab/sawsim/pkg/utils/metrics"
	"github.com/vertex-lab/sawsim/pkg/utils/progress"
	"github.com/vertex-lab/sawsim/pkg/utils/redisutils"
)

const reportEvery = 5 * time.Second

func withConfig(cmd *cobra.Command, config *Config) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, configKey{}, config)
}

// configFrom() returns the config loaded by the root command.
func configFrom(cmd *cobra.Command) *Config {
	if config, ok := cmd.Context().Value(configKey{}).(*Config); ok {
		return config
	}
	return NewConfig()
}

// walkParams are the parameters of a single simulation.
type walkParams struct {
	Trials   int
	Dim      int
	Steps    int
	WalkType models.WalkType
	TUI      bool
}

// addWalkFlags() adds the flags of walkParams to the command.
func addWalkFlags(cmd *cobra.Command) {
	cmd.Flags().Int("trials", 1000, "Number of accepted walks to collect")
	cmd.Flags().Int("dim", 2, "Dimension d of the cubic lattice")
	cmd.Flags().Int("steps", 10, "Number of positions N of a walk")
	cmd.Flags().String("type", "saw", "Walk type: rand, saw or biased")
	cmd.Flags().Bool("tui", false, "Show the progress in a terminal UI")
}

func parseWalkFlags(cmd *cobra.Command) (walkParams, error) {
	var params walkParams
	var err error

	flags := cmd.Flags()
	params.Trials, _ = flags.GetInt("trials")
	params.Dim, _ = flags.GetInt("dim")
	params.Steps, _ = flags.GetInt("steps")
	params.TUI, _ = flags.GetBool("tui")

	walkType, _ := flags.GetString("type")
	if params.WalkType, err = models.ParseWalkType(walkType); err != nil {
		return walkParams{}, err
	}
	return params, nil
}

// runOutcome is the result of a simulation and where it was stored.
type runOutcome struct {
	RunID       string
	Result      *montecarlo.Result
	ParquetPath string
}

/*
runSimulation() runs the simulation of params with the stores, the metrics and
the progress reporting described by config.
*/
func runSimulation(ctx context.Context, config *Config, params walkParams) (*runOutcome, error) {
	log := config.Log

	cfg := montecarlo.NewConfig(params.Trials, params.Dim, params.Steps, params.WalkType)
	cfg.Workers = config.Workers
	cfg.MaxAttempts = config.MaxAttempts
	cfg.FlushEvery = config.FlushEvery
	cfg.Logger = log
	if config.SeedSet {
		cfg.Seed = config.Seed
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	outcome := &runOutcome{RunID: strconv.FormatInt(time.Now().UnixNano(), 10)}

	var redisSink models.SampleSink
	if config.RedisAddr != "" {
		cl, err := redisutils.NewClient(ctx, config.RedisAddr)
		if err != nil {
			return nil, err
		}
		defer cl.Close()

		RS, err := redistore.NewSampleStore(cl)
		if err != nil {
			return nil, err
		}

		if outcome.RunID, err = RS.NewRunID(ctx); err != nil {
			return nil, err
		}
		redisSink = RS
	}

	var parquetSink *parquetstore.BatchWriter
	if config.ParquetDir != "" {
		var err error
		parquetSink, err = parquetstore.NewBatchWriter(config.ParquetDir, outcome.RunID)
		if err != nil {
			return nil, err
		}
	}

	cfg.RunID = outcome.RunID
	if parquetSink != nil {
		cfg.Sink = store.NewFanout(redisSink, parquetSink)
	} else {
		cfg.Sink = store.NewFanout(redisSink)
	}

	tracker := progress.NewTracker(params.Trials)
	cfg.Observers = []models.Observer{tracker}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if config.MetricsAddr != "" {
		collector := metrics.NewCollector()
		cfg.Observers = append(cfg.Observers, collector)

		go func() {
			if err := collector.Serve(ctx, config.MetricsAddr); err != nil {
				log.Error("Metrics server: %v", err)
			}
		}()
		log.Info("Serving metrics on %s/metrics", config.MetricsAddr)
	}

	var err error
	if params.TUI {
		outcome.Result, err = simulateWithTUI(ctx, cfg, tracker, config.LogsToStdout())
	} else {
		go tracker.Report(ctx, log, reportEvery)
		outcome.Result, err = montecarlo.Simulate(ctx, cfg)
	}

	if parquetSink != nil {
		path, rows, finalizeErr := parquetSink.Finalize()
		if finalizeErr != nil && err == nil {
			err = finalizeErr
		}
		if path != "" {
			outcome.ParquetPath = path
			log.Info("Wrote %d samples to %s", rows, path)
		}
	}

	if err != nil {
		return nil, err
	}
	return outcome, nil
}

// simulateWithTUI() runs the simulation while a bubbletea program renders the
// tracker. Logs printed on the terminal are discarded while the program runs.
func simulateWithTUI(ctx context.Context, cfg montecarlo.Config,
	tracker *progress.Tracker, logsToStdout bool) (*montecarlo.Result, error) {

	if logsToStdout {
		cfg.Logger = logger.Discard()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type outcome struct {
		result *montecarlo.Result
		err    error
	}

	done := make(chan progress.DoneMsg, 1)
	results := make(chan outcome, 1)

	go func() {
		res, err := montecarlo.Simulate(ctx, cfg)
		results <- outcome{result: res, err: err}

		msg := progress.DoneMsg{Err: err}
		if res != nil {
			msg.Summary = res.Summary.String()
		}
		done <- msg
	}()

	title := fmt.Sprintf("%s walks, d = %d, N = %d", cfg.WalkType, cfg.Dim, cfg.Steps)
	program := tea.NewProgram(progress.NewModel(title, tracker, done), tea.WithContext(ctx))
	_, tuiErr := program.Run()

	// quitting the program stops the simulation
	cancel()
	res := <-results
	if res.err != nil {
		return nil, res.err
	}

	if tuiErr != nil && !errors.Is(tuiErr, tea.ErrProgramKilled) {
		return nil, fmt.Errorf("progress UI: %w", tuiErr)
	}
	return res.result, nil
}
