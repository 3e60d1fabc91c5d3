package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/vertex-lab/sawsim/pkg/utils/logger"
)

const defaultEnvFile = ".env"

// The configuration parameters shared by all the commands.
type Config struct {
	Log       *logger.Aggregate
	LogTarget string
	logCloser io.Closer

	Workers     int
	Seed        int64
	SeedSet     bool
	MaxAttempts int
	FlushEvery  int

	RedisAddr   string
	ParquetDir  string
	MetricsAddr string
}

// NewConfig() returns a config with default parameters.
func NewConfig() *Config {
	return &Config{
		Log:        logger.New(os.Stdout),
		LogTarget:  "stdout",
		logCloser:  io.NopCloser(nil),
		Workers:    1,
		FlushEvery: 1000,
	}
}

func (c *Config) Print(w io.Writer) {
	fmt.Fprintln(w, "Config:")
	fmt.Fprintf(w, "  Logs: %s\n", c.LogTarget)
	fmt.Fprintf(w, "  Workers: %d\n", c.Workers)
	if c.SeedSet {
		fmt.Fprintf(w, "  Seed: %d\n", c.Seed)
	} else {
		fmt.Fprintln(w, "  Seed: time based")
	}
	fmt.Fprintf(w, "  MaxAttempts: %d\n", c.MaxAttempts)
	fmt.Fprintf(w, "  FlushEvery: %d\n", c.FlushEvery)
	fmt.Fprintf(w, "  RedisAddr: %q\n", c.RedisAddr)
	fmt.Fprintf(w, "  ParquetDir: %q\n", c.ParquetDir)
	fmt.Fprintf(w, "  MetricsAddr: %q\n", c.MetricsAddr)
}

// LoadEnvFile() loads the variables of the .env file into the environment,
// without overriding the ones already set. A missing file is ignored.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error loading %q: %w", path, err)
	}
	return nil
}

// LoadConfig() read the variables from the enviroment and parses them into a config struct.
func LoadConfig() (*Config, error) {
	var config = NewConfig()
	var err error

	for _, item := range os.Environ() {
		keyVal := strings.SplitN(item, "=", 2)
		if len(keyVal) != 2 {
			continue
		}
		key, val := keyVal[0], keyVal[1]

		switch key {
		case "SAWSIM_LOGS":
			// logs go to the file if a .log file is specified; otherwise to stdout
			if err := config.SetLogs(val); err != nil {
				return nil, err
			}

		case "SAWSIM_WORKERS":
			config.Workers, err = strconv.Atoi(val)
			if err != nil {
				return nil, fmt.Errorf("error parsing %v: %v", keyVal, err)
			}
			if config.Workers <= 0 {
				return nil, fmt.Errorf("%s should be positive, got %d", key, config.Workers)
			}

		case "SAWSIM_SEED":
			config.Seed, err = strconv.ParseInt(val, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("error parsing %v: %v", keyVal, err)
			}
			config.SeedSet = true

		case "SAWSIM_MAX_ATTEMPTS":
			config.MaxAttempts, err = strconv.Atoi(val)
			if err != nil {
				return nil, fmt.Errorf("error parsing %v: %v", keyVal, err)
			}

		case "SAWSIM_FLUSH_EVERY":
			config.FlushEvery, err = strconv.Atoi(val)
			if err != nil {
				return nil, fmt.Errorf("error parsing %v: %v", keyVal, err)
			}

		case "SAWSIM_REDIS_ADDR":
			config.RedisAddr = val

		case "SAWSIM_PARQUET_DIR":
			config.ParquetDir = val

		case "SAWSIM_METRICS_ADDR":
			config.MetricsAddr = val
		}
	}

	return config, nil
}

// SetLogs() points the logger to target, closing the previous log file if any.
func (c *Config) SetLogs(target string) error {
	log, closer, err := logger.Open(target)
	if err != nil {
		return err
	}

	c.CloseLogs()
	c.Log = log
	c.logCloser = closer
	c.LogTarget = "stdout"
	if strings.HasSuffix(target, ".log") {
		c.LogTarget = target
	}
	return nil
}

// LogsToStdout() returns whether the logs are printed on the terminal.
func (c *Config) LogsToStdout() bool {
	return c.LogTarget == "stdout"
}

// CloseLogs() closes the log file, if any.
func (c *Config) CloseLogs() {
	if c.logCloser != nil {
		c.logCloser.Close()
	}
}
