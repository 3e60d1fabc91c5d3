package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetenv unsets the variable for the duration of the test.
func unsetenv(t *testing.T, key string) {
	t.Setenv(key, "")
	os.Unsetenv(key)
}

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		config, err := LoadConfig()
		require.NoError(t, err)
		defer config.CloseLogs()

		assert.Equal(t, 1, config.Workers)
		assert.False(t, config.SeedSet)
		assert.Equal(t, 1000, config.FlushEvery)
		assert.True(t, config.LogsToStdout())
	})

	t.Run("from the environment", func(t *testing.T) {
		logPath := filepath.Join(t.TempDir(), "sawsim.log")
		t.Setenv("SAWSIM_LOGS", logPath)
		t.Setenv("SAWSIM_WORKERS", "4")
		t.Setenv("SAWSIM_SEED", "-7")
		t.Setenv("SAWSIM_MAX_ATTEMPTS", "1000")
		t.Setenv("SAWSIM_FLUSH_EVERY", "50")
		t.Setenv("SAWSIM_REDIS_ADDR", "localhost:6380")
		t.Setenv("SAWSIM_PARQUET_DIR", "data")
		t.Setenv("SAWSIM_METRICS_ADDR", ":2112")

		config, err := LoadConfig()
		require.NoError(t, err)
		defer config.CloseLogs()

		assert.Equal(t, logPath, config.LogTarget)
		assert.False(t, config.LogsToStdout())
		assert.Equal(t, 4, config.Workers)
		assert.True(t, config.SeedSet)
		assert.Equal(t, int64(-7), config.Seed)
		assert.Equal(t, 1000, config.MaxAttempts)
		assert.Equal(t, 50, config.FlushEvery)
		assert.Equal(t, "localhost:6380", config.RedisAddr)
		assert.Equal(t, "data", config.ParquetDir)
		assert.Equal(t, ":2112", config.MetricsAddr)

		config.Log.Info("hello")
		assert.FileExists(t, logPath)
	})

	t.Run("invalid values", func(t *testing.T) {
		for key, val := range map[string]string{
			"SAWSIM_WORKERS":      "zero",
			"SAWSIM_SEED":         "1.5",
			"SAWSIM_MAX_ATTEMPTS": "-",
			"SAWSIM_FLUSH_EVERY":  "x",
		} {
			t.Run(key, func(t *testing.T) {
				t.Setenv(key, val)
				_, err := LoadConfig()
				assert.Error(t, err)
			})
		}

		t.Run("non-positive workers", func(t *testing.T) {
			t.Setenv("SAWSIM_WORKERS", "0")
			_, err := LoadConfig()
			assert.Error(t, err)
		})
	})
}

func TestLoadEnvFile(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		assert.NoError(t, LoadEnvFile(filepath.Join(t.TempDir(), ".env")))
	})

	t.Run("valid file", func(t *testing.T) {
		unsetenv(t, "SAWSIM_SEED")
		unsetenv(t, "SAWSIM_WORKERS")

		// variables already set are not overridden
		t.Setenv("SAWSIM_MAX_ATTEMPTS", "10")

		path := filepath.Join(t.TempDir(), ".env")
		content := "SAWSIM_SEED=99\nSAWSIM_WORKERS=3\nSAWSIM_MAX_ATTEMPTS=500\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		require.NoError(t, LoadEnvFile(path))

		config, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, int64(99), config.Seed)
		assert.Equal(t, 3, config.Workers)
		assert.Equal(t, 10, config.MaxAttempts)
	})
}

func TestPrint(t *testing.T) {
	config := NewConfig()
	config.Workers = 8
	config.RedisAddr = "localhost:6379"

	buf := &bytes.Buffer{}
	config.Print(buf)

	assert.Contains(t, buf.String(), "Workers: 8")
	assert.Contains(t, buf.String(), "Seed: time based")
	assert.Contains(t, buf.String(), `RedisAddr: "localhost:6379"`)
}
