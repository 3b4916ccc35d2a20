package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pokerequity.hcl")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o600))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	t.Parallel()

	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "localhost:8080", cfg.ListenAddress())
	assert.Equal(t, 10, cfg.Server.MinTrials)
	assert.Equal(t, 10000, cfg.Server.MaxTrials)
	assert.Equal(t, 10*time.Second, cfg.WriteTimeout())
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
server {
  port            = 9090
  allowed_origins = ["https://example.com"]
  max_trials      = 5000
}

simulation {
  workers = 2
  seed    = 42
}

log {
  format = "json"
}

charts_file = "charts.hcl"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "localhost:9090", cfg.ListenAddress())
	assert.Equal(t, []string{"https://example.com"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 5000, cfg.Server.MaxTrials)
	assert.Equal(t, 10, cfg.Server.MinTrials, "unset fields keep defaults")
	assert.Equal(t, 2, cfg.Simulation.Workers)
	assert.Equal(t, int64(42), cfg.Simulation.Seed)
	assert.Equal(t, 10000, cfg.Simulation.Trials)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "charts.hcl", cfg.ChartsFile)
}

func TestLoadTracingBlock(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
tracing {
  enabled  = true
  endpoint = "http://collector:4318"
}
`))
	require.NoError(t, err)
	assert.True(t, cfg.Tracing.Enabled)
	assert.Equal(t, "http://collector:4318", cfg.Tracing.Endpoint)
	assert.Equal(t, "pokerequity", cfg.Tracing.ServiceName)

	cfg, err = Load(writeConfig(t, `
tracing {
  endpoint = "http://collector:4318"
}
`))
	require.NoError(t, err)
	assert.False(t, cfg.Tracing.Enabled, "a block without enabled leaves tracing off")
	assert.Equal(t, "http://collector:4318", cfg.Tracing.Endpoint)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.hcl"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, `
server {
  port = 9090
}
`)
	t.Setenv("POKEREQUITY_SERVER_PORT", "7070")
	t.Setenv("POKEREQUITY_SERVER_ALLOWED_ORIGINS", "https://a.test,https://b.test")
	t.Setenv("POKEREQUITY_SIMULATION_WORKERS", "3")
	t.Setenv("POKEREQUITY_LOG_LEVEL", "debug")
	t.Setenv("POKEREQUITY_TRACING_ENABLED", "true")
	t.Setenv("POKEREQUITY_TRACING_ENDPOINT", "http://localhost:4318")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 3, cfg.Simulation.Workers)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Tracing.Enabled)
	assert.Equal(t, "http://localhost:4318", cfg.Tracing.Endpoint)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(writeConfig(t, `server {`))
	require.ErrorContains(t, err, "failed to parse HCL")

	_, err = Load(writeConfig(t, `unknown = 1`))
	require.ErrorContains(t, err, "failed to decode HCL")

	_, err = Load(writeConfig(t, "server {\n  port = 70000\n}\n"))
	require.ErrorContains(t, err, "invalid port")

	t.Setenv("POKEREQUITY_SERVER_PORT", "not-a-number")
	_, err = Load("")
	require.ErrorContains(t, err, "environment overrides")
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
		msg    string
	}{
		{"port", func(c *Config) { c.Server.Port = 0 }, "invalid port"},
		{"min trials", func(c *Config) { c.Server.MinTrials = 0 }, "min_trials"},
		{"max below min", func(c *Config) { c.Server.MaxTrials = 5 }, "max_trials"},
		{"write timeout", func(c *Config) { c.Server.WriteTimeout = "soon" }, "write_timeout"},
		{"workers", func(c *Config) { c.Simulation.Workers = -1 }, "workers"},
		{"trials", func(c *Config) { c.Simulation.Trials = 0 }, "trials"},
		{"batch size", func(c *Config) { c.Simulation.BatchSize = 0 }, "batch_size"},
		{"log level", func(c *Config) { c.Log.Level = "loud" }, "log level"},
		{"log format", func(c *Config) { c.Log.Format = "xml" }, "log format"},
		{"tracing", func(c *Config) { c.Tracing.Enabled = true }, "endpoint"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg := Default()
			tc.mutate(cfg)
			require.ErrorContains(t, cfg.Validate(), tc.msg)
		})
	}
}
