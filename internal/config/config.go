// Package config loads process configuration for the pokerequity server and
// CLI: an optional HCL file, then POKEREQUITY_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix prefixes every environment override, e.g. POKEREQUITY_SERVER_PORT.
const EnvPrefix = "pokerequity"

// Config is the complete configuration.
type Config struct {
	Server     ServerConfig
	Simulation SimulationConfig
	Log        LogConfig
	Tracing    TracingConfig
	ChartsFile string `envconfig:"charts_file"`
}

// ServerConfig holds HTTP listener and request bound settings.
type ServerConfig struct {
	Address        string   `hcl:"address,optional"`
	Port           int      `hcl:"port,optional"`
	AllowedOrigins []string `hcl:"allowed_origins,optional" envconfig:"allowed_origins"`
	MinTrials      int      `hcl:"min_trials,optional" envconfig:"min_trials"`
	MaxTrials      int      `hcl:"max_trials,optional" envconfig:"max_trials"`
	WriteTimeout   string   `hcl:"write_timeout,optional" envconfig:"write_timeout"`
}

// SimulationConfig tunes the Monte Carlo simulator.
type SimulationConfig struct {
	Workers   int   `hcl:"workers,optional"`
	Trials    int   `hcl:"trials,optional"`
	BatchSize int   `hcl:"batch_size,optional" envconfig:"batch_size"`
	Seed      int64 `hcl:"seed,optional"`
}

// LogConfig selects log level and output format.
type LogConfig struct {
	Level  string `hcl:"level,optional"`
	Format string `hcl:"format,optional"` // console or json
}

// TracingConfig enables OTLP trace export.
type TracingConfig struct {
	Enabled     bool   `hcl:"enabled,optional"`
	Endpoint    string `hcl:"endpoint,optional"`
	ServiceName string `hcl:"service_name,optional" envconfig:"service_name"`
}

// fileConfig mirrors Config with every block optional.
type fileConfig struct {
	Server     *ServerConfig     `hcl:"server,block"`
	Simulation *SimulationConfig `hcl:"simulation,block"`
	Log        *LogConfig        `hcl:"log,block"`
	Tracing    *TracingConfig    `hcl:"tracing,block"`
	ChartsFile string            `hcl:"charts_file,optional"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Address:        "localhost",
			Port:           8080,
			AllowedOrigins: []string{"*"},
			MinTrials:      10,
			MaxTrials:      10000,
			WriteTimeout:   "10s",
		},
		Simulation: SimulationConfig{
			Trials:    10000,
			BatchSize: 1000,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Tracing: TracingConfig{
			ServiceName: "pokerequity",
		},
	}
}

// Load reads the HCL file at path when it exists, applies environment
// overrides and validates the result. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := cfg.mergeFile(path); err != nil {
				return nil, err
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("stat config: %w", err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("environment overrides: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var fc fileConfig
	if diags := gohcl.DecodeBody(file.Body, nil, &fc); diags.HasErrors() {
		return fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	if s := fc.Server; s != nil {
		setString(&c.Server.Address, s.Address)
		setInt(&c.Server.Port, s.Port)
		if len(s.AllowedOrigins) > 0 {
			c.Server.AllowedOrigins = s.AllowedOrigins
		}
		setInt(&c.Server.MinTrials, s.MinTrials)
		setInt(&c.Server.MaxTrials, s.MaxTrials)
		setString(&c.Server.WriteTimeout, s.WriteTimeout)
	}
	if s := fc.Simulation; s != nil {
		setInt(&c.Simulation.Workers, s.Workers)
		setInt(&c.Simulation.Trials, s.Trials)
		setInt(&c.Simulation.BatchSize, s.BatchSize)
		if s.Seed != 0 {
			c.Simulation.Seed = s.Seed
		}
	}
	if l := fc.Log; l != nil {
		setString(&c.Log.Level, l.Level)
		setString(&c.Log.Format, l.Format)
	}
	if t := fc.Tracing; t != nil {
		// Enabled defaults to false, so the block's value always applies.
		c.Tracing.Enabled = t.Enabled
		setString(&c.Tracing.Endpoint, t.Endpoint)
		setString(&c.Tracing.ServiceName, t.ServiceName)
	}
	setString(&c.ChartsFile, fc.ChartsFile)
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setInt(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}

// Validate checks ranges and enumerations.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if c.Server.MinTrials < 1 {
		return fmt.Errorf("min_trials must be positive, got %d", c.Server.MinTrials)
	}
	if c.Server.MaxTrials < c.Server.MinTrials {
		return fmt.Errorf("max_trials %d is below min_trials %d", c.Server.MaxTrials, c.Server.MinTrials)
	}
	if d, err := time.ParseDuration(c.Server.WriteTimeout); err != nil || d <= 0 {
		return fmt.Errorf("invalid write_timeout %q", c.Server.WriteTimeout)
	}
	if c.Simulation.Workers < 0 {
		return fmt.Errorf("workers cannot be negative, got %d", c.Simulation.Workers)
	}
	if c.Simulation.Trials < 1 {
		return fmt.Errorf("trials must be positive, got %d", c.Simulation.Trials)
	}
	if c.Simulation.BatchSize < 1 {
		return fmt.Errorf("batch_size must be positive, got %d", c.Simulation.BatchSize)
	}
	switch strings.ToLower(c.Log.Level) {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("invalid log format %q", c.Log.Format)
	}
	if c.Tracing.Enabled && c.Tracing.Endpoint == "" {
		return errors.New("tracing is enabled but no endpoint is set")
	}
	return nil
}

// ListenAddress returns host:port for the HTTP listener.
func (c *Config) ListenAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

// WriteTimeout returns the parsed WebSocket write timeout.
func (c *Config) WriteTimeout() time.Duration {
	d, err := time.ParseDuration(c.Server.WriteTimeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}
