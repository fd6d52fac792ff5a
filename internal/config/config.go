// Package config provides unified configuration loading for episim.
// It supports loading from YAML files and environment variables.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/episim/builder"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config contains all episim configuration settings.
type Config struct {
	// Server contains HTTP listener and session registry settings.
	Server ServerConfig `json:"server" yaml:"server"`

	// Network contains defaults and limits for generated contact networks.
	Network NetworkConfig `json:"network" yaml:"network"`

	// Simulation contains defaults for the infection engine.
	Simulation SimulationConfig `json:"simulation" yaml:"simulation"`

	// Logging contains settings for structured logging.
	Logging LoggingConfig `json:"logging" yaml:"logging"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string `json:"addr" yaml:"addr"`

	ReadTimeout     time.Duration `json:"read_timeout" yaml:"read_timeout"`
	WriteTimeout    time.Duration `json:"write_timeout" yaml:"write_timeout"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout"`

	// MaxSessions caps concurrently held sessions (each owns a graph).
	MaxSessions int `json:"max_sessions" yaml:"max_sessions"`
}

// NetworkConfig configures the Barabási–Albert generator.
type NetworkConfig struct {
	// Nodes is the default node count when a request omits it.
	Nodes int `json:"nodes" yaml:"nodes"`

	// Attachment is the default number of edges each new node brings (m).
	Attachment int `json:"attachment" yaml:"attachment"`

	// MaxNodes rejects larger networks at the API boundary.
	MaxNodes int `json:"max_nodes" yaml:"max_nodes"`

	// MaxEdges rejects networks whose m·(n−m) edge count exceeds it.
	MaxEdges int `json:"max_edges" yaml:"max_edges"`
}

// SimulationConfig configures the infection engine.
type SimulationConfig struct {
	// InfectionProbability is the per-contact transmission probability.
	// Range: 0.0 to 1.0
	InfectionProbability float64 `json:"infection_probability" yaml:"infection_probability"`

	// InitialInfected is the default number of randomly seeded nodes.
	InitialInfected int `json:"initial_infected" yaml:"initial_infected"`

	// MaxSteps bounds auto-run; 0 runs until the outbreak is over.
	MaxSteps int `json:"max_steps" yaml:"max_steps"`

	// Seed makes generation and transmission reproducible. 0 means
	// seed from the wall clock.
	Seed int64 `json:"seed" yaml:"seed"`
}

// LoggingConfig configures zap.
type LoggingConfig struct {
	// Level is one of "debug", "info" (default), "warn", "error".
	Level string `json:"level" yaml:"level"`

	// Development switches to the human-readable console encoder.
	Development bool `json:"development" yaml:"development"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 5 * time.Second,
			MaxSessions:     64,
		},
		Network: NetworkConfig{
			Nodes:      1000,
			Attachment: 3,
			MaxNodes:   20000,
			MaxEdges:   200000,
		},
		Simulation: SimulationConfig{
			InfectionProbability: 0.3,
			InitialInfected:      5,
			MaxSteps:             100,
			Seed:                 0,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load resolves configuration in order: defaults -> path (when non-empty)
// -> environment variables. The result is validated.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		fileCfg, err := LoadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
		cfg = fileCfg
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromFile loads configuration from a specific YAML file. Keys absent
// from the file keep their defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("%w: server.addr must not be empty", ErrInvalidConfig)
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 || c.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("%w: server timeouts must be non-negative", ErrInvalidConfig)
	}
	if c.Server.MaxSessions < 1 {
		return fmt.Errorf("%w: server.max_sessions must be at least 1, got %d", ErrInvalidConfig, c.Server.MaxSessions)
	}

	if c.Network.MaxNodes < 2 {
		return fmt.Errorf("%w: network.max_nodes must be at least 2, got %d", ErrInvalidConfig, c.Network.MaxNodes)
	}
	if c.Network.Nodes < 2 || c.Network.Nodes > c.Network.MaxNodes {
		return fmt.Errorf("%w: network.nodes must be in [2,%d], got %d", ErrInvalidConfig, c.Network.MaxNodes, c.Network.Nodes)
	}
	if c.Network.Attachment < 1 || c.Network.Attachment >= c.Network.Nodes {
		return fmt.Errorf("%w: network.attachment must be in [1,%d), got %d", ErrInvalidConfig, c.Network.Nodes, c.Network.Attachment)
	}
	if c.Network.MaxEdges < 1 {
		return fmt.Errorf("%w: network.max_edges must be at least 1, got %d", ErrInvalidConfig, c.Network.MaxEdges)
	}
	if e := builder.ExpectedEdges(c.Network.Nodes, c.Network.Attachment); e > c.Network.MaxEdges {
		return fmt.Errorf("%w: default network has %d edges, above network.max_edges=%d", ErrInvalidConfig, e, c.Network.MaxEdges)
	}

	p := c.Simulation.InfectionProbability
	if p < 0 || p > 1 || math.IsNaN(p) {
		return fmt.Errorf("%w: simulation.infection_probability must be between 0 and 1, got %f", ErrInvalidConfig, p)
	}
	if c.Simulation.InitialInfected < 0 {
		return fmt.Errorf("%w: simulation.initial_infected must be non-negative, got %d", ErrInvalidConfig, c.Simulation.InitialInfected)
	}
	if c.Simulation.MaxSteps < 0 {
		return fmt.Errorf("%w: simulation.max_steps must be non-negative, got %d", ErrInvalidConfig, c.Simulation.MaxSteps)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if c.Logging.Level != "" && !validLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("%w: invalid log level: %s (valid: debug, info, warn, error)", ErrInvalidConfig, c.Logging.Level)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("EPISIM_ADDR"); v != "" {
		cfg.Server.Addr = v
	}

	if v := os.Getenv("EPISIM_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}

	if v := os.Getenv("EPISIM_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: EPISIM_SEED=%q: %v", ErrInvalidConfig, v, err)
		}
		cfg.Simulation.Seed = seed
	}

	if v := os.Getenv("EPISIM_MAX_EDGES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: EPISIM_MAX_EDGES=%q: %v", ErrInvalidConfig, v, err)
		}
		cfg.Network.MaxEdges = n
	}

	if v := os.Getenv("EPISIM_MAX_SESSIONS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: EPISIM_MAX_SESSIONS=%q: %v", ErrInvalidConfig, v, err)
		}
		cfg.Server.MaxSessions = n
	}

	return nil
}
