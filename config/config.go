// Package config loads the settings of a training run.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"riskga/game"
	"riskga/meta"
)

// Config holds the settings of a training run. Zero values in a file keep
// the defaults.
type Config struct {
	PoolSize          int    `yaml:"pool_size"`
	Players           int    `yaml:"players"`
	MaxTurns          int    `yaml:"max_turns"`
	RankingIterations int    `yaml:"ranking_iterations"`
	Generations       int    `yaml:"generations"`
	Workers           int    `yaml:"workers"`
	Seed              uint64 `yaml:"seed"` // 0 draws a random seed

	Database string `yaml:"database"` // SQLite file, empty disables the store
	GenesIn  string `yaml:"genes_in"`
	GenesOut string `yaml:"genes_out"`
	LogDir   string `yaml:"log_dir"`

	LogLevel string `yaml:"log_level"`
	Pretty   bool   `yaml:"pretty"`
}

func Default() *Config {
	return &Config{
		PoolSize:          meta.PoolSize,
		Players:           meta.Players,
		MaxTurns:          meta.MaxTurns,
		RankingIterations: meta.RankingIterations,
		Generations:       meta.Generations,
		Workers:           meta.Workers,
		LogLevel:          "info",
	}
}

// Load reads the YAML file at path over the defaults, when path is not empty,
// then applies RISKGA_* environment overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	var errs []error
	ints := []struct {
		key   string
		value *int
	}{
		{"RISKGA_POOL_SIZE", &c.PoolSize},
		{"RISKGA_PLAYERS", &c.Players},
		{"RISKGA_MAX_TURNS", &c.MaxTurns},
		{"RISKGA_RANKING_ITERATIONS", &c.RankingIterations},
		{"RISKGA_GENERATIONS", &c.Generations},
		{"RISKGA_WORKERS", &c.Workers},
	}
	for _, v := range ints {
		n, err := envInt(v.key, *v.value)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		*v.value = n
	}

	seed, err := strconv.ParseUint(envOrDefault("RISKGA_SEED", strconv.FormatUint(c.Seed, 10)), 10, 64)
	if err != nil {
		errs = append(errs, fmt.Errorf("RISKGA_SEED: %w", err))
	} else {
		c.Seed = seed
	}
	pretty, err := strconv.ParseBool(envOrDefault("RISKGA_PRETTY", strconv.FormatBool(c.Pretty)))
	if err != nil {
		errs = append(errs, fmt.Errorf("RISKGA_PRETTY: %w", err))
	} else {
		c.Pretty = pretty
	}

	c.Database = envOrDefault("RISKGA_DATABASE", c.Database)
	c.GenesIn = envOrDefault("RISKGA_GENES_IN", c.GenesIn)
	c.GenesOut = envOrDefault("RISKGA_GENES_OUT", c.GenesOut)
	c.LogDir = envOrDefault("RISKGA_LOG_DIR", c.LogDir)
	c.LogLevel = envOrDefault("RISKGA_LOG_LEVEL", c.LogLevel)
	return errors.Join(errs...)
}

// Validate checks that the settings describe a playable training run.
func (c *Config) Validate() error {
	var errs []error
	if _, err := game.StandardTopology().Starting(c.Players); err != nil {
		errs = append(errs, fmt.Errorf("players: %w", err))
	}
	if c.PoolSize < c.Players {
		errs = append(errs, fmt.Errorf("pool_size %d cannot fill a match of %d players", c.PoolSize, c.Players))
	}
	for name, n := range map[string]int{
		"max_turns":          c.MaxTurns,
		"ranking_iterations": c.RankingIterations,
		"generations":        c.Generations,
		"workers":            c.Workers,
	} {
		if n < 1 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %d", name, n))
		}
	}
	return errors.Join(errs...)
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}
