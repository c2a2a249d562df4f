package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"riskga/meta"
)

func writeConfig(t *testing.T, body string) string {
	path := filepath.Join(t.TempDir(), "riskga.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)
		require.Equal(t, meta.PoolSize, cfg.PoolSize)
		require.Equal(t, meta.Players, cfg.Players)
		require.Equal(t, meta.MaxTurns, cfg.MaxTurns)
		require.Equal(t, meta.RankingIterations, cfg.RankingIterations)
		require.Equal(t, meta.Generations, cfg.Generations)
		require.Equal(t, meta.Workers, cfg.Workers)
		require.Equal(t, "info", cfg.LogLevel)
	})

	t.Run("file keeps unset defaults", func(t *testing.T) {
		path := writeConfig(t, "pool_size: 20\nplayers: 3\ndatabase: runs.db\npretty: true\n")
		cfg, err := Load(path)
		require.NoError(t, err)
		require.Equal(t, 20, cfg.PoolSize)
		require.Equal(t, 3, cfg.Players)
		require.Equal(t, "runs.db", cfg.Database)
		require.True(t, cfg.Pretty)
		require.Equal(t, meta.MaxTurns, cfg.MaxTurns)
	})

	t.Run("environment overrides file", func(t *testing.T) {
		path := writeConfig(t, "pool_size: 20\nworkers: 2\n")
		t.Setenv("RISKGA_POOL_SIZE", "40")
		t.Setenv("RISKGA_SEED", "7")
		t.Setenv("RISKGA_LOG_LEVEL", "debug")
		cfg, err := Load(path)
		require.NoError(t, err)
		require.Equal(t, 40, cfg.PoolSize)
		require.Equal(t, 2, cfg.Workers)
		require.Equal(t, uint64(7), cfg.Seed)
		require.Equal(t, "debug", cfg.LogLevel)
	})

	t.Run("malformed environment", func(t *testing.T) {
		t.Setenv("RISKGA_WORKERS", "many")
		_, err := Load("")
		require.ErrorContains(t, err, "RISKGA_WORKERS")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
	})

	t.Run("malformed file", func(t *testing.T) {
		_, err := Load(writeConfig(t, "pool_size: [1, 2]\n"))
		require.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	require.NoError(t, Default().Validate())

	cfg := Default()
	cfg.Players = 7
	require.Error(t, cfg.Validate())

	cfg = Default()
	cfg.PoolSize = 3
	require.ErrorContains(t, cfg.Validate(), "pool_size")

	cfg = Default()
	cfg.Generations = 0
	require.ErrorContains(t, cfg.Validate(), "generations")
}
