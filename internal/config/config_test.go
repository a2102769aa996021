package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/annel0/blockverse/internal/player"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultMatchesControllerSettings(t *testing.T) {
	cfg := Default()
	assert.Equal(t, player.DefaultSettings(), cfg.Player.Settings())
	assert.Equal(t, time.Second/60, cfg.Session.TickInterval())
	assert.Equal(t, 30*time.Second, cfg.Session.AutosaveInterval())
}

func TestLoadWithoutPath(t *testing.T) {
	t.Setenv("GAME_CONFIG", "")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	data := `
player:
  speed: 0.4
  spawn: [1, 90, -2]
world:
  seed: 777
storage:
  backend: redis
session:
  tick_rate: 20
  autosave_seconds: 0
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	t.Setenv("GAME_CONFIG", path)
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 0.4, cfg.Player.Speed)
	assert.Equal(t, 0.5, cfg.Player.SprintSpeed, "незаданные поля берутся из дефолтов")
	assert.Equal(t, [3]float64{1, 90, -2}, cfg.Player.Spawn)
	assert.Equal(t, int64(777), cfg.World.Seed)
	assert.Equal(t, "redis", cfg.Storage.Backend)
	assert.Equal(t, 50*time.Millisecond, cfg.Session.TickInterval())
	assert.Zero(t, cfg.Session.AutosaveInterval())
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yml")
	require.NoError(t, os.WriteFile(path, []byte("player: [oops"), 0o644))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestMetricsPortFallback(t *testing.T) {
	s := ServerConfig{}
	t.Setenv("GAME_METRICS_PORT", "")
	assert.Equal(t, 2112, s.GetMetricsPort())

	t.Setenv("GAME_METRICS_PORT", "9100")
	assert.Equal(t, 9100, s.GetMetricsPort())

	s.MetricsPort = 9200
	assert.Equal(t, 9200, s.GetMetricsPort())
}
