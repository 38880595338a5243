package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 3, cfg.MinHoldBars)
	assert.Equal(t, 3, cfg.CooldownBars)
	assert.Equal(t, 1, cfg.Horizon)
	assert.Equal(t, 5.0, cfg.FeeBps)
	assert.Equal(t, 300, cfg.Iters)
	assert.Equal(t, 24, cfg.Predict)
	assert.Equal(t, 14, cfg.ReoptDays)
	assert.Equal(t, "best_params.json", cfg.ParamsPath)
	assert.Equal(t, "runs", cfg.OutDir)
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := "min_hold_bars: 5\ncooldown_bars: 2\niters: 50\nfee_bps: 2.5\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.MinHoldBars)
	assert.Equal(t, 2, cfg.CooldownBars)
	assert.Equal(t, 50, cfg.Iters)
	assert.Equal(t, 2.5, cfg.FeeBps)
	assert.Equal(t, 1, cfg.Horizon, "untouched fields keep their defaults")
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("horizon: 0\n"), 0644))

	_, err := Load(path)
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestConfig_DerivedSettings(t *testing.T) {
	cfg := Default()
	cfg.MinHoldBars = 4
	cfg.CooldownBars = 1
	cfg.Horizon = 2
	cfg.Iters = 10

	sig := cfg.Signal()
	assert.Equal(t, 4, sig.MinHold)
	assert.Equal(t, 1, sig.Cooldown)

	bt := cfg.Backtest()
	assert.Equal(t, 2, bt.Horizon)
	assert.Equal(t, sig, bt.Signal)

	tn := cfg.Tune()
	assert.Equal(t, 10, tn.Iters)
	assert.Equal(t, bt, tn.Backtest)
}
