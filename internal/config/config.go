// Package config loads the application configuration from YAML with
// defaulted, validated fields.
package config

import (
	"fmt"
	"os"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/astrorun/astrorun/internal/backtest"
	"github.com/astrorun/astrorun/internal/signal"
	"github.com/astrorun/astrorun/internal/tune"
)

var validate = validator.New()

// Config is the process configuration. Every field has a default, so an
// absent or empty config file yields a fully usable configuration.
type Config struct {
	MinHoldBars  int     `yaml:"min_hold_bars" default:"3" validate:"gte=0"`
	CooldownBars int     `yaml:"cooldown_bars" default:"3" validate:"gte=0"`
	Horizon      int     `yaml:"horizon" default:"1" validate:"gte=1"`
	FeeBps       float64 `yaml:"fee_bps" default:"5.0" validate:"gte=0"`
	Iters        int     `yaml:"iters" default:"300" validate:"gte=1"`
	Predict      int     `yaml:"predict" default:"24" validate:"gte=1"`
	ReoptDays    int     `yaml:"reopt_days" default:"14" validate:"gte=0"`
	ParamsPath   string  `yaml:"params_path" default:"best_params.json"`
	OutDir       string  `yaml:"out_dir" default:"runs"`
}

// Default returns the configuration with every field at its default.
func Default() Config {
	var cfg Config
	if err := defaults.Set(&cfg); err != nil {
		panic(fmt.Sprintf("config defaults: %v", err))
	}
	return cfg
}

// Load reads a YAML config file over the defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}
	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Signal returns the state-machine settings carried by the config.
func (c Config) Signal() signal.Config {
	return signal.Config{MinHold: c.MinHoldBars, Cooldown: c.CooldownBars}
}

// Backtest returns the evaluation settings carried by the config.
func (c Config) Backtest() backtest.Config {
	return backtest.Config{Horizon: c.Horizon, FeeBps: c.FeeBps, Signal: c.Signal()}
}

// Tune returns the random-search settings carried by the config.
func (c Config) Tune() tune.Config {
	return tune.Config{Iters: c.Iters, Backtest: c.Backtest()}
}
