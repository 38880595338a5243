// Package backtest assembles per-window performance reports and the
// continuous signal series consumed downstream.
package backtest

import (
	"github.com/astrorun/astrorun/internal/feature"
	"github.com/astrorun/astrorun/internal/metrics"
	"github.com/astrorun/astrorun/internal/params"
	"github.com/astrorun/astrorun/internal/scoring"
	"github.com/astrorun/astrorun/internal/signal"
	"github.com/astrorun/astrorun/internal/window"
)

// Config carries the evaluation settings shared by report and signal
// generation.
type Config struct {
	Horizon int           `json:"horizon"`
	FeeBps  float64       `json:"fee_bps"`
	Signal  signal.Config `json:"signal"`
}

// DefaultConfig returns 1-bar horizon, 5 bps fees and the standard
// hold/cooldown settings.
func DefaultConfig() Config {
	return Config{Horizon: 1, FeeBps: 5.0, Signal: signal.DefaultConfig()}
}

// Report runs the walk-forward backtest: the frame is cut into report windows,
// each window gets a fresh state-machine pass over its slice of the composite
// score, and each pass yields one metrics row tagged with the window's first
// and last timestamps.
func Report(f feature.Frame, set params.Set, cfg Config) []metrics.Window {
	total := scoring.Combine(f, set.Weights())
	closes := f.Closes()
	machine := signal.New(set.UpTh, set.DownTh, cfg.Signal)

	var rows []metrics.Window
	for _, span := range window.Backtest(len(f)) {
		positions := machine.Run(total[span.Start:span.End])
		row := metrics.Compute(positions, closes[span.Start:span.End], cfg.Horizon, cfg.FeeBps)
		row.Start = f[span.Start].Timestamp
		row.End = f[span.End-1].Timestamp
		rows = append(rows, row)
	}
	return rows
}

// MeanSharpe averages the sharpe column of a report. ok is false when the
// report has no rows.
func MeanSharpe(rows []metrics.Window) (float64, bool) {
	if len(rows) == 0 {
		return 0, false
	}
	sum := 0.0
	for _, row := range rows {
		sum += row.Sharpe
	}
	return sum / float64(len(rows)), true
}
