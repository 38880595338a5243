package backtest

import (
	"time"

	"github.com/astrorun/astrorun/internal/feature"
	"github.com/astrorun/astrorun/internal/params"
	"github.com/astrorun/astrorun/internal/scoring"
	"github.com/astrorun/astrorun/internal/signal"
)

// SignalRow is one bar of the externally consumed signal series.
type SignalRow struct {
	Timestamp time.Time `json:"timestamp"`
	Total     float64   `json:"total"`
	Close     float64   `json:"close"`
	Signal    int       `json:"signal"`
	Direction string    `json:"direction"`
}

// GenerateSignals produces the continuous signal series: a single
// state-machine pass over the whole composite score with no per-window
// resets. Its output intentionally differs in character from the reset passes
// used for report scoring; the two must not be treated as interchangeable.
func GenerateSignals(f feature.Frame, set params.Set, cfg Config) []SignalRow {
	total := scoring.Combine(f, set.Weights())
	positions := signal.New(set.UpTh, set.DownTh, cfg.Signal).Run(total)

	rows := make([]SignalRow, len(f))
	for i, bar := range f {
		rows[i] = SignalRow{
			Timestamp: bar.Timestamp,
			Total:     total[i],
			Close:     bar.Close,
			Signal:    positions[i],
			Direction: signal.Direction(positions[i]),
		}
	}
	return rows
}

// Tail returns the most recent k rows (all rows when k exceeds the series).
func Tail(rows []SignalRow, k int) []SignalRow {
	if k <= 0 {
		return nil
	}
	if k >= len(rows) {
		return rows
	}
	return rows[len(rows)-k:]
}
