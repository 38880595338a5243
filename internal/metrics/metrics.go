// Package metrics computes return-based performance statistics for a
// position series. It never returns errors: degenerate inputs (zero variance,
// empty overlap of positions and forward returns) degrade to zero-valued
// statistics instead of propagating division failures.
package metrics

import (
	"math"
	"time"
)

// Window is one row of the backtest report: the performance of a single
// state-machine pass over one contiguous index range.
type Window struct {
	Sharpe    float64   `json:"sharpe"`
	Sortino   float64   `json:"sortino"`
	HitRate   float64   `json:"hit_rate"`
	AvgReturn float64   `json:"avg_return"`
	Trades    int       `json:"trades"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
}

// Compute evaluates a position series against its close prices.
//
// Forward returns look `horizon` bars ahead, so the final `horizon` bars carry
// no return and are dropped from the return series; trades are still counted
// over the full, undropped series. Fees are charged in basis points per unit
// of position change.
func Compute(positions []int, closes []float64, horizon int, feeBps float64) Window {
	n := len(positions)
	if len(closes) < n {
		n = len(closes)
	}

	trades := 0
	for t := 1; t < n; t++ {
		if positions[t] != positions[t-1] {
			trades++
		}
	}

	var returns []float64
	for t := 0; t+horizon < n; t++ {
		fwd := closes[t+horizon]/closes[t] - 1.0
		r := float64(positions[t]) * fwd
		if t > 0 {
			r -= math.Abs(float64(positions[t]-positions[t-1])) * feeBps / 10000.0
		}
		returns = append(returns, r)
	}

	w := Window{Trades: trades}
	if len(returns) == 0 {
		return w
	}

	avg := mean(returns)
	sd := stddev(returns, avg)

	var neg []float64
	hits := 0
	for _, r := range returns {
		if r < 0 {
			neg = append(neg, r)
		}
		if r > 0 {
			hits++
		}
	}

	w.AvgReturn = avg
	w.HitRate = float64(hits) / float64(len(returns))
	if sd > 0 {
		w.Sharpe = avg / sd
	}
	if len(neg) > 0 {
		if dd := stddev(neg, mean(neg)); dd > 0 {
			w.Sortino = avg / dd
		}
	}
	return w
}

func mean(xs []float64) float64 {
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// stddev is the population standard deviation (ddof=0).
func stddev(xs []float64, mu float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	ss := 0.0
	for _, x := range xs {
		d := x - mu
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(xs)))
}
