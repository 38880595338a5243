// Package tune searches the weight/threshold space by random sampling,
// scoring each candidate with the walk-forward backtest.
package tune

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/astrorun/astrorun/internal/backtest"
	"github.com/astrorun/astrorun/internal/feature"
	"github.com/astrorun/astrorun/internal/params"
	"github.com/astrorun/astrorun/internal/window"
)

// ErrInsufficientData is returned when the frame is too short to build any
// walk-forward fold. Fatal to the optimization call; never retried here.
var ErrInsufficientData = errors.New("insufficient data for walk-forward optimization")

const (
	// minFrameLen is the smallest frame worth optimizing over.
	minFrameLen = 300

	// sentinelObjective disqualifies a trial whose folds all produced empty
	// reports, without aborting the search.
	sentinelObjective = -1e9

	nSplits = 5
)

// Threshold sampling bounds: upTh ~ U(0.05, 0.2), downTh ~ -U(0.05, 0.2).
const (
	thresholdLo = 0.05
	thresholdHi = 0.2
)

// Config defines the random-search settings.
type Config struct {
	Iters    int             `json:"iters"`
	Backtest backtest.Config `json:"backtest"`
}

// DefaultConfig returns the standard 300-trial search.
func DefaultConfig() Config {
	return Config{Iters: 300, Backtest: backtest.DefaultConfig()}
}

// Result holds the outcome of a search.
type Result struct {
	Best    params.Set    `json:"best"`
	Trials  int           `json:"trials"`
	Folds   int           `json:"folds"`
	Elapsed time.Duration `json:"elapsed"`
}

// Searcher runs the random search. The random source is injected so callers
// can fix a seed for reproducible results; a nil source gets time-seeded.
type Searcher struct {
	cfg Config
	rng *rand.Rand
}

// NewSearcher creates a searcher with the given config and random source.
func NewSearcher(cfg Config, rng *rand.Rand) *Searcher {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Searcher{cfg: cfg, rng: rng}
}

// Search samples Iters candidate parameter sets and returns the best by mean
// fold score. Each fold is scored by re-running the report windowing over the
// fold's expanding prefix and averaging sharpe across its sub-windows; the
// trial objective is the mean across folds. Best is tracked by strict
// greater-than, so ties keep the earliest-found trial.
func (s *Searcher) Search(f feature.Frame) (Result, error) {
	start := time.Now()
	n := len(f)
	if n < minFrameLen {
		return Result{}, fmt.Errorf("%w: have %d bars, need %d", ErrInsufficientData, n, minFrameLen)
	}

	minTrain := n / 5
	if minTrain < 200 {
		minTrain = 200
	}
	folds := window.Folds(n, nSplits, minTrain, 0)
	if len(folds) == 0 {
		return Result{}, fmt.Errorf("%w: no usable folds for %d bars (min_train=%d)", ErrInsufficientData, n, minTrain)
	}

	log.Info().Int("bars", n).Int("folds", len(folds)).Int("iters", s.cfg.Iters).Msg("starting random search")

	var best params.Set
	bestObj := 0.0
	haveBest := false

	for trial := 0; trial < s.cfg.Iters; trial++ {
		cand := s.sample()
		obj := s.evaluate(f, cand, folds)

		if !haveBest || obj > bestObj {
			cand.Objective = obj
			best = cand
			bestObj = obj
			haveBest = true
			log.Debug().Int("trial", trial).Float64("objective", obj).Msg("new best candidate")
		}
	}

	elapsed := time.Since(start)
	log.Info().
		Float64("objective", bestObj).
		Dur("elapsed", elapsed).
		Msg("random search complete")

	return Result{Best: best, Trials: s.cfg.Iters, Folds: len(folds), Elapsed: elapsed}, nil
}

// sample draws weights uniformly from the 3-simplex (Dirichlet(1,1,1), i.e.
// normalized unit exponentials) and thresholds from their uniform bands.
func (s *Searcher) sample() params.Set {
	a := s.rng.ExpFloat64()
	g := s.rng.ExpFloat64()
	t := s.rng.ExpFloat64()
	sum := a + g + t

	return params.Set{
		WAstro: a / sum,
		WGann:  g / sum,
		WTech:  t / sum,
		UpTh:   thresholdLo + s.rng.Float64()*(thresholdHi-thresholdLo),
		DownTh: -(thresholdLo + s.rng.Float64()*(thresholdHi-thresholdLo)),
	}
}

// evaluate scores one candidate across all folds. Folds whose expanding
// prefix yields no report rows are skipped; if every fold is skipped the
// trial is disqualified with the sentinel objective.
func (s *Searcher) evaluate(f feature.Frame, cand params.Set, folds []window.Fold) float64 {
	sum := 0.0
	scored := 0
	for _, fold := range folds {
		rows := backtest.Report(f[:fold.ValEnd], cand, s.cfg.Backtest)
		if avg, ok := backtest.MeanSharpe(rows); ok {
			sum += avg
			scored++
		}
	}
	if scored == 0 {
		return sentinelObjective
	}
	return sum / float64(scored)
}
