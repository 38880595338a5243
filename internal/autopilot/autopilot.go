// Package autopilot runs the optimize -> report -> signals pipeline end to
// end, reusing persisted parameters until they age out.
package autopilot

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/astrorun/astrorun/internal/backtest"
	"github.com/astrorun/astrorun/internal/config"
	"github.com/astrorun/astrorun/internal/feature"
	"github.com/astrorun/astrorun/internal/params"
	"github.com/astrorun/astrorun/internal/tune"
)

// Summary is the machine-readable digest written at the end of a run.
type Summary struct {
	RunID       string    `json:"run_id"`
	RunDir      string    `json:"run_dir"`
	ParamsPath  string    `json:"params_path"`
	Reoptimized bool      `json:"reoptimized"`
	Objective   float64   `json:"objective"`
	Bars        int       `json:"bars"`
	Windows     int       `json:"windows"`
	Horizon     int       `json:"horizon"`
	FeeBps      float64   `json:"fee_bps"`
	Predict     int       `json:"predict"`
	Generated   time.Time `json:"generated"`
}

// Pipeline wires optimization, reporting and signal generation together.
type Pipeline struct {
	cfg config.Config
	rng *rand.Rand
}

// New creates a pipeline. The random source is forwarded to the optimizer;
// nil means time-seeded.
func New(cfg config.Config, rng *rand.Rand) *Pipeline {
	return &Pipeline{cfg: cfg, rng: rng}
}

// NeedReopt reports whether the persisted parameter file is missing or older
// than maxAgeDays.
func NeedReopt(paramsPath string, maxAgeDays int) bool {
	info, err := os.Stat(paramsPath)
	if err != nil {
		return true
	}
	return time.Since(info.ModTime()) > time.Duration(maxAgeDays)*24*time.Hour
}

// Run executes the full pipeline over a frame: obtain parameters (reusing the
// persisted set unless stale or forced), write the walk-forward report, the
// trailing signal series and a summary into a fresh run directory.
func (p *Pipeline) Run(f feature.Frame, forceReopt bool) (Summary, error) {
	set, reoptimized, err := p.parameters(f, forceReopt)
	if err != nil {
		return Summary{}, err
	}

	btCfg := p.cfg.Backtest()
	rows := backtest.Report(f, set, btCfg)
	signals := backtest.Tail(backtest.GenerateSignals(f, set, btCfg), p.cfg.Predict)

	writer, err := backtest.NewWriter(p.cfg.OutDir)
	if err != nil {
		return Summary{}, err
	}
	if err := writer.WriteReport(rows); err != nil {
		return Summary{}, err
	}
	if err := writer.WriteSignals(signals); err != nil {
		return Summary{}, err
	}
	if err := writer.WriteMarkdown(rows, signals); err != nil {
		return Summary{}, err
	}

	summary := Summary{
		RunID:       uuid.NewString(),
		RunDir:      writer.RunDir(),
		ParamsPath:  p.cfg.ParamsPath,
		Reoptimized: reoptimized,
		Objective:   set.Objective,
		Bars:        len(f),
		Windows:     len(rows),
		Horizon:     p.cfg.Horizon,
		FeeBps:      p.cfg.FeeBps,
		Predict:     p.cfg.Predict,
		Generated:   time.Now().UTC(),
	}
	if err := writer.WriteSummary(summary); err != nil {
		return Summary{}, err
	}

	log.Info().Str("run_dir", writer.RunDir()).Int("windows", len(rows)).Msg("autopilot run complete")
	return summary, nil
}

// parameters returns the parameter set to evaluate with, re-optimizing when
// the persisted set is stale, missing or a re-opt is forced.
func (p *Pipeline) parameters(f feature.Frame, force bool) (params.Set, bool, error) {
	if !force && !NeedReopt(p.cfg.ParamsPath, p.cfg.ReoptDays) {
		set, err := params.Load(p.cfg.ParamsPath)
		if err != nil {
			return params.Set{}, false, fmt.Errorf("failed to reuse persisted parameters: %w", err)
		}
		log.Info().Str("path", p.cfg.ParamsPath).Msg("reusing persisted parameters")
		return set, false, nil
	}

	result, err := tune.NewSearcher(p.cfg.Tune(), p.rng).Search(f)
	if err != nil {
		return params.Set{}, false, err
	}
	if err := result.Best.Save(p.cfg.ParamsPath); err != nil {
		return params.Set{}, false, err
	}
	log.Info().Str("path", p.cfg.ParamsPath).Float64("objective", result.Best.Objective).Msg("saved optimized parameters")
	return result.Best, true, nil
}
