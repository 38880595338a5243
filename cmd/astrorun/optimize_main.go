package main

import (
	"math/rand"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/astrorun/astrorun/internal/feature"
	"github.com/astrorun/astrorun/internal/tune"
)

func newOptimizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Random-search the weight/threshold space",
		Long:  "Sample candidate weight/threshold sets and keep the best by mean walk-forward Sharpe.",
		RunE:  runOptimize,
	}

	cmd.Flags().String("csv", "", "Feature CSV path (required)")
	cmd.Flags().Int("iters", 300, "Number of random trials")
	cmd.Flags().Int("horizon", 1, "Forward-return horizon in bars")
	cmd.Flags().Float64("fee-bps", 5.0, "Fee in basis points per unit position change")
	cmd.Flags().Int64("seed", 0, "Random seed (0 = time-seeded)")
	cmd.Flags().String("params", "best_params.json", "Output path for the best parameter set")
	_ = cmd.MarkFlagRequired("csv")

	return cmd
}

func runOptimize(cmd *cobra.Command, args []string) error {
	csvPath, _ := cmd.Flags().GetString("csv")
	iters, _ := cmd.Flags().GetInt("iters")
	horizon, _ := cmd.Flags().GetInt("horizon")
	feeBps, _ := cmd.Flags().GetFloat64("fee-bps")
	seed, _ := cmd.Flags().GetInt64("seed")
	paramsPath, _ := cmd.Flags().GetString("params")

	frame, err := feature.LoadCSV(csvPath)
	if err != nil {
		return err
	}

	cfg := tune.DefaultConfig()
	cfg.Iters = iters
	cfg.Backtest.Horizon = horizon
	cfg.Backtest.FeeBps = feeBps

	var rng *rand.Rand
	if seed != 0 {
		rng = rand.New(rand.NewSource(seed))
	}

	result, err := tune.NewSearcher(cfg, rng).Search(frame)
	if err != nil {
		return err
	}
	if err := result.Best.Save(paramsPath); err != nil {
		return err
	}

	log.Info().
		Str("params", paramsPath).
		Float64("objective", result.Best.Objective).
		Int("trials", result.Trials).
		Dur("elapsed", result.Elapsed).
		Msg("optimization complete")
	return nil
}
