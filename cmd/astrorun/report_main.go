package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/astrorun/astrorun/internal/backtest"
	"github.com/astrorun/astrorun/internal/feature"
	"github.com/astrorun/astrorun/internal/params"
	"github.com/astrorun/astrorun/internal/signal"
)

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Run the walk-forward backtest report",
		RunE:  runReport,
	}

	cmd.Flags().String("csv", "", "Feature CSV path (required)")
	cmd.Flags().String("params", "best_params.json", "Parameter set JSON path")
	cmd.Flags().Int("horizon", 1, "Forward-return horizon in bars")
	cmd.Flags().Float64("fee-bps", 5.0, "Fee in basis points per unit position change")
	cmd.Flags().Int("min-hold", 3, "Minimum hold bars")
	cmd.Flags().Int("cooldown", 3, "Cooldown bars after a flip")
	cmd.Flags().String("out", "runs", "Output directory for run artifacts")
	_ = cmd.MarkFlagRequired("csv")

	return cmd
}

func runReport(cmd *cobra.Command, args []string) error {
	csvPath, _ := cmd.Flags().GetString("csv")
	paramsPath, _ := cmd.Flags().GetString("params")
	outDir, _ := cmd.Flags().GetString("out")

	frame, err := feature.LoadCSV(csvPath)
	if err != nil {
		return err
	}
	set, err := params.Load(paramsPath)
	if err != nil {
		return err
	}

	rows := backtest.Report(frame, set, backtestConfig(cmd))

	writer, err := backtest.NewWriter(outDir)
	if err != nil {
		return err
	}
	if err := writer.WriteReport(rows); err != nil {
		return err
	}

	meanSharpe, _ := backtest.MeanSharpe(rows)
	log.Info().
		Str("run_dir", writer.RunDir()).
		Int("windows", len(rows)).
		Float64("mean_sharpe", meanSharpe).
		Msg("backtest report written")
	return nil
}

func backtestConfig(cmd *cobra.Command) backtest.Config {
	horizon, _ := cmd.Flags().GetInt("horizon")
	feeBps, _ := cmd.Flags().GetFloat64("fee-bps")
	minHold, _ := cmd.Flags().GetInt("min-hold")
	cooldown, _ := cmd.Flags().GetInt("cooldown")

	return backtest.Config{
		Horizon: horizon,
		FeeBps:  feeBps,
		Signal:  signal.Config{MinHold: minHold, Cooldown: cooldown},
	}
}
