package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/astrorun/astrorun/internal/backtest"
	"github.com/astrorun/astrorun/internal/feature"
	"github.com/astrorun/astrorun/internal/params"
)

func newSignalsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "signals",
		Short: "Print the trailing continuous signal series",
		Long:  "Generate the continuous (non-reset) signal series over the whole history and print the trailing bars.",
		RunE:  runSignals,
	}

	cmd.Flags().String("csv", "", "Feature CSV path (required)")
	cmd.Flags().String("params", "best_params.json", "Parameter set JSON path")
	cmd.Flags().Int("last", 24, "Number of trailing bars to print")
	cmd.Flags().Int("horizon", 1, "Forward-return horizon in bars")
	cmd.Flags().Float64("fee-bps", 5.0, "Fee in basis points per unit position change")
	cmd.Flags().Int("min-hold", 3, "Minimum hold bars")
	cmd.Flags().Int("cooldown", 3, "Cooldown bars after a flip")
	_ = cmd.MarkFlagRequired("csv")

	return cmd
}

func runSignals(cmd *cobra.Command, args []string) error {
	csvPath, _ := cmd.Flags().GetString("csv")
	paramsPath, _ := cmd.Flags().GetString("params")
	last, _ := cmd.Flags().GetInt("last")

	frame, err := feature.LoadCSV(csvPath)
	if err != nil {
		return err
	}
	set, err := params.Load(paramsPath)
	if err != nil {
		return err
	}

	rows := backtest.Tail(backtest.GenerateSignals(frame, set, backtestConfig(cmd)), last)

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TIMESTAMP\tTOTAL\tCLOSE\tSIGNAL\tDIRECTION")
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%.4f\t%.4f\t%+d\t%s\n",
			row.Timestamp.Format(time.RFC3339), row.Total, row.Close, row.Signal, row.Direction)
	}
	return tw.Flush()
}
