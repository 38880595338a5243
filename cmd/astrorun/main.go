package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const (
	appName = "astrorun"
	version = "v1.2.0"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	rootCmd := &cobra.Command{
		Use:     appName,
		Short:   "Composite-score signal generation and walk-forward evaluation",
		Version: version,
		Long: `AstroRun turns per-bar composite scores (astro/gann/technical) into trading
signals and evaluates weight/threshold configurations with walk-forward
backtesting and random search.`,
	}

	rootCmd.PersistentFlags().String("log-level", "info", "Log level (trace|debug|info|warn|error)")
	cobra.OnInitialize(func() {
		level, err := zerolog.ParseLevel(mustString(rootCmd, "log-level"))
		if err != nil {
			level = zerolog.InfoLevel
		}
		zerolog.SetGlobalLevel(level)
	})

	rootCmd.AddCommand(newOptimizeCmd())
	rootCmd.AddCommand(newReportCmd())
	rootCmd.AddCommand(newSignalsCmd())
	rootCmd.AddCommand(newRunCmd())

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func mustString(cmd *cobra.Command, name string) string {
	v, _ := cmd.PersistentFlags().GetString(name)
	return v
}
