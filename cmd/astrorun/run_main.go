package main

import (
	"math/rand"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/astrorun/astrorun/internal/autopilot"
	"github.com/astrorun/astrorun/internal/config"
	"github.com/astrorun/astrorun/internal/feature"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full optimize -> report -> signals pipeline",
		Long: `Run the autopilot pipeline: reuse persisted parameters while fresh,
re-optimize when stale or forced, then write the walk-forward report, the
trailing signals and a run summary.`,
		RunE: runAutopilot,
	}

	cmd.Flags().String("csv", "", "Feature CSV path (required)")
	cmd.Flags().String("config", "", "YAML config path (defaults apply when omitted)")
	cmd.Flags().Bool("force-reopt", false, "Force re-optimization regardless of parameter age")
	cmd.Flags().Int64("seed", 0, "Random seed (0 = time-seeded)")
	_ = cmd.MarkFlagRequired("csv")

	return cmd
}

func runAutopilot(cmd *cobra.Command, args []string) error {
	csvPath, _ := cmd.Flags().GetString("csv")
	configPath, _ := cmd.Flags().GetString("config")
	forceReopt, _ := cmd.Flags().GetBool("force-reopt")
	seed, _ := cmd.Flags().GetInt64("seed")

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	frame, err := feature.LoadCSV(csvPath)
	if err != nil {
		return err
	}

	var rng *rand.Rand
	if seed != 0 {
		rng = rand.New(rand.NewSource(seed))
	}

	summary, err := autopilot.New(cfg, rng).Run(frame, forceReopt)
	if err != nil {
		return err
	}

	log.Info().
		Str("run_id", summary.RunID).
		Str("run_dir", summary.RunDir).
		Bool("reoptimized", summary.Reoptimized).
		Float64("objective", summary.Objective).
		Msg("pipeline finished")
	return nil
}
