package main

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/kampersanda/elinor/internal/config"
	"github.com/kampersanda/elinor/internal/utils/logger"
)

func main() {
	logger.Init()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		os.Exit(1)
	}

	rootCmd := &cobra.Command{
		Use:   "elinor",
		Short: "Evaluate and compare ranked retrieval results",
		Long: `Elinor computes ranking metrics from judgment and prediction files
and runs statistical significance tests over per-query scores.

Run 'elinor evaluate' to score a run against judgments.
Run 'elinor compare' to test per-query score files against each other.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		evaluateCmd(cfg),
		compareCmd(cfg),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
