package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/TheDarkNight21/a16z-oss-api/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "a16z-api",
	Short: "Static JSON API builder for a16z investments",
	Long:  "Scrapes the a16z investment list and portfolio pages, reconciles the two sources into canonical company records, and emits a static JSON document tree.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
