package main

import (
	"fmt"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/TheDarkNight21/a16z-oss-api/internal/dataset"
	"github.com/TheDarkNight21/a16z-oss-api/internal/fetcher"
	"github.com/TheDarkNight21/a16z-oss-api/internal/store"
	"github.com/TheDarkNight21/a16z-oss-api/internal/writer"
)

var (
	buildMaxCompanies  int
	buildRosterFile    string
	buildPortfolioFile string
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Run the full extraction and merge pipeline, writing the static JSON tree",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if buildMaxCompanies > 0 {
			cfg.Build.MaxCompanies = buildMaxCompanies
		}

		f := newFetcher()
		snapshot := openSnapshot(cmd)
		if snapshot != nil {
			defer snapshot.Close()
		}

		builder := dataset.NewBuilder(cfg, f, snapshot, writer.New(cfg.Output.Dir))
		summary, err := builder.Run(ctx)
		if err != nil {
			return eris.Wrap(err, "build")
		}

		fmt.Printf("Done. %d companies built (%d enriched, %d quarantined, match rate %.1f%%).\n",
			summary.RosterParsed,
			summary.MergeStats.Matched,
			summary.QuarantinedCount,
			summary.MergeStats.MatchRate,
		)
		return nil
	},
}

// newFetcher builds the page fetcher, routing sources to local files when
// offline flags are set.
func newFetcher() fetcher.Fetcher {
	httpFetcher := fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
		UserAgent:  cfg.Fetch.UserAgent,
		Timeout:    time.Duration(cfg.Fetch.TimeoutSecs) * time.Second,
		MaxRetries: cfg.Fetch.MaxRetries,
		DelayMin:   time.Duration(cfg.Fetch.DelayMinMS) * time.Millisecond,
		DelayMax:   time.Duration(cfg.Fetch.DelayMaxMS) * time.Millisecond,
	})

	paths := map[string]string{}
	if buildRosterFile != "" {
		paths[cfg.Sources.InvestmentListURL] = buildRosterFile
	}
	if buildPortfolioFile != "" {
		paths[cfg.Sources.PortfolioURL] = buildPortfolioFile
	}
	if len(paths) == 0 {
		return httpFetcher
	}
	return fetcher.NewFileFetcher(paths, httpFetcher)
}

// openSnapshot opens and migrates the snapshot store. Failures degrade to a
// snapshot-less build with fresh timestamps.
func openSnapshot(cmd *cobra.Command) store.SnapshotStore {
	if cfg.Snapshot.Path == "" {
		return nil
	}
	st, err := store.NewSQLite(cfg.Snapshot.Path)
	if err != nil {
		zap.L().Warn("snapshot store open failed, timestamps reset to now", zap.Error(err))
		return nil
	}
	if err := st.Migrate(cmd.Context()); err != nil {
		zap.L().Warn("snapshot store migrate failed, timestamps reset to now", zap.Error(err))
		_ = st.Close()
		return nil
	}
	return st
}

func init() {
	buildCmd.Flags().IntVar(&buildMaxCompanies, "max-companies", 0, "limit roster to the first N companies (0 = no limit)")
	buildCmd.Flags().StringVar(&buildRosterFile, "roster-file", "", "read the investment list page from a local file instead of fetching")
	buildCmd.Flags().StringVar(&buildPortfolioFile, "portfolio-file", "", "read the portfolio page from a local file instead of fetching")
	rootCmd.AddCommand(buildCmd)
}
