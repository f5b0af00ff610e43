package main

import (
	"encoding/json"
	"os"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/TheDarkNight21/a16z-oss-api/internal/extract"
	"github.com/TheDarkNight21/a16z-oss-api/internal/fetcher"
	"github.com/TheDarkNight21/a16z-oss-api/internal/normalize"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Debug extraction of a single source, dumped to stdout as JSON",
}

var extractRosterCmd = &cobra.Command{
	Use:   "roster",
	Short: "Extract raw companies from the investment list page",
	RunE: func(cmd *cobra.Command, args []string) error {
		page, err := debugFetcher().FetchPage(cmd.Context(), cfg.Sources.InvestmentListURL)
		if err != nil {
			return eris.Wrap(err, "extract roster: fetch")
		}
		entries, err := extract.Roster(page, cfg.Sources.InvestmentListURL)
		if err != nil {
			return eris.Wrap(err, "extract roster")
		}
		companies := normalize.NewNormalizer(cfg.Sources.InvestmentListURL).ParseCompanies(entries)
		return dumpJSON(companies)
	},
}

var extractPortfolioCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Extract enrichment records from the portfolio page",
	RunE: func(cmd *cobra.Command, args []string) error {
		page, err := debugFetcher().FetchPage(cmd.Context(), cfg.Sources.PortfolioURL)
		if err != nil {
			return eris.Wrap(err, "extract portfolio: fetch")
		}
		raws, taxonomy, err := extract.Portfolio(page)
		if err != nil {
			return eris.Wrap(err, "extract portfolio")
		}
		enrichments := normalize.NewPortfolioNormalizer(cfg.Sources.PortfolioURL).ParseAll(raws)
		return dumpJSON(map[string]any{
			"companies": enrichments,
			"taxonomy":  taxonomy,
		})
	},
}

func debugFetcher() fetcher.Fetcher {
	return fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
		UserAgent:  cfg.Fetch.UserAgent,
		Timeout:    time.Duration(cfg.Fetch.TimeoutSecs) * time.Second,
		MaxRetries: cfg.Fetch.MaxRetries,
		DelayMin:   time.Duration(cfg.Fetch.DelayMinMS) * time.Millisecond,
		DelayMax:   time.Duration(cfg.Fetch.DelayMaxMS) * time.Millisecond,
	})
}

func dumpJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func init() {
	extractCmd.AddCommand(extractRosterCmd)
	extractCmd.AddCommand(extractPortfolioCmd)
	rootCmd.AddCommand(extractCmd)
}
