package dataset

import (
	"math"
	"time"

	"github.com/TheDarkNight21/a16z-oss-api/internal/model"
)

const schemaVersion = "1.0.0"

const coverageDisclaimer = "This dataset includes only publicly disclosed " +
	"investments from a16z's investment list. Investments that are not " +
	"publicly announced or not disclosable are excluded."

const timeLayout = "2006-01-02T15:04:05Z"

// BuildMeta computes the run-level aggregate over the final canonical set:
// per-status/sector/stage counts and field-coverage metrics, each percentage
// rounded to one decimal and 0.0 for an empty set.
func BuildMeta(companies []model.Company, rosterURL, portfolioURL string, matchRate float64, now time.Time) model.Meta {
	total := len(companies)
	statusCounts := map[string]int{}
	sectorCounts := map[string]int{}
	stageCounts := map[string]int{}

	var nWebsite, nDescription, nSector, nStage, nStatus int

	for _, c := range companies {
		status := c.Status
		if status == "" {
			status = model.StatusUnknown
		}
		statusCounts[string(status)]++
		if status != model.StatusUnknown {
			nStatus++
		}

		for _, sector := range c.Sectors {
			sectorCounts[sector]++
		}
		if len(c.Sectors) > 0 {
			nSector++
		}

		for _, stage := range c.Stages {
			stageCounts[stage]++
		}
		if len(c.Stages) > 0 {
			nStage++
		}

		if c.Website != nil {
			nWebsite++
		}
		if c.Description != nil {
			nDescription++
		}
	}

	pct := func(n int) float64 {
		if total == 0 {
			return 0.0
		}
		return math.Round(100*float64(n)/float64(total)*10) / 10
	}

	return model.Meta{
		LastUpdatedISO: now.UTC().Format(timeLayout),
		SchemaVersion:  schemaVersion,
		TotalCompanies: total,
		CountsByStatus: statusCounts,
		CountsBySector: sectorCounts,
		CountsByStage:  stageCounts,
		SourceEntryURLs: map[string]string{
			"investment_list": rosterURL,
			"portfolio":       portfolioURL,
		},
		CoverageDisclaimer: coverageDisclaimer,
		ExtractionMetrics: model.ExtractionMetrics{
			RosterParsedCount:  total,
			PortfolioMatchRate: matchRate,
			PctWithWebsite:     pct(nWebsite),
			PctWithDescription: pct(nDescription),
			PctWithSector:      pct(nSector),
			PctWithStage:       pct(nStage),
			PctWithStatus:      pct(nStatus),
		},
	}
}
