package dataset

import (
	"github.com/TheDarkNight21/a16z-oss-api/internal/merge"
	"github.com/TheDarkNight21/a16z-oss-api/internal/model"
)

// RosterSourceDoc is the provenance document for the investment list.
type RosterSourceDoc struct {
	URL                string `json:"url"`
	CompaniesExtracted int    `json:"companies_extracted"`
}

// PortfolioSourceDoc is the provenance document for the portfolio page.
type PortfolioSourceDoc struct {
	URL                string  `json:"url"`
	CompaniesExtracted int     `json:"companies_extracted"`
	Matched            int     `json:"matched"`
	MatchRate          float64 `json:"match_rate"`
}

// BuildTree assembles the logical output tree: a mapping of relative
// document path to JSON-serializable value. The quarantine document is
// present only when the quarantine list is non-empty.
func BuildTree(result merge.Result, indexes Indexes, meta model.Meta, rosterExtracted int, rosterURL, portfolioURL string) map[string]any {
	tree := map[string]any{
		"meta.json":          meta,
		"companies/all.json": result.Companies,
	}

	for _, c := range result.Companies {
		tree["companies/"+c.Slug+".json"] = c
	}
	for _, idx := range indexes.Sectors {
		tree["sectors/"+idx.ID+".json"] = idx
	}
	for _, idx := range indexes.Stages {
		tree["stages/"+idx.ID+".json"] = idx
	}
	for _, idx := range indexes.Statuses {
		tree["statuses/"+idx.ID+".json"] = idx
	}

	tree["sources/investment-list.json"] = RosterSourceDoc{
		URL:                rosterURL,
		CompaniesExtracted: rosterExtracted,
	}
	tree["sources/portfolio.json"] = PortfolioSourceDoc{
		URL:                portfolioURL,
		CompaniesExtracted: result.Stats.PortfolioCount,
		Matched:            result.Stats.Matched,
		MatchRate:          result.Stats.MatchRate,
	}
	if len(result.Quarantined) > 0 {
		tree["sources/quarantine.json"] = result.Quarantined
	}

	return tree
}
