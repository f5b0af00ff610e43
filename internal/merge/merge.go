// Package merge reconciles the canonical roster against portfolio
// enrichment by exact slug match.
package merge

import (
	"math"

	"go.uber.org/zap"

	"github.com/TheDarkNight21/a16z-oss-api/internal/model"
)

// Result is the full outcome of a merge run: every canonical company
// (enriched or not), the quarantined enrichment records, and run stats.
type Result struct {
	Companies   []model.Company
	Quarantined []model.Quarantined
	Stats       model.MergeStats
}

// Enrich merges portfolio enrichment into the canonical roster. The roster
// is the closed identity universe: enrichment can annotate its members but
// never introduce new ones. Matching is exact slug equality, no fuzzing.
// Enrichment records with an empty slug carry no identity and are skipped;
// records whose slug has no roster counterpart are quarantined, never
// dropped. The input slice is not modified.
func Enrich(roster []model.Company, portfolio []model.Enrichment) Result {
	companies := make([]model.Company, len(roster))
	copy(companies, roster)

	// Roster slugs should already be unique; a duplicate is an upstream
	// extraction anomaly. First occurrence wins, the rest are surfaced.
	bySlug := make(map[string]int, len(companies))
	duplicates := 0
	for i, c := range companies {
		if _, ok := bySlug[c.Slug]; ok {
			duplicates++
			zap.L().Warn("merge: duplicate roster slug, keeping first occurrence",
				zap.String("slug", c.Slug),
				zap.String("name", c.Name),
			)
			continue
		}
		bySlug[c.Slug] = i
	}

	matched := 0
	var quarantined []model.Quarantined
	for _, rec := range portfolio {
		if rec.Slug == "" {
			continue
		}
		if i, ok := bySlug[rec.Slug]; ok {
			companies[i] = apply(companies[i], rec)
			matched++
		} else {
			quarantined = append(quarantined, model.Quarantined{Name: rec.Name, Slug: rec.Slug})
		}
	}

	stats := model.MergeStats{
		RosterCount:         len(roster),
		PortfolioCount:      len(portfolio),
		Matched:             matched,
		UnmatchedPortfolio:  len(quarantined),
		DuplicateRosterSlug: duplicates,
		MatchRate:           matchRate(matched, len(portfolio)),
	}

	return Result{Companies: companies, Quarantined: quarantined, Stats: stats}
}

// apply enriches one canonical company and returns the updated copy.
// Enrichment is additive only: it fills fields that are currently absent or
// unknown and never overwrites a value the roster supplied. Sectors and
// stages are the exception, merged as an order-preserving set union. A match
// is itself evidence, so portfolio provenance is stamped unconditionally.
func apply(c model.Company, rec model.Enrichment) model.Company {
	if c.Description == nil && rec.Description != nil {
		c.Description = rec.Description
	}
	if c.Website == nil && rec.Website != nil {
		c.Website = rec.Website
	}
	if (c.Status == "" || c.Status == model.StatusUnknown) && rec.Status != "" {
		c.Status = rec.Status
	}
	c.Sectors = unionTags(c.Sectors, rec.Sectors)
	c.Stages = unionTags(c.Stages, rec.Stages)
	if c.A16zCompanyID == nil && rec.A16zCompanyID != "" {
		id := rec.A16zCompanyID
		c.A16zCompanyID = &id
	}

	c.Evidence.InPortfolio = true
	if rec.SourceURL != "" {
		u := rec.SourceURL
		c.SourceURLs.Portfolio = &u
	}

	return c
}

// unionTags appends tags from extra that existing does not already carry,
// preserving existing order and first-occurrence order of the additions.
func unionTags(existing, extra []string) []string {
	if len(extra) == 0 {
		return existing
	}
	seen := make(map[string]bool, len(existing))
	out := make([]string, 0, len(existing)+len(extra))
	for _, tag := range existing {
		if !seen[tag] {
			seen[tag] = true
			out = append(out, tag)
		}
	}
	for _, tag := range extra {
		if !seen[tag] {
			seen[tag] = true
			out = append(out, tag)
		}
	}
	return out
}

// matchRate is the matched percentage rounded to one decimal, 0.0 for an
// empty portfolio.
func matchRate(matched, total int) float64 {
	if total == 0 {
		return 0.0
	}
	return math.Round(100*float64(matched)/float64(total)*10) / 10
}
