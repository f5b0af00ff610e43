package dataset

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/TheDarkNight21/a16z-oss-api/internal/config"
	"github.com/TheDarkNight21/a16z-oss-api/internal/extract"
	"github.com/TheDarkNight21/a16z-oss-api/internal/fetcher"
	"github.com/TheDarkNight21/a16z-oss-api/internal/merge"
	"github.com/TheDarkNight21/a16z-oss-api/internal/model"
	"github.com/TheDarkNight21/a16z-oss-api/internal/normalize"
	"github.com/TheDarkNight21/a16z-oss-api/internal/store"
)

// TreeWriter persists a logical document tree.
type TreeWriter interface {
	WriteTree(ctx context.Context, tree map[string]any) error
}

// Builder runs the full extraction -> normalize -> merge -> derive -> write
// pipeline.
type Builder struct {
	cfg      *config.Config
	fetcher  fetcher.Fetcher
	snapshot store.SnapshotStore
	writer   TreeWriter
}

// NewBuilder creates a Builder. snapshot may be nil, in which case first-seen
// timestamps reset to the current run.
func NewBuilder(cfg *config.Config, f fetcher.Fetcher, snapshot store.SnapshotStore, w TreeWriter) *Builder {
	return &Builder{cfg: cfg, fetcher: f, snapshot: snapshot, writer: w}
}

// Summary reports the outcome of a build run.
type Summary struct {
	RosterExtracted    int              `json:"roster_extracted"`
	RosterParsed       int              `json:"roster_parsed"`
	PortfolioExtracted int              `json:"portfolio_extracted"`
	QuarantinedCount   int              `json:"quarantined_count"`
	SectorCount        int              `json:"sector_count"`
	StageCount         int              `json:"stage_count"`
	StatusCount        int              `json:"status_count"`
	MergeStats         model.MergeStats `json:"merge_stats"`
	Meta               model.Meta       `json:"meta"`
}

// Run executes one full build. The investment list is the primary source:
// an empty roster aborts the run. Portfolio extraction failing degrades to a
// canonical-only build with a 0.0 match rate.
func (b *Builder) Run(ctx context.Context) (*Summary, error) {
	log := zap.L()
	rosterURL := b.cfg.Sources.InvestmentListURL
	portfolioURL := b.cfg.Sources.PortfolioURL

	// Step 1: extract the investment list.
	log.Info("build: extracting investment list", zap.String("url", rosterURL))
	rosterPage, err := b.fetcher.FetchPage(ctx, rosterURL)
	if err != nil {
		return nil, eris.Wrap(err, "build: fetch investment list")
	}
	entries, err := extract.Roster(rosterPage, rosterURL)
	if err != nil {
		return nil, eris.Wrap(err, "build: extract investment list")
	}
	if len(entries) == 0 {
		return nil, eris.New("build: no companies extracted from investment list")
	}
	if limit := b.cfg.Build.MaxCompanies; limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	log.Info("build: roster extracted", zap.Int("entries", len(entries)))

	// Step 2: thread prior first-seen timestamps, then normalize.
	b.carryFirstSeen(ctx, entries)
	normalizer := normalize.NewNormalizer(rosterURL)
	companies := normalizer.ParseCompanies(entries)
	log.Info("build: roster normalized", zap.Int("companies", len(companies)))

	// Step 3: extract portfolio enrichment. Failure here degrades the
	// build rather than aborting it.
	enrichments := b.extractPortfolio(ctx, portfolioURL)

	// Step 4: merge.
	result := merge.Enrich(companies, enrichments)
	log.Info("build: merged",
		zap.Int("matched", result.Stats.Matched),
		zap.Int("quarantined", result.Stats.UnmatchedPortfolio),
		zap.Float64("match_rate", result.Stats.MatchRate),
	)

	// Step 5: derive views.
	indexes := BuildIndexes(result.Companies)
	meta := BuildMeta(result.Companies, rosterURL, portfolioURL, result.Stats.MatchRate, time.Now())

	// Step 6: write the static tree.
	tree := BuildTree(result, indexes, meta, len(entries), rosterURL, portfolioURL)
	if err := b.writer.WriteTree(ctx, tree); err != nil {
		return nil, eris.Wrap(err, "build: write output tree")
	}

	if b.snapshot != nil {
		if err := b.snapshot.SaveSnapshot(ctx, result.Companies, result.Stats); err != nil {
			log.Warn("build: snapshot save failed", zap.Error(err))
		}
	}

	return &Summary{
		RosterExtracted:    len(entries),
		RosterParsed:       len(result.Companies),
		PortfolioExtracted: result.Stats.PortfolioCount,
		QuarantinedCount:   result.Stats.UnmatchedPortfolio,
		SectorCount:        len(indexes.Sectors),
		StageCount:         len(indexes.Stages),
		StatusCount:        len(indexes.Statuses),
		MergeStats:         result.Stats,
		Meta:               meta,
	}, nil
}

// carryFirstSeen overwrites extractor-stamped first-seen timestamps with
// values from the prior run's snapshot, so first_seen survives rebuilds.
// Snapshot failures degrade to the fresh timestamps.
func (b *Builder) carryFirstSeen(ctx context.Context, entries []model.RosterEntry) {
	if b.snapshot == nil {
		return
	}
	prior, err := b.snapshot.PriorFirstSeen(ctx)
	if err != nil {
		zap.L().Warn("build: snapshot read failed, timestamps reset to now", zap.Error(err))
		return
	}
	carried := 0
	for i := range entries {
		if first, ok := prior[entries[i].Slug]; ok && first != "" {
			entries[i].FirstSeenISO = first
			carried++
		}
	}
	zap.L().Info("build: carried first-seen timestamps", zap.Int("carried", carried))
}

// extractPortfolio fetches and normalizes the enrichment source. Any failure
// is logged and an empty set returned; the build continues canonical-only.
func (b *Builder) extractPortfolio(ctx context.Context, portfolioURL string) []model.Enrichment {
	log := zap.L()
	page, err := b.fetcher.FetchPage(ctx, portfolioURL)
	if err != nil {
		log.Warn("build: portfolio fetch failed, continuing with roster only", zap.Error(err))
		return nil
	}
	raws, taxonomy, err := extract.Portfolio(page)
	if err != nil {
		log.Warn("build: portfolio extraction failed, continuing with roster only", zap.Error(err))
		return nil
	}

	enrichments := normalize.NewPortfolioNormalizer(portfolioURL).ParseAll(raws)
	log.Info("build: portfolio extracted",
		zap.Int("companies", len(enrichments)),
		zap.Strings("categories", taxonomy.Categories),
		zap.Strings("stages", taxonomy.Stages),
		zap.Strings("statuses", taxonomy.Statuses),
	)
	return enrichments
}
