package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheDarkNight21/a16z-oss-api/internal/model"
)

func strPtr(s string) *string { return &s }

func canonical(name, slug string) model.Company {
	return model.Company{
		ID:       "a16z:" + slug,
		Name:     name,
		Slug:     slug,
		Status:   model.StatusUnknown,
		Sectors:  []string{},
		Stages:   []string{},
		Evidence: model.SourceEvidence{InInvestmentList: true},
	}
}

func TestEnrich_AdditiveNeverOverwrites(t *testing.T) {
	c := canonical("Test Co", "test-co")
	c.Description = strPtr("A")
	c.Website = strPtr("https://roster.example")
	c.Status = model.StatusActive

	result := Enrich([]model.Company{c}, []model.Enrichment{{
		Name:        "Test Co",
		Slug:        "test-co",
		Description: strPtr("B"),
		Website:     strPtr("https://portfolio.example"),
		Status:      model.StatusExited,
	}})

	require.Len(t, result.Companies, 1)
	got := result.Companies[0]
	assert.Equal(t, "A", *got.Description)
	assert.Equal(t, "https://roster.example", *got.Website)
	assert.Equal(t, model.StatusActive, got.Status)
}

func TestEnrich_FillsGaps(t *testing.T) {
	result := Enrich([]model.Company{canonical("Test Co", "test-co")}, []model.Enrichment{{
		Name:          "Test Co",
		Slug:          "test-co",
		A16zCompanyID: "4321",
		Description:   strPtr("desc"),
		Website:       strPtr("https://test.co"),
		Status:        model.StatusActive,
		SourceURL:     "https://a16z.com/portfolio/",
	}})

	require.Len(t, result.Companies, 1)
	got := result.Companies[0]
	assert.Equal(t, "desc", *got.Description)
	assert.Equal(t, "https://test.co", *got.Website)
	assert.Equal(t, model.StatusActive, got.Status)
	require.NotNil(t, got.A16zCompanyID)
	assert.Equal(t, "4321", *got.A16zCompanyID)
}

func TestEnrich_MatchStampsEvidenceUnconditionally(t *testing.T) {
	// Even a no-op enrichment records portfolio evidence and provenance.
	result := Enrich([]model.Company{canonical("Test Co", "test-co")}, []model.Enrichment{{
		Name:      "Test Co",
		Slug:      "test-co",
		SourceURL: "https://a16z.com/portfolio/",
	}})

	got := result.Companies[0]
	assert.True(t, got.Evidence.InPortfolio)
	require.NotNil(t, got.SourceURLs.Portfolio)
	assert.Equal(t, "https://a16z.com/portfolio/", *got.SourceURLs.Portfolio)
}

func TestEnrich_TagUnionPreservesOrderAndDedupes(t *testing.T) {
	c := canonical("Test Co", "test-co")
	c.Sectors = []string{"fintech"}
	c.Stages = []string{model.StageSeed}

	result := Enrich([]model.Company{c}, []model.Enrichment{{
		Name:    "Test Co",
		Slug:    "test-co",
		Sectors: []string{"fintech", "ai"},
		Stages:  []string{model.StageSeed, model.StageGrowth},
	}})

	got := result.Companies[0]
	assert.Equal(t, []string{"fintech", "ai"}, got.Sectors)
	assert.Equal(t, []string{model.StageSeed, model.StageGrowth}, got.Stages)
}

func TestEnrich_UnmatchedGoesToQuarantine(t *testing.T) {
	result := Enrich([]model.Company{canonical("Alpha", "alpha")}, []model.Enrichment{{
		Name: "Stranger",
		Slug: "stranger",
	}})

	// No new identities introduced into the canonical set.
	assert.Len(t, result.Companies, 1)
	require.Len(t, result.Quarantined, 1)
	assert.Equal(t, model.Quarantined{Name: "Stranger", Slug: "stranger"}, result.Quarantined[0])
	assert.False(t, result.Companies[0].Evidence.InPortfolio)
}

func TestEnrich_EmptySlugSkipped(t *testing.T) {
	result := Enrich([]model.Company{canonical("Alpha", "alpha")}, []model.Enrichment{{
		Name: "No Identity",
		Slug: "",
	}})

	assert.Empty(t, result.Quarantined)
	assert.Equal(t, 0, result.Stats.Matched)
	assert.Equal(t, 1, result.Stats.PortfolioCount)
}

func TestEnrich_EmptyPortfolioMatchRateIsZero(t *testing.T) {
	result := Enrich([]model.Company{canonical("Alpha", "alpha")}, nil)

	assert.Equal(t, 0.0, result.Stats.MatchRate)
	assert.Len(t, result.Companies, 1)
}

func TestEnrich_DuplicateRosterSlugFirstWins(t *testing.T) {
	first := canonical("Alpha", "alpha")
	second := canonical("Alpha Again", "alpha")

	result := Enrich([]model.Company{first, second}, []model.Enrichment{{
		Name:        "Alpha",
		Slug:        "alpha",
		Description: strPtr("enriched"),
	}})

	assert.Equal(t, 1, result.Stats.DuplicateRosterSlug)
	// Enrichment lands on the first occurrence only.
	require.NotNil(t, result.Companies[0].Description)
	assert.Nil(t, result.Companies[1].Description)
}

func TestEnrich_InputNotMutated(t *testing.T) {
	roster := []model.Company{canonical("Test Co", "test-co")}
	Enrich(roster, []model.Enrichment{{
		Name:        "Test Co",
		Slug:        "test-co",
		Description: strPtr("enriched"),
	}})

	assert.Nil(t, roster[0].Description)
	assert.False(t, roster[0].Evidence.InPortfolio)
}

func TestEnrich_EndToEnd(t *testing.T) {
	roster := []model.Company{
		canonical("Alpha", "alpha"),
		canonical("Beta", "beta"),
		canonical("Gamma", "gamma"),
	}
	portfolio := []model.Enrichment{
		{Name: "Alpha", Slug: "alpha", Description: strPtr("a"), SourceURL: "https://a16z.com/portfolio/"},
		{Name: "Beta", Slug: "beta", Website: strPtr("https://beta.co"), SourceURL: "https://a16z.com/portfolio/"},
		{Name: "Delta", Slug: "delta"},
	}

	result := Enrich(roster, portfolio)

	require.Len(t, result.Companies, 3)
	assert.True(t, result.Companies[0].Evidence.InPortfolio)
	assert.True(t, result.Companies[1].Evidence.InPortfolio)
	assert.False(t, result.Companies[2].Evidence.InPortfolio)
	require.Len(t, result.Quarantined, 1)
	assert.Equal(t, "delta", result.Quarantined[0].Slug)

	assert.Equal(t, 3, result.Stats.RosterCount)
	assert.Equal(t, 3, result.Stats.PortfolioCount)
	assert.Equal(t, 2, result.Stats.Matched)
	assert.Equal(t, 1, result.Stats.UnmatchedPortfolio)
	assert.Equal(t, 66.7, result.Stats.MatchRate)
}
