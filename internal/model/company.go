// Package model defines the canonical dataset record types.
package model

// Status is the controlled vocabulary for a company's current state.
type Status string

const (
	StatusActive  Status = "active"
	StatusExited  Status = "exited"
	StatusUnknown Status = "unknown"
)

// Stage values in the controlled vocabulary.
const (
	StageSeed    = "seed"
	StageVenture = "venture"
	StageGrowth  = "growth"
	StageLate    = "late"
	StagePublic  = "public"
	StageExited  = "exited"
)

// SourceURLs records the origin URL each source contributed, nil when that
// source never contributed to the record.
type SourceURLs struct {
	InvestmentList *string `json:"investment_list"`
	Portfolio      *string `json:"portfolio"`
}

// SourceEvidence records which sources confirmed the record's existence.
// InInvestmentList is true for every company in the canonical set; the
// investment list is the closed identity universe.
type SourceEvidence struct {
	InInvestmentList bool `json:"in_investment_list"`
	InPortfolio      bool `json:"in_portfolio"`
}

// Company is the canonical, persisted company record.
type Company struct {
	ID            string         `json:"id"`
	A16zCompanyID *string        `json:"a16z_company_id"`
	Name          string         `json:"name"`
	Slug          string         `json:"slug"`
	Description   *string        `json:"description"`
	Website       *string        `json:"website"`
	Status        Status         `json:"status"`
	Sectors       []string       `json:"sectors"`
	Stages        []string       `json:"stages"`
	SourceURLs    SourceURLs     `json:"source_urls"`
	Evidence      SourceEvidence `json:"source_evidence"`
	FirstSeenISO  string         `json:"first_seen_iso"`
	LastSeenISO   string         `json:"last_seen_iso"`
}

// RosterEntry is a raw company extracted from the investment list page.
// Zero values mean the extractor did not supply the field; the normalizer
// fills defaults and derives identity.
type RosterEntry struct {
	Name           string
	Slug           string
	ID             string
	LetterGroup    string
	SourceURLs     SourceURLs
	SourceEvidence *SourceEvidence
	FirstSeenISO   string
	LastSeenISO    string
}

// Enrichment is an ephemeral record normalized from the portfolio page,
// shaped for additive merge into a canonical Company. Empty Status means the
// portfolio did not confidently state one.
type Enrichment struct {
	Name          string   `json:"name"`
	Slug          string   `json:"slug"`
	A16zCompanyID string   `json:"a16z_company_id"`
	Description   *string  `json:"description"`
	Website       *string  `json:"website"`
	Status        Status   `json:"status"`
	Sectors       []string `json:"sectors"`
	SectorsRaw    []string `json:"sectors_raw"`
	Stages        []string `json:"stages"`
	LogoURL       *string  `json:"logo_url"`
	Founders      *string  `json:"founders"`
	SourceURL     string   `json:"source_url"`
}

// Quarantined is an enrichment record with no canonical counterpart,
// retained for audit review.
type Quarantined struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// MergeStats summarizes a merge run.
type MergeStats struct {
	RosterCount         int     `json:"roster_count"`
	PortfolioCount      int     `json:"portfolio_count"`
	Matched             int     `json:"matched"`
	UnmatchedPortfolio  int     `json:"unmatched_portfolio"`
	DuplicateRosterSlug int     `json:"duplicate_roster_slugs"`
	MatchRate           float64 `json:"match_rate"`
}

// Index is a derived category document: all company IDs carrying one
// sector, stage, or status value. Rebuilt from scratch every run.
type Index struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Companies []string `json:"companies"`
}

// ExtractionMetrics reports field coverage over the final canonical set.
type ExtractionMetrics struct {
	RosterParsedCount  int     `json:"roster_parsed_count"`
	PortfolioMatchRate float64 `json:"portfolio_match_rate"`
	PctWithWebsite     float64 `json:"pct_with_website"`
	PctWithDescription float64 `json:"pct_with_description"`
	PctWithSector      float64 `json:"pct_with_sector"`
	PctWithStage       float64 `json:"pct_with_stage"`
	PctWithStatus      float64 `json:"pct_with_status"`
}

// Meta is the run-level aggregate document.
type Meta struct {
	LastUpdatedISO     string            `json:"last_updated_iso"`
	SchemaVersion      string            `json:"schema_version"`
	TotalCompanies     int               `json:"total_companies"`
	CountsByStatus     map[string]int    `json:"counts_by_status"`
	CountsBySector     map[string]int    `json:"counts_by_sector"`
	CountsByStage      map[string]int    `json:"counts_by_stage"`
	SourceEntryURLs    map[string]string `json:"source_entry_urls"`
	CoverageDisclaimer string            `json:"coverage_disclaimer"`
	ExtractionMetrics  ExtractionMetrics `json:"extraction_metrics"`
}

// Taxonomy is the raw category metadata embedded in the portfolio page.
type Taxonomy struct {
	Categories []string `json:"categories"`
	Stages     []string `json:"stages"`
	Statuses   []string `json:"statuses"`
}
