package normalize

import (
	"strconv"
	"strings"

	"github.com/TheDarkNight21/a16z-oss-api/internal/identity"
	"github.com/TheDarkNight21/a16z-oss-api/internal/model"
)

// Controlled vocabulary for raw portfolio stage labels.
var stageVocab = map[string]string{
	"seed":    model.StageSeed,
	"venture": model.StageVenture,
	"growth":  model.StageGrowth,
	"late":    model.StageLate,
	"ipo":     model.StagePublic,
	"spac":    model.StagePublic,
	"m&a":     model.StageExited,
}

// Controlled vocabulary for raw portfolio status labels. Unmapped labels
// collapse to absent, deferring to the canonical record's value.
var statusVocab = map[string]model.Status{
	"active": model.StatusActive,
	"exits":  model.StatusExited,
}

// PortfolioNormalizer turns raw portfolio company maps into enrichment
// records carrying their own derived identity.
type PortfolioNormalizer struct {
	sourceURL string
}

// NewPortfolioNormalizer creates a PortfolioNormalizer; sourceURL is the
// portfolio page URL recorded as provenance on every record.
func NewPortfolioNormalizer(sourceURL string) *PortfolioNormalizer {
	return &PortfolioNormalizer{sourceURL: sourceURL}
}

// Enrichment normalizes one raw portfolio company. Returns ok=false when no
// usable name is present; callers must skip such records.
func (p *PortfolioNormalizer) Enrichment(raw map[string]any) (model.Enrichment, bool) {
	name := trim(stringField(raw, "a16z_company_name"))
	if name == "" {
		name = trim(stringField(raw, "post_title"))
	}
	if name == "" {
		return model.Enrichment{}, false
	}

	// A company can be marked both "Exits" and "Active"; first token wins.
	rawStatus := trim(stringField(raw, "website_current_status"))
	if i := strings.Index(rawStatus, ";"); i >= 0 {
		rawStatus = trim(rawStatus[:i])
	}
	status := statusVocab[strings.ToLower(rawStatus)]

	var stages []string
	for _, part := range splitSemicolons(stringField(raw, "website_stage_at_investment")) {
		mapped, ok := stageVocab[strings.ToLower(part)]
		if !ok {
			continue
		}
		if !contains(stages, mapped) {
			stages = append(stages, mapped)
		}
	}

	rawCats := stringField(raw, "website_categories")
	var sectors []string
	for _, part := range splitSemicolons(rawCats) {
		sectorSlug := identity.Slugify(part)
		if sectorSlug == "" || contains(sectors, sectorSlug) {
			continue
		}
		sectors = append(sectors, sectorSlug)
	}

	return model.Enrichment{
		Name:          name,
		Slug:          identity.Slugify(name),
		A16zCompanyID: numericID(raw["ID"]),
		Description:   trimToNil(stringField(raw, "website_description")),
		Website:       trimToNil(stringField(raw, "company_url")),
		Status:        status,
		Sectors:       sectors,
		SectorsRaw:    splitSemicolons(rawCats),
		Stages:        stages,
		LogoURL:       trimToNil(stringField(raw, "logo")),
		Founders:      trimToNil(stringField(raw, "founders_list")),
		SourceURL:     p.sourceURL,
	}, true
}

// ParseAll normalizes a batch of raw portfolio companies, skipping records
// with no usable name.
func (p *PortfolioNormalizer) ParseAll(raws []map[string]any) []model.Enrichment {
	out := make([]model.Enrichment, 0, len(raws))
	for _, raw := range raws {
		if rec, ok := p.Enrichment(raw); ok {
			out = append(out, rec)
		}
	}
	return out
}

func splitSemicolons(value string) []string {
	var parts []string
	for _, p := range strings.Split(value, ";") {
		if t := trim(p); t != "" {
			parts = append(parts, t)
		}
	}
	return parts
}

func stringField(raw map[string]any, key string) string {
	s, _ := raw[key].(string)
	return s
}

// numericID renders the portfolio's numeric company ID as a string. The
// JSON decoder hands numbers over as float64.
func numericID(v any) string {
	switch n := v.(type) {
	case string:
		return n
	case float64:
		return strconv.FormatInt(int64(n), 10)
	case int:
		return strconv.Itoa(n)
	default:
		return ""
	}
}

func trim(s string) string {
	return strings.TrimSpace(s)
}

// trimToNil trims and converts empty strings to nil rather than propagating
// them into the schema.
func trimToNil(s string) *string {
	t := trim(s)
	if t == "" {
		return nil
	}
	return &t
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
