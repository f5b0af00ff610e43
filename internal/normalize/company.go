// Package normalize maps loosely-shaped source records into the canonical
// schema: the investment-list roster on one side, portfolio enrichment on
// the other.
package normalize

import (
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/TheDarkNight21/a16z-oss-api/internal/identity"
	"github.com/TheDarkNight21/a16z-oss-api/internal/model"
)

const timeLayout = "2006-01-02T15:04:05Z"

// Normalizer turns raw roster entries into canonical companies.
type Normalizer struct {
	rosterURL string
	now       func() time.Time
}

// NewNormalizer creates a Normalizer. rosterURL is stamped into
// source_urls.investment_list when the entry does not carry one.
func NewNormalizer(rosterURL string) *Normalizer {
	return &Normalizer{rosterURL: rosterURL, now: time.Now}
}

// Company normalizes a single roster entry into a fully-populated canonical
// record. Name is the only required field; slug and id are derived when
// absent, every optional field gets its schema default, and prior timestamps
// are preserved when the entry supplies them.
func (n *Normalizer) Company(entry model.RosterEntry) (model.Company, error) {
	name := trim(entry.Name)
	if name == "" {
		return model.Company{}, eris.New("normalize: company name is required")
	}

	slug := entry.Slug
	if slug == "" {
		slug = identity.Slugify(name)
	}
	id := entry.ID
	if id == "" {
		id = identity.MakeID(slug)
	}

	nowISO := n.now().UTC().Format(timeLayout)
	firstSeen := entry.FirstSeenISO
	if firstSeen == "" {
		firstSeen = nowISO
	}
	lastSeen := entry.LastSeenISO
	if lastSeen == "" {
		lastSeen = nowISO
	}

	urls := entry.SourceURLs
	if urls.InvestmentList == nil {
		u := n.rosterURL
		urls.InvestmentList = &u
	}

	// Normalizing a primary-source record implies primary-source evidence.
	evidence := model.SourceEvidence{InInvestmentList: true}
	if entry.SourceEvidence != nil {
		evidence = *entry.SourceEvidence
	}

	return model.Company{
		ID:           id,
		Name:         name,
		Slug:         slug,
		Status:       model.StatusUnknown,
		Sectors:      []string{},
		Stages:       []string{},
		SourceURLs:   urls,
		Evidence:     evidence,
		FirstSeenISO: firstSeen,
		LastSeenISO:  lastSeen,
	}, nil
}

// ParseCompanies normalizes a batch of roster entries. A failure on one
// entry excludes it from the output and the batch continues; failures are
// counted and a sample is surfaced as a warning.
func (n *Normalizer) ParseCompanies(entries []model.RosterEntry) []model.Company {
	parsed := make([]model.Company, 0, len(entries))
	var failures []string

	for _, entry := range entries {
		company, err := n.Company(entry)
		if err != nil {
			label := entry.Name
			if label == "" {
				label = "unknown"
			}
			failures = append(failures, label+": "+err.Error())
			continue
		}
		parsed = append(parsed, company)
	}

	if len(failures) > 0 {
		sample := failures
		if len(sample) > 5 {
			sample = sample[:5]
		}
		zap.L().Warn("normalize: roster entries failed normalization",
			zap.Int("failed", len(failures)),
			zap.Strings("sample", sample),
		)
	}

	return parsed
}
