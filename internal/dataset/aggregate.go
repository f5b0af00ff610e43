// Package dataset derives the output views (indexes, meta, document tree)
// from the merged canonical set and orchestrates the full build.
package dataset

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/TheDarkNight21/a16z-oss-api/internal/model"
)

// Indexes holds the derived category documents, each slice in insertion
// order of first encounter across the company scan. Membership order within
// a bucket is company scan order. Both orders are part of the output
// contract, reproducible run to run.
type Indexes struct {
	Sectors  []model.Index
	Stages   []model.Index
	Statuses []model.Index
}

var titleCaser = cases.Title(language.English)

// BuildIndexes scans the canonical set once and buckets company IDs by
// sector, stage, and status.
func BuildIndexes(companies []model.Company) Indexes {
	sectors := newBuckets()
	stages := newBuckets()
	statuses := newBuckets()

	for _, c := range companies {
		for _, sector := range c.Sectors {
			sectors.add(sector, c.ID)
		}
		for _, stage := range c.Stages {
			stages.add(stage, c.ID)
		}
		status := c.Status
		if status == "" {
			status = model.StatusUnknown
		}
		statuses.add(string(status), c.ID)
	}

	return Indexes{
		Sectors:  sectors.ordered(),
		Stages:   stages.ordered(),
		Statuses: statuses.ordered(),
	}
}

// buckets is an insertion-ordered map of tag -> index document.
type buckets struct {
	order []string
	byID  map[string]*model.Index
}

func newBuckets() *buckets {
	return &buckets{byID: make(map[string]*model.Index)}
}

func (b *buckets) add(tag, companyID string) {
	idx, ok := b.byID[tag]
	if !ok {
		idx = &model.Index{ID: tag, Name: displayName(tag)}
		b.byID[tag] = idx
		b.order = append(b.order, tag)
	}
	idx.Companies = append(idx.Companies, companyID)
}

func (b *buckets) ordered() []model.Index {
	out := make([]model.Index, 0, len(b.order))
	for _, tag := range b.order {
		out = append(out, *b.byID[tag])
	}
	return out
}

// displayName turns a tag like "consumer-tech" into "Consumer Tech".
func displayName(tag string) string {
	return titleCaser.String(strings.ReplaceAll(tag, "-", " "))
}
