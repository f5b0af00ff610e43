package extract

import (
	"encoding/json"
	"html"
	"regexp"

	"github.com/rotisserie/eris"

	"github.com/TheDarkNight21/a16z-oss-api/internal/model"
)

// The portfolio page embeds all company data as HTML-entity-encoded JSON in
// a data-json attribute.
var portfolioDataRe = regexp.MustCompile(`<div class="portfolio-app" data-json="([^"]+)"`)

type portfolioBlob struct {
	Companies  []map[string]any `json:"companies"`
	Categories []string         `json:"categories"`
	Stages     []string         `json:"stages"`
	Statuses   []string         `json:"statuses"`
}

// Portfolio extracts the embedded data blob from the portfolio page HTML and
// returns the raw company maps plus the page's taxonomy metadata.
func Portfolio(pageHTML string) ([]map[string]any, model.Taxonomy, error) {
	match := portfolioDataRe.FindStringSubmatch(pageHTML)
	if match == nil {
		return nil, model.Taxonomy{}, eris.New("extract: portfolio-app data-json attribute not found")
	}

	decoded := html.UnescapeString(match[1])

	var blob portfolioBlob
	if err := json.Unmarshal([]byte(decoded), &blob); err != nil {
		return nil, model.Taxonomy{}, eris.Wrap(err, "extract: decode portfolio data blob")
	}

	taxonomy := model.Taxonomy{
		Categories: blob.Categories,
		Stages:     blob.Stages,
		Statuses:   blob.Statuses,
	}
	return blob.Companies, taxonomy, nil
}
