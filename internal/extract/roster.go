// Package extract pulls raw company records out of the two source pages:
// the investment-list HTML and the portfolio page's embedded JSON blob.
package extract

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"

	"github.com/TheDarkNight21/a16z-oss-api/internal/identity"
	"github.com/TheDarkNight21/a16z-oss-api/internal/model"
)

const timeLayout = "2006-01-02T15:04:05Z"

// Roster parses the investment-list page. Company names live in
// <li> items under <ul class="list"> inside div.list-row sections, grouped
// under <h6> letter headings. Entries are deduplicated by slug; names that
// slugify to nothing are skipped.
func Roster(html, rosterURL string) ([]model.RosterEntry, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, eris.Wrap(err, "extract: parse roster html")
	}

	nowISO := time.Now().UTC().Format(timeLayout)
	seen := make(map[string]bool)
	var entries []model.RosterEntry

	doc.Find("div.list-row ul.list").Each(func(_ int, ul *goquery.Selection) {
		letter := strings.TrimSpace(ul.PrevAllFiltered("h6").First().Text())
		if letter == "" {
			letter = strings.TrimSpace(ul.Parent().Find("h6").First().Text())
		}

		ul.Find("li").Each(func(_ int, li *goquery.Selection) {
			name := strings.TrimSpace(li.Text())
			if name == "" {
				return
			}
			slug := identity.Slugify(name)
			if slug == "" || seen[slug] {
				return
			}
			seen[slug] = true

			u := rosterURL
			entries = append(entries, model.RosterEntry{
				Name:        name,
				Slug:        slug,
				ID:          identity.MakeID(slug),
				LetterGroup: letter,
				SourceURLs:  model.SourceURLs{InvestmentList: &u},
				SourceEvidence: &model.SourceEvidence{
					InInvestmentList: true,
					InPortfolio:      false,
				},
				FirstSeenISO: nowISO,
				LastSeenISO:  nowISO,
			})
		})
	})

	return entries, nil
}
