package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rosterURL = "https://a16z.com/investment-list/"

const rosterFixture = `
<html><body>
<div class="list-row">
  <h4>Investments</h4>
  <div class="row">
    <div class="col-xs-6 col-sm-3">
      <h6>#-A</h6>
      <ul class="list">
        <li>Alpha Co</li>
        <li>  </li>
        <li>Alpha Co</li>
        <li>!!!</li>
      </ul>
    </div>
    <div class="col-xs-6 col-sm-3">
      <h6>B-G</h6>
      <ul class="list">
        <li>Beta Labs</li>
      </ul>
    </div>
  </div>
</div>
<ul class="list"><li>Outside Row</li></ul>
</body></html>`

func TestRoster_ExtractsEntries(t *testing.T) {
	entries, err := Roster(rosterFixture, rosterURL)
	require.NoError(t, err)

	// Blank names, punctuation-only names, duplicates, and lists outside
	// a list-row section are all skipped.
	require.Len(t, entries, 2)

	alpha := entries[0]
	assert.Equal(t, "Alpha Co", alpha.Name)
	assert.Equal(t, "alpha-co", alpha.Slug)
	assert.Equal(t, "a16z:alpha-co", alpha.ID)
	assert.Equal(t, "#-A", alpha.LetterGroup)
	require.NotNil(t, alpha.SourceURLs.InvestmentList)
	assert.Equal(t, rosterURL, *alpha.SourceURLs.InvestmentList)
	require.NotNil(t, alpha.SourceEvidence)
	assert.True(t, alpha.SourceEvidence.InInvestmentList)
	assert.False(t, alpha.SourceEvidence.InPortfolio)
	assert.NotEmpty(t, alpha.FirstSeenISO)

	beta := entries[1]
	assert.Equal(t, "Beta Labs", beta.Name)
	assert.Equal(t, "B-G", beta.LetterGroup)
}

func TestRoster_EmptyPage(t *testing.T) {
	entries, err := Roster("<html><body></body></html>", rosterURL)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
