// Package validate checks a built dataset for internal consistency.
package validate

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"

	"github.com/TheDarkNight21/a16z-oss-api/internal/model"
)

// Dataset runs consistency checks over a built output tree and returns the
// list of findings, empty when the dataset is sound. A missing meta or
// all-companies document is an error; everything else is a finding.
func Dataset(dir string, minCompanies int) ([]string, error) {
	var findings []string

	var meta model.Meta
	if err := loadJSON(filepath.Join(dir, "meta.json"), &meta); err != nil {
		return nil, eris.Wrap(err, "validate: load meta.json")
	}
	if meta.TotalCompanies < minCompanies {
		findings = append(findings,
			fmt.Sprintf("total_companies=%d is below minimum %d", meta.TotalCompanies, minCompanies))
	}

	var companies []model.Company
	if err := loadJSON(filepath.Join(dir, "companies", "all.json"), &companies); err != nil {
		return nil, eris.Wrap(err, "validate: load companies/all.json")
	}
	if len(companies) != meta.TotalCompanies {
		findings = append(findings,
			fmt.Sprintf("all.json has %d companies but meta says %d", len(companies), meta.TotalCompanies))
	}

	for _, c := range companies {
		if c.Name == "" {
			findings = append(findings, fmt.Sprintf("company missing name: %s", orUnknown(c.ID)))
		}
		if c.Slug == "" {
			findings = append(findings, fmt.Sprintf("company missing slug: %s", orUnknown(c.Name)))
		}
		if c.ID == "" {
			findings = append(findings, fmt.Sprintf("company missing id: %s", orUnknown(c.Name)))
		}
		if !c.Evidence.InInvestmentList {
			findings = append(findings,
				fmt.Sprintf("company %s missing in_investment_list=true", orUnknown(c.Name)))
		}
	}

	// Per-company documents must exist for every canonical record.
	for _, c := range companies {
		if c.Slug == "" {
			continue
		}
		path := filepath.Join(dir, "companies", c.Slug+".json")
		if _, err := os.Stat(path); err != nil {
			findings = append(findings, fmt.Sprintf("companies/%s.json missing", c.Slug))
		}
	}

	return findings, nil
}

func loadJSON(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

func orUnknown(s string) string {
	if s == "" {
		return "?"
	}
	return s
}
