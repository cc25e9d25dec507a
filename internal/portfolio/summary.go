package portfolio

import (
	"strings"

	"github.com/spigell/vc-sourcer/internal/scoring"
	"github.com/spigell/vc-sourcer/internal/venture"
)

const duplicateNameThreshold = 0.8

type Summary struct {
	TotalCompanies int                        `json:"total_companies"`
	Industries     []string                   `json:"industries"`
	Companies      []string                   `json:"companies"`
	CompaniesData  []venture.PortfolioCompany `json:"companies_data"`
}

// Summarize lists company names and distinct non-empty industries in first-seen order.
func Summarize(companies []venture.PortfolioCompany) *Summary {
	s := &Summary{
		TotalCompanies: len(companies),
		Industries:     []string{},
		Companies:      make([]string, 0, len(companies)),
		CompaniesData:  append([]venture.PortfolioCompany{}, companies...),
	}

	seen := make(map[string]struct{})
	for _, c := range companies {
		s.Companies = append(s.Companies, c.Name)
		if c.Industry == "" {
			continue
		}
		if _, ok := seen[c.Industry]; !ok {
			seen[c.Industry] = struct{}{}
			s.Industries = append(s.Industries, c.Industry)
		}
	}
	return s
}

// Dedupe drops companies whose normalised name is more than 80% similar to
// an earlier one.
func Dedupe(companies []venture.PortfolioCompany) []venture.PortfolioCompany {
	out := make([]venture.PortfolioCompany, 0, len(companies))
	var seen []string

	for _, c := range companies {
		name := strings.ToLower(strings.TrimSpace(c.Name))
		duplicate := false
		for _, prev := range seen {
			if scoring.Ratio(name, prev) > duplicateNameThreshold {
				duplicate = true
				break
			}
		}
		if !duplicate {
			out = append(out, c)
			seen = append(seen, name)
		}
	}
	return out
}
