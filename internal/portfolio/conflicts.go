package portfolio

import (
	"strings"

	"github.com/spigell/vc-sourcer/internal/scoring"
	"github.com/spigell/vc-sourcer/internal/venture"
)

const (
	nameConflictThreshold        = 0.7
	descriptionConflictThreshold = 0.6
)

// DetectConflicts compares a startup with each portfolio company. A company
// is recorded once per rule it trips, so one company can appear several
// times and push severity up on its own.
func DetectConflicts(startup *venture.StartupProfile, companies []venture.PortfolioCompany) *venture.ConflictReport {
	report := venture.NewConflictReport()
	if startup == nil {
		return report
	}

	name := strings.ToLower(startup.Company.Name)
	industry := strings.ToLower(startup.Company.Industry)
	description := strings.ToLower(startup.Company.Description)

	add := func(company, kind string) {
		report.HasConflicts = true
		report.ConflictCompanies = append(report.ConflictCompanies, company)
		report.ConflictTypes = append(report.ConflictTypes, kind)
	}

	for _, pc := range companies {
		if scoring.Ratio(name, strings.ToLower(pc.Name)) > nameConflictThreshold {
			add(pc.Name, venture.ConflictNameSimilarity)
		}

		if industry != "" && pc.Industry != "" && industry == strings.ToLower(pc.Industry) {
			add(pc.Name, venture.ConflictIndustry)
		}

		if description != "" && pc.Description != "" &&
			scoring.Ratio(description, strings.ToLower(pc.Description)) > descriptionConflictThreshold {
			add(pc.Name, venture.ConflictBusinessModel)
		}
	}

	switch n := len(report.ConflictCompanies); {
	case n > 2:
		report.Severity = venture.SeverityHigh
	case n > 0:
		report.Severity = venture.SeverityMedium
	}
	return report
}
