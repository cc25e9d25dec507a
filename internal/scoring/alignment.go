package scoring

import (
	"slices"
	"strings"

	"github.com/spigell/vc-sourcer/internal/venture"
)

const (
	industryFuzzyThreshold = 0.7
	otherRegion            = "other"
)

// IndustryAlignment scores the startup industry against the firm's focus areas:
// 100 exact, 75 substring or close spelling, 50 related industry, else 0.
func IndustryAlignment(startup *venture.StartupProfile, vc *venture.VCProfile) float64 {
	if startup == nil || vc == nil || startup.Company.Industry == "" || len(vc.FocusAreas) == 0 {
		return 0
	}

	industry := strings.ToLower(startup.Company.Industry)
	focus := lowerAll(vc.FocusAreas)

	if slices.Contains(focus, industry) {
		return 100
	}

	for _, area := range focus {
		if strings.Contains(area, industry) || strings.Contains(industry, area) || Ratio(industry, area) > industryFuzzyThreshold {
			return 75
		}
	}

	for _, related := range tables.Fit.RelatedIndustries[industry] {
		if slices.Contains(focus, related) {
			return 50
		}
	}
	return 0
}

// StageAlignment scores funding stages: 100 on exact match, otherwise by the
// closest ordinal distance to any firm stage (<=1 is 75, <=2 is 50).
// Stages outside the hierarchy share ordinal 0.
func StageAlignment(startup *venture.StartupProfile, vc *venture.VCProfile) float64 {
	if startup == nil || vc == nil || startup.Company.FundingStage == "" || len(vc.InvestmentStages) == 0 {
		return 0
	}

	stage := strings.ToLower(startup.Company.FundingStage)
	stages := lowerAll(vc.InvestmentStages)

	if slices.Contains(stages, stage) {
		return 100
	}

	ordinal := tables.Fit.Stages[stage]
	best := -1
	for _, s := range stages {
		d := ordinal - tables.Fit.Stages[s]
		if d < 0 {
			d = -d
		}
		if best < 0 || d < best {
			best = d
		}
	}

	switch {
	case best <= 1:
		return 75
	case best <= 2:
		return 50
	default:
		return 0
	}
}

// GeographicAlignment scores the startup location: 100 exact, 75 when a
// comma-separated part matches, 50 for a shared region, else 0.
func GeographicAlignment(startup *venture.StartupProfile, vc *venture.VCProfile) float64 {
	if startup == nil || vc == nil || startup.Company.Location == "" || len(vc.GeographicFocus) == 0 {
		return 0
	}

	location := strings.ToLower(startup.Company.Location)
	focus := lowerAll(vc.GeographicFocus)

	if slices.Contains(focus, location) {
		return 100
	}

	for _, part := range strings.Split(location, ", ") {
		if slices.Contains(focus, part) {
			return 75
		}
	}

	home := regionOf(location)
	for _, loc := range focus {
		if regionOf(loc) == home {
			return 50
		}
	}
	return 0
}

func regionOf(location string) string {
	location = strings.ToLower(location)
	for _, r := range tables.Fit.Regions {
		if containsAny(location, r.Cities) {
			return r.Name
		}
	}
	return otherRegion
}

func lowerAll(items []string) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = strings.ToLower(item)
	}
	return out
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// countMatches returns how many keywords occur in text.
func countMatches(text string, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			n++
		}
	}
	return n
}
