// Package ranking turns per-startup scores into ordered recommendations.
package ranking

import (
	"fmt"
	"sort"

	"github.com/spigell/vc-sourcer/internal/venture"
)

const (
	fitWeight          = 0.4
	qualityWeight      = 0.3
	portfolioFitWeight = 0.3
)

const (
	StrongMatch   = "Strong Match - Highly recommend"
	GoodMatch     = "Good Match - Worth considering"
	ModerateMatch = "Moderate Match - Review further"
	WeakMatch     = "Weak Match - Low priority"

	HighConflict     = "High Conflict - Avoid"
	ModerateConflict = "Moderate Conflict - Review carefully"
)

// Scored bundles everything computed for one startup against one firm.
type Scored struct {
	Startup      *venture.StartupProfile
	Fit          *venture.FitMetrics
	Quality      float64
	Conflicts    *venture.ConflictReport
	PortfolioFit *venture.PortfolioFit
}

// Combined weighs fit, quality and portfolio fit 0.4 / 0.3 / 0.3.
func Combined(fit, quality, portfolioFit float64) float64 {
	return fitWeight*fit + qualityWeight*quality + portfolioFitWeight*portfolioFit
}

func ProsAndCons(fit, quality, portfolioFit float64, conflicts *venture.ConflictReport) (pros, cons []string) {
	pros, cons = []string{}, []string{}

	switch {
	case fit > 80:
		pros = append(pros, "Excellent fit with VC criteria")
	case fit > 60:
		pros = append(pros, "Good fit with VC criteria")
	default:
		cons = append(cons, "Poor fit with VC criteria")
	}

	if quality > 80 {
		pros = append(pros, "High quality founders")
	} else if quality < 50 {
		cons = append(cons, "Low quality founders")
	}

	if portfolioFit > 70 {
		pros = append(pros, "Good portfolio fit")
	} else if portfolioFit < 40 {
		cons = append(cons, "Poor portfolio fit")
	}

	if conflicts != nil && conflicts.HasConflicts {
		cons = append(cons, fmt.Sprintf("Conflicts with %d portfolio companies", len(conflicts.ConflictCompanies)))
	}
	return pros, cons
}

// Recommend maps a combined score to a tier. Conflict severity always wins.
func Recommend(score float64, conflicts *venture.ConflictReport) string {
	if conflicts != nil {
		switch conflicts.Severity {
		case venture.SeverityHigh:
			return HighConflict
		case venture.SeverityMedium:
			return ModerateConflict
		}
	}

	switch {
	case score >= 80:
		return StrongMatch
	case score >= 65:
		return GoodMatch
	case score >= 50:
		return ModerateMatch
	default:
		return WeakMatch
	}
}

// Rank builds results and orders them by combined score, highest first.
// Entries without a startup or fit metrics are skipped.
func Rank(entries []Scored) []*venture.Result {
	results := make([]*venture.Result, 0, len(entries))
	for _, e := range entries {
		if e.Startup == nil || e.Fit == nil {
			continue
		}
		results = append(results, build(e))
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].FitMetrics.OverallScore > results[j].FitMetrics.OverallScore
	})
	return results
}

func build(e Scored) *venture.Result {
	conflicts := e.Conflicts
	if conflicts == nil {
		conflicts = venture.NewConflictReport()
	}
	pfit := e.PortfolioFit
	if pfit == nil {
		pfit = &venture.PortfolioFit{Score: 50, Reasoning: []string{"No portfolio data available"}}
	}

	combined := Combined(e.Fit.OverallScore, e.Quality, pfit.Score)
	pros, cons := ProsAndCons(e.Fit.OverallScore, e.Quality, pfit.Score, conflicts)
	c := e.Startup.Company

	return &venture.Result{
		CompanyName:        c.Name,
		Website:            c.Website,
		Industry:           c.Industry,
		Location:           c.Location,
		FundingStage:       c.FundingStage,
		ProductDescription: c.Description,
		Founders:           venture.Summaries(e.Startup.Founders),
		FitMetrics: venture.ResultMetrics{
			OverallScore:        combined,
			FitScore:            e.Fit.OverallScore,
			QualityScore:        e.Quality,
			PortfolioFitScore:   pfit.Score,
			PortfolioConflicts:  conflicts,
			TextSimilarity:      e.Fit.TextSimilarity,
			IndustryAlignment:   e.Fit.IndustryAlignment,
			StageAlignment:      e.Fit.StageAlignment,
			GeographicAlignment: e.Fit.GeographicAlignment,
			NetworkProximity:    e.Fit.NetworkProximity,
		},
		Recommendation:           Recommend(combined, conflicts),
		Pros:                     pros,
		Cons:                     cons,
		PortfolioConflictDetails: conflicts,
		PortfolioFitDetails:      pfit,
	}
}
