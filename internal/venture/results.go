package venture

import "fmt"

func (r *SourcingResult) Len() int {
	return len(r.Results)
}

func (r *SourcingResult) DumpToTmpFile() (string, error) {
	return dumpToTmpFile("sourcing_*.json", r)
}

// ReportByRecommendation groups results by recommendation text.
func (r *SourcingResult) ReportByRecommendation() map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, res := range r.Results {
		report[res.Recommendation] = append(report[res.Recommendation], map[string]string{
			"company":  res.CompanyName,
			"industry": res.Industry,
			"stage":    res.FundingStage,
			"location": res.Location,
			"score":    fmt.Sprintf("%.2f", res.FitMetrics.OverallScore),
			"fit":      fmt.Sprintf("%.2f", res.FitMetrics.FitScore),
			"quality":  fmt.Sprintf("%.2f", res.FitMetrics.QualityScore),
		})
	}
	return report
}

// ToReviewed converts ranked results into exclude file entries.
func (r *SourcingResult) ToReviewed() *Reviewed {
	reviewed := &Reviewed{}
	for _, res := range r.Results {
		reviewed.Items = append(reviewed.Items, &ReviewedStartup{
			Name:           res.CompanyName,
			Website:        res.Website,
			VCFirm:         r.VCFirm,
			Recommendation: res.Recommendation,
			ReviewedAt:     r.Timestamp.UTC(),
		})
	}
	return reviewed
}
