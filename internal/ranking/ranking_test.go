package ranking

import (
	"math"
	"reflect"
	"testing"

	"github.com/spigell/vc-sourcer/internal/venture"
)

func conflicts(severity string, n int) *venture.ConflictReport {
	r := venture.NewConflictReport()
	r.Severity = severity
	for range n {
		r.HasConflicts = true
		r.ConflictCompanies = append(r.ConflictCompanies, "Stripe")
		r.ConflictTypes = append(r.ConflictTypes, venture.ConflictIndustry)
	}
	return r
}

func TestCombined(t *testing.T) {
	t.Parallel()

	got := Combined(66.75, 31, 75)
	if math.Abs(got-58.5) > 1e-9 {
		t.Fatalf("Combined = %v, want 58.5", got)
	}
}

func TestRecommend(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		score     float64
		conflicts *venture.ConflictReport
		want      string
	}{
		{"strong", 80, nil, StrongMatch},
		{"good", 65, venture.NewConflictReport(), GoodMatch},
		{"moderate", 50, nil, ModerateMatch},
		{"weak", 49.99, nil, WeakMatch},
		{"high conflict beats score", 99, conflicts(venture.SeverityHigh, 3), HighConflict},
		{"medium conflict", 10, conflicts(venture.SeverityMedium, 1), ModerateConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Recommend(tt.score, tt.conflicts); got != tt.want {
				t.Fatalf("Recommend(%v) = %q, want %q", tt.score, got, tt.want)
			}
		})
	}
}

func TestProsAndCons(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name               string
		fit, quality, pfit float64
		conflicts          *venture.ConflictReport
		wantPros, wantCons []string
	}{
		{
			name: "all strong", fit: 85, quality: 90, pfit: 75,
			wantPros: []string{"Excellent fit with VC criteria", "High quality founders", "Good portfolio fit"},
			wantCons: []string{},
		},
		{
			name: "middling", fit: 70, quality: 60, pfit: 50,
			wantPros: []string{"Good fit with VC criteria"},
			wantCons: []string{},
		},
		{
			name: "weak with conflicts", fit: 60, quality: 20, pfit: 30,
			conflicts: conflicts(venture.SeverityMedium, 2),
			wantPros:  []string{},
			wantCons:  []string{"Poor fit with VC criteria", "Low quality founders", "Poor portfolio fit", "Conflicts with 2 portfolio companies"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			pros, cons := ProsAndCons(tt.fit, tt.quality, tt.pfit, tt.conflicts)
			if !reflect.DeepEqual(pros, tt.wantPros) {
				t.Fatalf("pros = %v, want %v", pros, tt.wantPros)
			}
			if !reflect.DeepEqual(cons, tt.wantCons) {
				t.Fatalf("cons = %v, want %v", cons, tt.wantCons)
			}
		})
	}
}

func TestRank(t *testing.T) {
	t.Parallel()

	entry := func(name string, fit, quality, pfit float64, c *venture.ConflictReport) Scored {
		return Scored{
			Startup: &venture.StartupProfile{
				Company:  venture.CompanyProfile{Name: name, Industry: "AI/ML"},
				Founders: []venture.FounderProfile{{Name: "Jane Doe", LinkedInConnections: 1200}},
			},
			Fit:          &venture.FitMetrics{StartupID: name, OverallScore: fit, IndustryAlignment: 100},
			Quality:      quality,
			Conflicts:    c,
			PortfolioFit: &venture.PortfolioFit{Score: pfit, Reasoning: []string{"x"}},
		}
	}

	results := Rank([]Scored{
		entry("Low", 10, 10, 30, nil),
		{Startup: nil},
		entry("High", 90, 90, 75, conflicts(venture.SeverityHigh, 3)),
		entry("Mid", 66.75, 31, 75, nil),
	})

	var names []string
	for _, r := range results {
		names = append(names, r.CompanyName)
	}
	if want := []string{"High", "Mid", "Low"}; !reflect.DeepEqual(names, want) {
		t.Fatalf("order = %v, want %v", names, want)
	}

	top := results[0]
	if top.Recommendation != HighConflict {
		t.Fatalf("expected conflict override, got %q", top.Recommendation)
	}
	if math.Abs(top.FitMetrics.OverallScore-85.5) > 1e-9 {
		t.Fatalf("combined = %v, want 85.5", top.FitMetrics.OverallScore)
	}
	if len(top.Founders) != 1 || top.Founders[0].LinkedInConnections != 1200 {
		t.Fatalf("founders not summarised: %+v", top.Founders)
	}

	mid := results[1]
	if mid.Recommendation != ModerateMatch || mid.FitMetrics.IndustryAlignment != 100 {
		t.Fatalf("unexpected mid result %+v", mid)
	}
	if mid.PortfolioConflictDetails == nil || mid.PortfolioConflictDetails.Severity != venture.SeverityNone {
		t.Fatalf("expected empty conflict report, got %+v", mid.PortfolioConflictDetails)
	}
}
