package scoring

import (
	"strings"

	"github.com/spigell/vc-sourcer/internal/venture"
)

// NetworkProximity averages per-founder reach: connection tiers up to 30,
// endorsement tiers up to 20 and 10 per experience keyword up to 50.
// The result is capped at 100.
func NetworkProximity(startup *venture.StartupProfile) float64 {
	if startup == nil || len(startup.Founders) == 0 {
		return 0
	}

	total := 0.0
	for _, f := range startup.Founders {
		total += founderProximity(f)
	}
	return min(100, total/float64(len(startup.Founders)))
}

func founderProximity(f venture.FounderProfile) float64 {
	score := 0.0

	switch c := f.LinkedInConnections; {
	case c > 1000:
		score += 30
	case c > 500:
		score += 20
	case c > 200:
		score += 10
	}

	switch e := f.Endorsements; {
	case e > 50:
		score += 20
	case e > 20:
		score += 15
	case e > 10:
		score += 10
	}

	if f.Experience != "" {
		hits := countMatches(strings.ToLower(f.Experience), tables.Fit.NetworkKeywords)
		score += min(50, float64(hits*10))
	}
	return score
}
