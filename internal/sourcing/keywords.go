package sourcing

import (
	"strings"

	"github.com/spigell/vc-sourcer/internal/venture"
)

const MaxKeywords = 12

var keywordVariations = map[string][]string{
	"ai/ml":      {"AI", "machine learning", "artificial intelligence"},
	"fintech":    {"fintech", "financial technology", "payments", "banking"},
	"saas":       {"SaaS", "software as a service", "enterprise", "B2B"},
	"healthcare": {"healthcare", "digital health", "telemedicine", "medtech"},
	"consumer":   {"consumer", "B2C", "marketplace", "ecommerce"},
	"enterprise": {"enterprise", "B2B", "SaaS", "software"},
	"technology": {"software", "AI", "machine learning", "platform", "tech"},
}

// GenerateKeywords expands the firm's focus areas into search keywords.
// Each area is followed by its known variations; duplicates are dropped in
// first-seen order and at most MaxKeywords are kept.
func GenerateKeywords(vc *venture.VCProfile) []string {
	if vc == nil {
		return []string{}
	}

	seen := make(map[string]struct{})
	out := make([]string, 0, MaxKeywords)
	add := func(k string) {
		if strings.TrimSpace(k) == "" {
			return
		}
		if _, ok := seen[k]; ok {
			return
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}

	for _, area := range vc.FocusAreas {
		add(area)
		for _, v := range keywordVariations[strings.ToLower(area)] {
			add(v)
		}
	}

	if len(out) > MaxKeywords {
		out = out[:MaxKeywords]
	}
	return out
}

// perKeyword splits the startup budget evenly across keywords, at least one each.
func perKeyword(maxStartups, keywords int) int {
	if keywords == 0 {
		return maxStartups
	}
	return max(1, maxStartups/keywords)
}
