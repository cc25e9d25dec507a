package portfolio

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const OtherIndustry = "Other"

//go:embed data/industries.yaml
var industriesYAML []byte

type category struct {
	Industry string   `yaml:"industry"`
	Keywords []string `yaml:"keywords"`
}

var categories = mustLoadCategories(industriesYAML)

func mustLoadCategories(raw []byte) []category {
	var out []category
	if err := yaml.Unmarshal(raw, &out); err != nil {
		panic(fmt.Sprintf("portfolio: parse industry categories: %v", err))
	}
	return out
}

// Categorize maps free text onto a portfolio industry. Unmatched text is Other.
func Categorize(text string) string {
	lower := strings.ToLower(text)
	if strings.TrimSpace(lower) == "" {
		return OtherIndustry
	}

	for _, c := range categories {
		for _, kw := range c.Keywords {
			if strings.Contains(lower, kw) {
				return c.Industry
			}
		}
	}
	return OtherIndustry
}
