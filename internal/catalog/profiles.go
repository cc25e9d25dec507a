package catalog

import (
	"fmt"
	"strings"

	"github.com/spigell/vc-sourcer/internal/venture"
)

type profileEntry struct {
	Key     string `json:"key"`
	venture.VCProfile
}

type profilesDocument struct {
	Aliases  map[string]string `json:"aliases"`
	Profiles []profileEntry    `json:"profiles"`
}

type profileIndex struct {
	aliases map[string]string
	entries []profileEntry
	byKey   map[string]int
}

func loadProfiles(override string) (*profileIndex, error) {
	doc, err := readDocument(vcProfilesFile, override)
	if err != nil {
		return nil, err
	}

	var parsed profilesDocument
	if err := decode(doc, &parsed); err != nil {
		return nil, err
	}

	idx := &profileIndex{
		aliases: make(map[string]string, len(parsed.Aliases)),
		entries: parsed.Profiles,
		byKey:   make(map[string]int, len(parsed.Profiles)),
	}
	for alias, key := range parsed.Aliases {
		idx.aliases[strings.ToLower(strings.TrimSpace(alias))] = strings.ToLower(strings.TrimSpace(key))
	}
	for i, entry := range parsed.Profiles {
		key := strings.ToLower(strings.TrimSpace(entry.Key))
		if key == "" {
			return nil, fmt.Errorf("profile %q has no key", entry.Name)
		}
		idx.byKey[key] = i
	}
	return idx, nil
}

// NormalizeFirm maps common spellings of a firm name onto its catalog key.
func (c *Catalog) NormalizeFirm(name string) string {
	lower := strings.ToLower(strings.TrimSpace(name))
	if key, ok := c.profiles.aliases[lower]; ok {
		return key
	}
	return lower
}

// VCProfile resolves a firm by name. Unknown firms get a generic profile and
// known is false. An empty name resolves to nothing.
func (c *Catalog) VCProfile(name string) (profile *venture.VCProfile, known bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, false
	}

	if i, ok := c.profiles.byKey[c.NormalizeFirm(name)]; ok {
		return cloneProfile(&c.profiles.entries[i].VCProfile), true
	}

	return genericProfile(name), false
}

// VCProfiles returns every catalog profile in dataset order.
func (c *Catalog) VCProfiles() []*venture.VCProfile {
	out := make([]*venture.VCProfile, 0, len(c.profiles.entries))
	for i := range c.profiles.entries {
		out = append(out, cloneProfile(&c.profiles.entries[i].VCProfile))
	}
	return out
}

// SearchVCs returns firms whose key, focus areas or thesis mention any keyword.
func (c *Catalog) SearchVCs(keywords []string) []*venture.VCProfile {
	var out []*venture.VCProfile
	seen := make(map[int]struct{})

	for _, keyword := range keywords {
		kw := strings.ToLower(strings.TrimSpace(keyword))
		if kw == "" {
			continue
		}

		for i := range c.profiles.entries {
			if _, ok := seen[i]; ok {
				continue
			}
			entry := &c.profiles.entries[i]
			if strings.Contains(strings.ToLower(entry.Key), kw) ||
				containsFold(entry.FocusAreas, kw) ||
				strings.Contains(strings.ToLower(entry.InvestmentThesis), kw) {
				seen[i] = struct{}{}
				out = append(out, cloneProfile(&entry.VCProfile))
			}
		}
	}
	return out
}

func genericProfile(name string) *venture.VCProfile {
	slug := strings.ReplaceAll(strings.ToLower(name), " ", "")
	return &venture.VCProfile{
		Name:               name,
		InvestmentThesis:   fmt.Sprintf("%s invests in early-stage companies with strong potential for growth and market disruption.", name),
		FocusAreas:         []string{"Technology", "Software", "AI/ML", "Fintech", "Healthcare"},
		InvestmentStages:   []string{"Seed", "Series A", "Series B"},
		GeographicFocus:    []string{"San Francisco", "New York", "London"},
		PortfolioCompanies: []string{"Example Company 1", "Example Company 2", "Example Company 3"},
		FundSize:           "$100M+",
		Website:            fmt.Sprintf("https://%s.com", slug),
		LinkedInURL:        fmt.Sprintf("https://linkedin.com/company/%s", slug),
	}
}

func cloneProfile(p *venture.VCProfile) *venture.VCProfile {
	c := *p
	c.FocusAreas = append([]string(nil), p.FocusAreas...)
	c.InvestmentStages = append([]string(nil), p.InvestmentStages...)
	c.GeographicFocus = append([]string(nil), p.GeographicFocus...)
	c.PortfolioCompanies = append([]string(nil), p.PortfolioCompanies...)
	return &c
}

func containsFold(items []string, target string) bool {
	for _, item := range items {
		if strings.EqualFold(strings.TrimSpace(item), target) {
			return true
		}
	}
	return false
}
