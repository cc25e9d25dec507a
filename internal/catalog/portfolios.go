package catalog

import (
	"strings"

	"github.com/spigell/vc-sourcer/internal/venture"
)

const minWordOverlap = 0.3

type portfolioEntry struct {
	Firm      string                     `json:"firm"`
	Companies []venture.PortfolioCompany `json:"companies"`
}

type portfoliosDocument struct {
	Portfolios []portfolioEntry `json:"portfolios"`
}

func loadPortfolios(override string) ([]portfolioEntry, error) {
	doc, err := readDocument(portfoliosFile, override)
	if err != nil {
		return nil, err
	}

	var parsed portfoliosDocument
	if err := decode(doc, &parsed); err != nil {
		return nil, err
	}

	for i := range parsed.Portfolios {
		parsed.Portfolios[i].Firm = strings.ToLower(strings.TrimSpace(parsed.Portfolios[i].Firm))
	}
	return parsed.Portfolios, nil
}

// Portfolio returns the curated portfolio for a firm. The firm is matched
// exactly, then by substring in either direction, then by the best word
// overlap above 0.3. No match returns an empty list.
func (c *Catalog) Portfolio(firm string, limit int) []venture.PortfolioCompany {
	name := strings.ToLower(strings.TrimSpace(firm))
	if name == "" {
		return []venture.PortfolioCompany{}
	}
	if limit <= 0 {
		limit = DefaultPortfolioLimit
	}

	entry := c.matchPortfolio(name)
	if entry == nil {
		return []venture.PortfolioCompany{}
	}

	n := min(limit, len(entry.Companies))
	out := make([]venture.PortfolioCompany, n)
	copy(out, entry.Companies[:n])
	return out
}

func (c *Catalog) matchPortfolio(name string) *portfolioEntry {
	for i := range c.portfolios {
		if c.portfolios[i].Firm == name {
			return &c.portfolios[i]
		}
	}

	for i := range c.portfolios {
		firm := c.portfolios[i].Firm
		if strings.Contains(name, firm) || strings.Contains(firm, name) {
			return &c.portfolios[i]
		}
	}

	var (
		best      *portfolioEntry
		bestScore float64
	)
	nameWords := strings.Fields(name)
	for i := range c.portfolios {
		firmWords := strings.Fields(c.portfolios[i].Firm)
		common := commonWords(nameWords, firmWords)
		if common == 0 {
			continue
		}
		score := float64(common) / float64(max(len(nameWords), len(firmWords)))
		if score > bestScore {
			bestScore = score
			best = &c.portfolios[i]
		}
	}

	if best != nil && bestScore > minWordOverlap {
		return best
	}
	return nil
}

func commonWords(a, b []string) int {
	set := make(map[string]struct{}, len(a))
	for _, w := range a {
		set[w] = struct{}{}
	}

	seen := make(map[string]struct{}, len(b))
	count := 0
	for _, w := range b {
		if _, ok := set[w]; !ok {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		count++
	}
	return count
}
