package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spigell/vc-sourcer/internal/venture"
)

type platformTemplate struct {
	Platform     string   `json:"platform"`
	PerKeyword   bool     `json:"per_keyword"`
	MaxResults   int      `json:"max_results"`
	MatchScore   float64  `json:"match_score"`
	Names        []string `json:"names"`
	Titles       []string `json:"titles"`
	Locations    []string `json:"locations"`
	ProfileURL   string   `json:"profile_url"`
	Experience   string   `json:"experience"`
	Education    string   `json:"education"`
	Endorsements int      `json:"endorsements"`
	Connections  int      `json:"connections"`
	Growth       growth   `json:"growth"`
	Pros         []string `json:"pros"`
	Cons         []string `json:"cons"`
}

type peopleDocument struct {
	Platforms []platformTemplate `json:"platforms"`
}

type peopleIndex struct {
	platforms map[string]platformTemplate
	order     []string
}

func loadPeople(override string) (*peopleIndex, error) {
	doc, err := readDocument(peopleFile, override)
	if err != nil {
		return nil, err
	}

	var parsed peopleDocument
	if err := decode(doc, &parsed); err != nil {
		return nil, err
	}

	idx := &peopleIndex{platforms: make(map[string]platformTemplate, len(parsed.Platforms))}
	for _, p := range parsed.Platforms {
		name := strings.ToLower(strings.TrimSpace(p.Platform))
		if name == "" {
			return nil, fmt.Errorf("people template without platform")
		}
		if len(p.Names) == 0 {
			return nil, fmt.Errorf("platform %q has no names", name)
		}
		p.Platform = name
		if _, ok := idx.platforms[name]; !ok {
			idx.order = append(idx.order, name)
		}
		idx.platforms[name] = p
	}
	return idx, nil
}

// Platforms lists the platforms covered by the people dataset.
func (c *Catalog) Platforms() []string {
	return append([]string(nil), c.people.order...)
}

// SearchPeople returns mock people for a portfolio company on one platform.
// Unknown platforms and a non-positive limit return an empty list.
func (c *Catalog) SearchPeople(platform string, company venture.PortfolioCompany, keywords []string, limit int) []*venture.TalentProfile {
	t, ok := c.people.platforms[strings.ToLower(strings.TrimSpace(platform))]
	if !ok || limit <= 0 {
		return []*venture.TalentProfile{}
	}

	if !t.PerKeyword {
		return t.render(company, "", limit)
	}

	if len(keywords) == 0 {
		keywords = []string{company.Name}
	}
	quota := max(1, limit/len(keywords))

	out := make([]*venture.TalentProfile, 0, limit)
	for _, kw := range keywords {
		out = append(out, t.render(company, kw, quota)...)
		if len(out) >= limit {
			break
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (t platformTemplate) render(company venture.PortfolioCompany, keyword string, n int) []*venture.TalentProfile {
	if t.MaxResults > 0 {
		n = min(n, t.MaxResults)
	}

	out := make([]*venture.TalentProfile, 0, n)
	for i := range n {
		name := pick(t.Names, i)
		r := strings.NewReplacer(
			"{i}", strconv.Itoa(i),
			"{keyword}", keyword,
			"{company}", company.Name,
			"{industry}", company.Industry,
			"{handle}", strings.TrimPrefix(name, "@"),
		)

		out = append(out, &venture.TalentProfile{
			Name:         name,
			Title:        pick(t.Titles, i),
			Company:      company.Name,
			Platform:     t.Platform,
			ProfileURL:   r.Replace(t.ProfileURL),
			Experience:   r.Replace(t.Experience),
			Education:    r.Replace(t.Education),
			Location:     pick(t.Locations, i),
			Endorsements: t.Endorsements + i*t.Growth.Endorsements,
			Connections:  t.Connections + i*t.Growth.Connections,
			MatchScore:   t.MatchScore,
			Pros:         append([]string{}, t.Pros...),
			Cons:         append([]string{}, t.Cons...),
		})
	}
	return out
}

func pick(values []string, i int) string {
	if len(values) == 0 {
		return ""
	}
	return values[i%len(values)]
}
