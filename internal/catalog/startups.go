package catalog

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/spigell/vc-sourcer/internal/venture"
)

const catalogSource = "catalog"

type tier struct {
	Value string `json:"value"`
	Until int    `json:"until"`
}

type tiers []tier

func (t tiers) at(i int) (string, bool) {
	for _, item := range t {
		if item.Until == 0 || i < item.Until {
			return item.Value, true
		}
	}
	return "", false
}

type growth struct {
	Connections  int `json:"connections"`
	Endorsements int `json:"endorsements"`
}

type founderTemplate struct {
	venture.FounderProfile
	Growth growth `json:"growth"`
}

type family struct {
	ID           string                 `json:"id"`
	Count        int                    `json:"count"`
	Cycles       map[string][]string    `json:"cycles"`
	Company      venture.CompanyProfile `json:"company"`
	Industry     tiers                  `json:"industry"`
	Location     tiers                  `json:"location"`
	FundingStage tiers                  `json:"funding_stage"`
	Founder      founderTemplate        `json:"founder"`
}

type keywordEntry struct {
	Keyword  string   `json:"keyword"`
	Startups []string `json:"startups"`
}

type startupsDocument struct {
	Families []family         `json:"families"`
	Keywords []keywordEntry   `json:"keywords"`
	Aliases  map[string]string `json:"aliases"`
}

type familyRef struct {
	family   string
	from, to int
}

type startupIndex struct {
	families map[string][]*venture.StartupProfile
	order    []string
	keywords []keywordIndexEntry
	exact    map[string]int
	aliases  map[string]string
}

type keywordIndexEntry struct {
	keyword string
	refs    []familyRef
}

func loadStartups(override string) (*startupIndex, error) {
	doc, err := readDocument(startupsFile, override)
	if err != nil {
		return nil, err
	}

	var parsed startupsDocument
	if err := decode(doc, &parsed); err != nil {
		return nil, err
	}

	idx := &startupIndex{
		families: make(map[string][]*venture.StartupProfile, len(parsed.Families)),
		exact:    make(map[string]int, len(parsed.Keywords)),
		aliases:  make(map[string]string, len(parsed.Aliases)),
	}

	for _, f := range parsed.Families {
		id := strings.ToLower(strings.TrimSpace(f.ID))
		if id == "" {
			return nil, fmt.Errorf("startup family without id")
		}
		idx.families[id] = f.render()
		idx.order = append(idx.order, id)
	}

	for _, entry := range parsed.Keywords {
		kw := strings.ToLower(strings.TrimSpace(entry.Keyword))
		refs := make([]familyRef, 0, len(entry.Startups))
		for _, raw := range entry.Startups {
			ref, err := parseRef(raw)
			if err != nil {
				return nil, fmt.Errorf("keyword %q: %w", entry.Keyword, err)
			}
			if _, ok := idx.families[ref.family]; !ok {
				return nil, fmt.Errorf("keyword %q references unknown family %q", entry.Keyword, ref.family)
			}
			refs = append(refs, ref)
		}
		idx.exact[kw] = len(idx.keywords)
		idx.keywords = append(idx.keywords, keywordIndexEntry{keyword: kw, refs: refs})
	}

	for alias, target := range parsed.Aliases {
		idx.aliases[strings.ToLower(strings.TrimSpace(alias))] = strings.ToLower(strings.TrimSpace(target))
	}

	return idx, nil
}

// parseRef reads "family", "family[:5]" or "family[5:10]".
func parseRef(raw string) (familyRef, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	open := strings.IndexByte(raw, '[')
	if open < 0 {
		return familyRef{family: raw, to: -1}, nil
	}
	if !strings.HasSuffix(raw, "]") {
		return familyRef{}, fmt.Errorf("malformed reference %q", raw)
	}

	ref := familyRef{family: raw[:open], to: -1}
	bounds := strings.SplitN(raw[open+1:len(raw)-1], ":", 2)
	if len(bounds) != 2 {
		return familyRef{}, fmt.Errorf("malformed reference %q", raw)
	}

	var err error
	if bounds[0] != "" {
		if ref.from, err = strconv.Atoi(bounds[0]); err != nil {
			return familyRef{}, fmt.Errorf("malformed reference %q: %w", raw, err)
		}
	}
	if bounds[1] != "" {
		if ref.to, err = strconv.Atoi(bounds[1]); err != nil {
			return familyRef{}, fmt.Errorf("malformed reference %q: %w", raw, err)
		}
	}
	return ref, nil
}

func (f family) render() []*venture.StartupProfile {
	out := make([]*venture.StartupProfile, 0, f.Count)
	for i := 0; i < f.Count; i++ {
		pairs := []string{"{n}", strconv.Itoa(i + 1)}
		for name, values := range f.Cycles {
			if len(values) > 0 {
				pairs = append(pairs, "{"+name+"}", values[i%len(values)])
			}
		}
		r := strings.NewReplacer(pairs...)

		company := f.Company
		company.Name = r.Replace(company.Name)
		company.Description = r.Replace(company.Description)
		company.Website = r.Replace(company.Website)
		company.LinkedInURL = r.Replace(company.LinkedInURL)
		if v, ok := f.Industry.at(i); ok {
			company.Industry = v
		}
		if v, ok := f.Location.at(i); ok {
			company.Location = v
		}
		if v, ok := f.FundingStage.at(i); ok {
			company.FundingStage = v
		}

		founder := f.Founder.FounderProfile
		founder.Name = r.Replace(founder.Name)
		founder.Title = r.Replace(founder.Title)
		founder.Experience = r.Replace(founder.Experience)
		founder.Education = r.Replace(founder.Education)
		founder.LinkedInURL = r.Replace(founder.LinkedInURL)
		founder.Company = company.Name
		founder.LinkedInConnections += i * f.Founder.Growth.Connections
		founder.Endorsements += i * f.Founder.Growth.Endorsements

		out = append(out, &venture.StartupProfile{
			Company:  company,
			Founders: []venture.FounderProfile{founder},
			Source:   catalogSource,
		})
	}
	return out
}

func (idx *startupIndex) resolve(refs []familyRef) []*venture.StartupProfile {
	var out []*venture.StartupProfile
	for _, ref := range refs {
		items := idx.families[ref.family]
		from := min(ref.from, len(items))
		to := len(items)
		if ref.to >= 0 && ref.to < to {
			to = ref.to
		}
		if from < to {
			out = append(out, items[from:to]...)
		}
	}
	return out
}

func (idx *startupIndex) all() []*venture.StartupProfile {
	var out []*venture.StartupProfile
	for _, id := range idx.order {
		out = append(out, idx.families[id]...)
	}
	return out
}

// SearchStartups finds mock startups for a keyword. Lookup goes exact
// keyword, then partial containment in either direction, then the alias
// table, then every startup in dataset order. Results are fresh copies.
func (c *Catalog) SearchStartups(keyword string, limit int) []*venture.StartupProfile {
	idx := c.startups
	kw := strings.ToLower(strings.TrimSpace(keyword))

	var matches []*venture.StartupProfile
	if kw != "" {
		if i, ok := idx.exact[kw]; ok {
			matches = idx.resolve(idx.keywords[i].refs)
		} else {
			for _, entry := range idx.keywords {
				if strings.Contains(kw, entry.keyword) || strings.Contains(entry.keyword, kw) {
					matches = append(matches, idx.resolve(entry.refs)...)
				}
			}
		}

		if len(matches) == 0 {
			if target, ok := idx.aliases[kw]; ok {
				if i, ok := idx.exact[target]; ok {
					matches = idx.resolve(idx.keywords[i].refs)
				}
			}
		}
	}

	if len(matches) == 0 {
		matches = idx.all()
	}

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}

	out := make([]*venture.StartupProfile, 0, len(matches))
	for _, m := range matches {
		out = append(out, cloneStartup(m))
	}
	return out
}

func cloneStartup(s *venture.StartupProfile) *venture.StartupProfile {
	c := *s
	c.Founders = append([]venture.FounderProfile(nil), s.Founders...)
	c.PortfolioConflicts = nil
	c.PortfolioFit = nil
	return &c
}

// LoadStartupsFile reads a YAML or JSON list of startups.
func LoadStartupsFile(path string) ([]*venture.StartupProfile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var items []any
	if err := yaml.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	var startups []*venture.StartupProfile
	if err := decode(items, &startups); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return startups, nil
}

// LabeledStartup is one training sample: a startup, the firm it was judged
// against and the observed fit score.
type LabeledStartup struct {
	Startup *venture.StartupProfile `json:"startup"`
	VC      string                  `json:"vc"`
	Score   float64                 `json:"score"`
}

// LoadSamples reads labeled training samples from a YAML or JSON file.
func LoadSamples(path string) ([]LabeledStartup, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var items []any
	if err := yaml.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	var samples []LabeledStartup
	if err := decode(items, &samples); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	for i, s := range samples {
		if s.Startup == nil || strings.TrimSpace(s.VC) == "" {
			return nil, fmt.Errorf("sample %d: startup and vc are required", i)
		}
	}
	return samples, nil
}
