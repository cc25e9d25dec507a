package catalog

import (
	"embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var embedded embed.FS

const (
	vcProfilesFile = "vc_profiles.yaml"
	portfoliosFile = "portfolios.yaml"
	startupsFile   = "startups.yaml"
	peopleFile     = "people.yaml"

	// DefaultPortfolioLimit caps companies returned for one firm.
	DefaultPortfolioLimit = 50
)

// Options points at files that replace the embedded datasets. Empty fields keep the defaults.
type Options struct {
	VCProfilesFile string `mapstructure:"vc-profiles"`
	PortfoliosFile string `mapstructure:"portfolios"`
	StartupsFile   string `mapstructure:"startups"`
	PeopleFile     string `mapstructure:"people"`
}

// Catalog holds the static venture datasets: firm profiles, fallback
// portfolios, mock startups and mock people search.
type Catalog struct {
	profiles   *profileIndex
	portfolios []portfolioEntry
	startups   *startupIndex
	people     *peopleIndex
}

// Default loads the embedded datasets.
func Default() (*Catalog, error) {
	return Load(Options{})
}

func Load(opts Options) (*Catalog, error) {
	profiles, err := loadProfiles(opts.VCProfilesFile)
	if err != nil {
		return nil, fmt.Errorf("loading vc profiles: %w", err)
	}

	portfolios, err := loadPortfolios(opts.PortfoliosFile)
	if err != nil {
		return nil, fmt.Errorf("loading portfolios: %w", err)
	}

	startups, err := loadStartups(opts.StartupsFile)
	if err != nil {
		return nil, fmt.Errorf("loading startups: %w", err)
	}

	people, err := loadPeople(opts.PeopleFile)
	if err != nil {
		return nil, fmt.Errorf("loading people: %w", err)
	}

	return &Catalog{
		profiles:   profiles,
		portfolios: portfolios,
		startups:   startups,
		people:     people,
	}, nil
}

func readDocument(name, override string) (map[string]any, error) {
	var (
		raw []byte
		err error
	)

	if path := strings.TrimSpace(override); path != "" {
		raw, err = os.ReadFile(path)
	} else {
		raw, err = embedded.ReadFile("data/" + name)
	}
	if err != nil {
		return nil, err
	}

	doc := make(map[string]any)
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}
	return doc, nil
}
