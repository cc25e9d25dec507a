package scoring

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed data/tables.yaml
var tablesYAML []byte

type region struct {
	Name   string   `yaml:"name"`
	Cities []string `yaml:"cities"`
}

type qualityTables struct {
	PrestigiousCompanies []string       `yaml:"prestigious_companies"`
	Universities         []string       `yaml:"universities"`
	ExperienceKeywords   []string       `yaml:"experience_keywords"`
	Degrees              []string       `yaml:"degrees"`
	Fields               []string       `yaml:"fields"`
	FounderTitles        []string       `yaml:"founder_titles"`
	SeniorTitles         []string       `yaml:"senior_titles"`
	CompanyIndustries    []string       `yaml:"company_industries"`
	CompanyLocations     []string       `yaml:"company_locations"`
	Honors               map[string]int `yaml:"honors"`
}

type fitTables struct {
	RelatedIndustries map[string][]string `yaml:"related_industries"`
	Stages            map[string]int      `yaml:"stages"`
	Regions           []region            `yaml:"regions"`
	NetworkKeywords   []string            `yaml:"network_keywords"`
}

type keywordTables struct {
	Quality qualityTables `yaml:"quality"`
	Fit     fitTables     `yaml:"fit"`
}

var tables = mustLoadTables(tablesYAML)

func mustLoadTables(raw []byte) *keywordTables {
	var t keywordTables
	if err := yaml.Unmarshal(raw, &t); err != nil {
		panic(fmt.Sprintf("scoring: parse keyword tables: %v", err))
	}
	return &t
}
