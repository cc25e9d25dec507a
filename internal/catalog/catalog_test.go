package catalog

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/spigell/vc-sourcer/internal/venture"
)

func mustDefault(t *testing.T) *Catalog {
	t.Helper()

	c, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	return c
}

func TestVCProfileResolution(t *testing.T) {
	t.Parallel()

	c := mustDefault(t)

	tests := []struct {
		input     string
		wantName  string
		wantKnown bool
	}{
		{input: "Andreessen Horowitz", wantName: "Andreessen Horowitz (a16z)", wantKnown: true},
		{input: "  a16z ", wantName: "Andreessen Horowitz (a16z)", wantKnown: true},
		{input: "Acme Ventures", wantName: "Acme Ventures", wantKnown: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			profile, known := c.VCProfile(tt.input)
			if profile == nil {
				t.Fatalf("VCProfile(%q) returned nil", tt.input)
			}
			if profile.Name != tt.wantName || known != tt.wantKnown {
				t.Fatalf("VCProfile(%q) = (%q, %v), want (%q, %v)", tt.input, profile.Name, known, tt.wantName, tt.wantKnown)
			}
		})
	}

	if profile, _ := c.VCProfile("   "); profile != nil {
		t.Fatalf("expected nil profile for blank name, got %+v", profile)
	}
}

func TestGenericProfileDefaults(t *testing.T) {
	t.Parallel()

	profile, _ := mustDefault(t).VCProfile("Acme Ventures")
	if profile.FundSize != "$100M+" {
		t.Fatalf("unexpected fund size %q", profile.FundSize)
	}
	if len(profile.FocusAreas) != 5 || profile.FocusAreas[2] != "AI/ML" {
		t.Fatalf("unexpected focus areas %v", profile.FocusAreas)
	}
	if profile.Website != "https://acmeventures.com" {
		t.Fatalf("unexpected website %q", profile.Website)
	}
}

func TestVCProfileReturnsCopies(t *testing.T) {
	t.Parallel()

	c := mustDefault(t)
	first, _ := c.VCProfile("sequoia")
	first.FocusAreas[0] = "changed"

	second, _ := c.VCProfile("sequoia")
	if second.FocusAreas[0] == "changed" {
		t.Fatal("catalog profile was mutated through a returned copy")
	}
}

func TestSearchVCs(t *testing.T) {
	t.Parallel()

	found := mustDefault(t).SearchVCs([]string{"fintech"})
	if len(found) == 0 {
		t.Fatal("expected at least one firm focused on fintech")
	}
	for _, p := range found {
		if p.Name == "" {
			t.Fatalf("unexpected unnamed profile %+v", p)
		}
	}
}

func TestPortfolioMatching(t *testing.T) {
	t.Parallel()

	c := mustDefault(t)

	tests := []struct {
		firm string
		want int
	}{
		{firm: "Sequoia Capital", want: 10},
		{firm: "sequoia", want: 10},
		{firm: "Nexus Partners", want: 10},
		{firm: "Unknown Fund", want: 0},
		{firm: "", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.firm, func(t *testing.T) {
			t.Parallel()

			got := c.Portfolio(tt.firm, 0)
			if got == nil {
				t.Fatal("Portfolio returned nil slice")
			}
			if len(got) != tt.want {
				t.Fatalf("Portfolio(%q) returned %d companies, want %d", tt.firm, len(got), tt.want)
			}
		})
	}

	if got := c.Portfolio("sequoia capital", 3); len(got) != 3 {
		t.Fatalf("expected limit to cap portfolio at 3, got %d", len(got))
	}
}

func TestSearchStartupsExactKeyword(t *testing.T) {
	t.Parallel()

	got := mustDefault(t).SearchStartups("Fintech", 100)
	if len(got) != 15 {
		t.Fatalf("expected 15 fintech startups, got %d", len(got))
	}

	first := got[0]
	if first.Company.Name != "FinTech Pro 1" || first.Company.Location != "New York, NY" || first.Company.FundingStage != "Seed" {
		t.Fatalf("unexpected first startup %+v", first.Company)
	}
	if first.Source != "catalog" {
		t.Fatalf("unexpected source %q", first.Source)
	}

	last := got[14]
	if last.Company.Location != "London, UK" || last.Company.FundingStage != "Series A" {
		t.Fatalf("unexpected tier values for last startup %+v", last.Company)
	}
	founder := last.Founders[0]
	if founder.LinkedInConnections != 1200+14*100 || founder.Endorsements != 60+14*5 {
		t.Fatalf("unexpected founder growth %d/%d", founder.LinkedInConnections, founder.Endorsements)
	}
	if founder.Company != "FinTech Pro 15" {
		t.Fatalf("founder company not filled, got %q", founder.Company)
	}
}

func TestSearchStartupsSlicesAndCycles(t *testing.T) {
	t.Parallel()

	c := mustDefault(t)

	growth := c.SearchStartups("growth stage", 0)
	if len(growth) != 15 || growth[0].Company.Name != "AI Solutions 6" {
		t.Fatalf("unexpected growth stage results: %d, first %q", len(growth), growth[0].Company.Name)
	}

	india := c.SearchStartups("nexus", 0)
	if len(india) != 12 {
		t.Fatalf("expected 12 india startups, got %d", len(india))
	}
	if !strings.Contains(india[1].Founders[0].Experience, "Microsoft") {
		t.Fatalf("employer cycle not applied: %q", india[1].Founders[0].Experience)
	}
	if india[2].Founders[0].Education != "BTech Computer Science, IIT Madras" {
		t.Fatalf("campus cycle not applied: %q", india[2].Founders[0].Education)
	}
	if india[0].Company.Industry != "SaaS" || india[5].Company.Industry != "Fintech" || india[11].Company.Industry != "AI/ML" {
		t.Fatalf("industry tiers not applied")
	}
}

func TestSearchStartupsFallbacks(t *testing.T) {
	t.Parallel()

	c := mustDefault(t)

	partial := c.SearchStartups("quantum cybersecurity", 0)
	if len(partial) == 0 || partial[0].Company.Industry != "Cybersecurity" {
		t.Fatalf("expected partial keyword match on cybersecurity, got %d results", len(partial))
	}

	all := c.SearchStartups("", 5)
	if len(all) != 5 || all[0].Company.Name != "AI Solutions 1" {
		t.Fatalf("expected first five startups in dataset order, got %d", len(all))
	}

	again := c.SearchStartups("", 5)
	again[0].Company.Name = "mutated"
	if c.SearchStartups("", 1)[0].Company.Name != "AI Solutions 1" {
		t.Fatal("search results share state with the catalog")
	}
}

func TestParseRef(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw     string
		want    familyRef
		wantErr bool
	}{
		{raw: "ai", want: familyRef{family: "ai", to: -1}},
		{raw: "ai[:5]", want: familyRef{family: "ai", to: 5}},
		{raw: "ai[5:10]", want: familyRef{family: "ai", from: 5, to: 10}},
		{raw: "ai[5]", wantErr: true},
		{raw: "ai[x:1]", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()

			got, err := parseRef(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.raw)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseRef(%q) error = %v", tt.raw, err)
			}
			if got != tt.want {
				t.Fatalf("parseRef(%q) = %+v, want %+v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestLoadOverrideFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "portfolios.yaml")
	data := "portfolios:\n  - firm: Tiny Fund\n    companies:\n      - {name: Alpha, industry: SaaS}\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write override: %v", err)
	}

	c, err := Load(Options{PortfoliosFile: path})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	got := c.Portfolio("tiny fund", 0)
	if len(got) != 1 || got[0].Name != "Alpha" {
		t.Fatalf("unexpected override portfolio %+v", got)
	}
}

func TestLoadStartupsFileAcceptsScrapedCounts(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "startups.yaml")
	data := `- company:
    name: Alpha
    industry: SaaS
  founders:
    - name: Jane
      linkedin_connections: "500+"
      endorsements: "1,200"
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write startups: %v", err)
	}

	got, err := LoadStartupsFile(path)
	if err != nil {
		t.Fatalf("LoadStartupsFile() error = %v", err)
	}
	if len(got) != 1 || got[0].Founders[0].LinkedInConnections != 500 || got[0].Founders[0].Endorsements != 1200 {
		t.Fatalf("unexpected decoded startups %+v", got)
	}
}

func TestLoadSamplesRequiresFirm(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "samples.yaml")
	data := "- startup: {company: {name: Alpha}}\n  score: 70\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write samples: %v", err)
	}

	if _, err := LoadSamples(path); err == nil {
		t.Fatal("expected error for sample without vc")
	}
}

func TestSearchPeople(t *testing.T) {
	t.Parallel()

	c := mustDefault(t)
	stripe := venture.PortfolioCompany{Name: "Stripe", Industry: "Fintech", Description: "Payment processing"}

	if got := c.Platforms(); !reflect.DeepEqual(got, []string{"linkedin", "crunchbase", "twitter"}) {
		t.Fatalf("Platforms() = %v", got)
	}

	cases := []struct {
		name     string
		platform string
		keywords []string
		limit    int
		want     []string
	}{
		{name: "capped by platform", platform: "crunchbase", limit: 10, want: []string{"Alex Johnson", "Sarah Chen", "Michael Rodriguez", "Priya Patel", "David Kim"}},
		{name: "case insensitive platform", platform: " Twitter ", limit: 2, want: []string{"@techfounder", "@startupceo"}},
		{name: "one per keyword", platform: "linkedin", keywords: []string{"Stripe", "Fintech", "Payment", "processing"}, limit: 3, want: []string{"Alex Johnson", "Alex Johnson", "Alex Johnson"}},
		{name: "unknown platform", platform: "myspace", limit: 5, want: []string{}},
		{name: "zero limit", platform: "linkedin", limit: 0, want: []string{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := c.SearchPeople(tc.platform, stripe, tc.keywords, tc.limit)
			names := make([]string, 0, len(got))
			for _, p := range got {
				names = append(names, p.Name)
			}
			if !reflect.DeepEqual(names, tc.want) {
				t.Fatalf("names = %v, want %v", names, tc.want)
			}
		})
	}
}

func TestSearchPeopleRendersTemplates(t *testing.T) {
	t.Parallel()

	c := mustDefault(t)
	stripe := venture.PortfolioCompany{Name: "Stripe", Industry: "Fintech"}

	crunchbase := c.SearchPeople("crunchbase", stripe, nil, 1)[0]
	if crunchbase.ProfileURL != "https://crunchbase.com/person/0" ||
		crunchbase.Experience != "Previous experience at Fintech companies" ||
		crunchbase.Company != "Stripe" || crunchbase.MatchScore != 60 || crunchbase.Location != "San Francisco, CA" {
		t.Fatalf("unexpected crunchbase profile %+v", crunchbase)
	}

	twitter := c.SearchPeople("twitter", stripe, nil, 1)[0]
	if twitter.ProfileURL != "https://twitter.com/techfounder" || twitter.Experience != "Active in Fintech space" || twitter.MatchScore != 40 {
		t.Fatalf("unexpected twitter profile %+v", twitter)
	}

	linkedin := c.SearchPeople("linkedin", stripe, []string{"AI", "payments"}, 12)
	if len(linkedin) != 12 {
		t.Fatalf("expected 12 linkedin profiles, got %d", len(linkedin))
	}
	second := linkedin[1]
	if second.Title != "CTO" || second.Location != "New York, NY" || second.Endorsements != 60 || second.Connections != 600 ||
		second.Experience != "Previous experience in AI space" || second.ProfileURL != "https://linkedin.com/in/person1" {
		t.Fatalf("unexpected second linkedin profile %+v", second)
	}
	if linkedin[6].Experience != "Previous experience in payments space" || linkedin[5].Name != "Emily Watson" {
		t.Fatalf("unexpected keyword split %+v / %+v", linkedin[5], linkedin[6])
	}

	linkedin[0].Pros[0] = "changed"
	if again := c.SearchPeople("linkedin", stripe, []string{"AI"}, 1); again[0].Pros[0] != "Professional profile" {
		t.Fatalf("template pros were shared: %v", again[0].Pros)
	}
}

func TestLoadPeopleRequiresNames(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "people.yaml")
	if err := os.WriteFile(path, []byte("platforms:\n  - platform: mastodon\n"), 0o600); err != nil {
		t.Fatalf("write override: %v", err)
	}
	if _, err := Load(Options{PeopleFile: path}); err == nil || !strings.Contains(err.Error(), "mastodon") {
		t.Fatalf("expected error naming the platform, got %v", err)
	}
}
