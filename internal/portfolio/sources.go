package portfolio

import (
	"context"
	"strings"

	"github.com/spigell/vc-sourcer/internal/catalog"
	"github.com/spigell/vc-sourcer/internal/directory"
	"github.com/spigell/vc-sourcer/internal/venture"
)

// Source returns the companies a firm has backed.
type Source interface {
	Name() string
	Portfolio(ctx context.Context, firm string, limit int) ([]venture.PortfolioCompany, error)
}

var jobListingMarkers = []string{"jobs", "careers", "hiring", "job board"}

// StaticSource serves curated portfolios from the catalog.
type StaticSource struct {
	catalog *catalog.Catalog
}

func NewStaticSource(c *catalog.Catalog) *StaticSource {
	return &StaticSource{catalog: c}
}

func (s *StaticSource) Name() string {
	return "catalog"
}

func (s *StaticSource) Portfolio(_ context.Context, firm string, limit int) ([]venture.PortfolioCompany, error) {
	return s.catalog.Portfolio(firm, limit), nil
}

// DirectorySource reads portfolios from the remote directory. Job board
// pages are dropped and missing industries are inferred from the
// description.
type DirectorySource struct {
	client *directory.Client
}

func NewDirectorySource(client *directory.Client) *DirectorySource {
	return &DirectorySource{client: client}
}

func (s *DirectorySource) Name() string {
	return "directory"
}

func (s *DirectorySource) Portfolio(ctx context.Context, firm string, limit int) ([]venture.PortfolioCompany, error) {
	companies, err := s.client.Portfolio(ctx, firm, limit)
	if err != nil {
		return nil, err
	}
	return clean(companies), nil
}

func clean(companies []venture.PortfolioCompany) []venture.PortfolioCompany {
	out := make([]venture.PortfolioCompany, 0, len(companies))
	for _, c := range companies {
		c.Name = strings.TrimSpace(c.Name)
		if c.Name == "" || isJobListing(c.Name) {
			continue
		}
		if strings.TrimSpace(c.Industry) == "" {
			c.Industry = Categorize(c.Name + " " + c.Description)
		}
		out = append(out, c)
	}
	return out
}

func isJobListing(name string) bool {
	lower := strings.ToLower(name)
	for _, m := range jobListingMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}
