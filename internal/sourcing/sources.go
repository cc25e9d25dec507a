package sourcing

import (
	"context"
	"strings"

	"github.com/spigell/vc-sourcer/internal/catalog"
	"github.com/spigell/vc-sourcer/internal/directory"
	"github.com/spigell/vc-sourcer/internal/venture"
)

// StartupSource finds startups for a search keyword.
type StartupSource interface {
	Name() string
	Search(ctx context.Context, keyword string, limit int) ([]*venture.StartupProfile, error)
}

// CatalogStartups searches the embedded mock directory. It never fails.
type CatalogStartups struct {
	catalog *catalog.Catalog
}

func NewCatalogStartups(c *catalog.Catalog) *CatalogStartups {
	return &CatalogStartups{catalog: c}
}

func (s *CatalogStartups) Name() string { return "catalog" }

func (s *CatalogStartups) Search(_ context.Context, keyword string, limit int) ([]*venture.StartupProfile, error) {
	return s.catalog.SearchStartups(keyword, limit), nil
}

// DirectoryStartups searches the remote directory by free text.
type DirectoryStartups struct {
	client *directory.Client
}

func NewDirectoryStartups(client *directory.Client) *DirectoryStartups {
	return &DirectoryStartups{client: client}
}

func (s *DirectoryStartups) Name() string { return "directory" }

func (s *DirectoryStartups) Search(ctx context.Context, keyword string, limit int) ([]*venture.StartupProfile, error) {
	return s.client.SearchStartups(ctx, &directory.SearchParams{Text: keyword, Limit: limit})
}

// TalentQuery is one people search for a portfolio company on a platform.
type TalentQuery struct {
	Company  venture.PortfolioCompany
	Platform string
	Keywords []string
	Limit    int
}

// TalentSource finds people for a portfolio company.
type TalentSource interface {
	Name() string
	SearchTalent(ctx context.Context, q TalentQuery) ([]*venture.TalentProfile, error)
}

// CatalogTalent answers from the embedded people dataset. It never fails.
type CatalogTalent struct {
	catalog *catalog.Catalog
}

func NewCatalogTalent(c *catalog.Catalog) *CatalogTalent {
	return &CatalogTalent{catalog: c}
}

func (s *CatalogTalent) Name() string { return "catalog" }

func (s *CatalogTalent) SearchTalent(_ context.Context, q TalentQuery) ([]*venture.TalentProfile, error) {
	return s.catalog.SearchPeople(q.Platform, q.Company, q.Keywords, q.Limit), nil
}

// DirectoryTalent searches the remote directory's people listing.
type DirectoryTalent struct {
	client *directory.Client
}

func NewDirectoryTalent(client *directory.Client) *DirectoryTalent {
	return &DirectoryTalent{client: client}
}

func (s *DirectoryTalent) Name() string { return "directory" }

func (s *DirectoryTalent) SearchTalent(ctx context.Context, q TalentQuery) ([]*venture.TalentProfile, error) {
	return s.client.SearchPeople(ctx, &directory.PeopleParams{
		Text:     strings.Join(q.Keywords, " "),
		Company:  q.Company.Name,
		Platform: q.Platform,
		Limit:    q.Limit,
	})
}
