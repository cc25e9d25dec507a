package filtering

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/vc-sourcer/internal/venture"
)

type excludeCompaniesFilter struct {
	companies []string
}

// NewExcludeCompanies creates a filter that removes startups listed in the config.
func NewExcludeCompanies() Filter {
	return &excludeCompaniesFilter{}
}

func (f *excludeCompaniesFilter) Name() string { return "exclude_companies" }

func (f *excludeCompaniesFilter) Disable(string) {}

func (f *excludeCompaniesFilter) IsEnabled() bool { return true }

func (f *excludeCompaniesFilter) Validate(cfg *Config) error {
	f.companies = nil
	if cfg != nil {
		f.companies = append(f.companies, cfg.ExcludeCompanies...)
	}
	return nil
}

func (f *excludeCompaniesFilter) Apply(_ context.Context, deps Deps, s *venture.Startups) (*venture.Startups, Step, error) {
	initial := s.Len()
	if len(f.companies) == 0 {
		return s, Step{Initial: initial, Dropped: 0, Left: s.Len()}, nil
	}

	excluded := s.Exclude(f.companies)
	if deps.Logger != nil && len(excluded) > 0 {
		deps.Logger.Info("excluding startups by configured names",
			zap.Strings("excluded_startups", excluded),
			zap.Int("startups_left", s.Len()),
		)
	}

	return s, Step{Initial: initial, Dropped: len(excluded), Left: s.Len()}, nil
}

func (f *excludeCompaniesFilter) Status() Status {
	details := map[string]string{}
	if len(f.companies) > 0 {
		details["companies"] = strings.Join(f.companies, ",")
	}
	return Status{Name: f.Name(), Enabled: true, Details: details}
}
