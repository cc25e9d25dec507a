package filtering

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/spigell/vc-sourcer/internal/venture"
)

type portfolioMembersFilter struct {
	disabled bool
	reason   string
	active   bool
}

// NewPortfolioMembers creates a filter that removes startups the firm has already backed.
// It runs only when Config.ExcludePortfolio is set.
func NewPortfolioMembers() Filter {
	return &portfolioMembersFilter{}
}

func (f *portfolioMembersFilter) Name() string { return "portfolio_members" }

func (f *portfolioMembersFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *portfolioMembersFilter) IsEnabled() bool { return !f.disabled }

func (f *portfolioMembersFilter) Validate(cfg *Config) error {
	f.active = cfg != nil && cfg.ExcludePortfolio
	return nil
}

func (f *portfolioMembersFilter) Apply(_ context.Context, deps Deps, s *venture.Startups) (*venture.Startups, Step, error) {
	initial := s.Len()
	if !f.active || len(deps.Portfolio) == 0 {
		return s, Step{Initial: initial, Dropped: 0, Left: s.Len()}, nil
	}

	names := make([]string, 0, len(deps.Portfolio))
	for _, c := range deps.Portfolio {
		names = append(names, c.Name)
	}

	excluded := s.Exclude(names)
	if deps.Logger != nil && len(excluded) > 0 {
		deps.Logger.Info("excluding startups already in the portfolio",
			zap.String("vc_firm", deps.VCFirm),
			zap.Strings("excluded_startups", excluded),
			zap.Int("startups_left", s.Len()),
		)
	}

	return s, Step{Initial: initial, Dropped: len(excluded), Left: s.Len()}, nil
}

func (f *portfolioMembersFilter) Status() Status {
	details := map[string]string{
		"exclude_portfolio": strconv.FormatBool(f.active),
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
