package filtering

import (
	"context"

	"go.uber.org/zap"

	"github.com/spigell/vc-sourcer/internal/venture"
)

type namedFilter struct{}

// NewNamed creates a filter that drops startups without a company name.
func NewNamed() Filter {
	return &namedFilter{}
}

func (f *namedFilter) Name() string { return "named" }

func (f *namedFilter) Disable(string) {}

func (f *namedFilter) IsEnabled() bool { return true }

func (f *namedFilter) Validate(*Config) error { return nil }

func (f *namedFilter) Apply(_ context.Context, deps Deps, s *venture.Startups) (*venture.Startups, Step, error) {
	initial := s.Len()
	dropped := s.RemoveUnnamed()
	if deps.Logger != nil && dropped > 0 {
		deps.Logger.Warn("dropping startups without a company name",
			zap.Int("dropped", dropped),
			zap.Int("startups_left", s.Len()),
		)
	}

	return s, Step{Initial: initial, Dropped: dropped, Left: s.Len()}, nil
}
