package filtering

import (
	"context"

	"go.uber.org/zap"

	"github.com/spigell/vc-sourcer/internal/venture"
)

type dedupeFilter struct {
	disabled bool
	reason   string
}

// NewDedupe creates a filter that keeps the first startup for every company name.
func NewDedupe() Filter {
	return &dedupeFilter{}
}

func (f *dedupeFilter) Name() string { return "dedupe" }

func (f *dedupeFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *dedupeFilter) IsEnabled() bool { return !f.disabled }

func (f *dedupeFilter) Validate(*Config) error { return nil }

func (f *dedupeFilter) Apply(_ context.Context, deps Deps, s *venture.Startups) (*venture.Startups, Step, error) {
	initial := s.Len()
	dropped := s.Dedupe()
	if deps.Logger != nil && len(dropped) > 0 {
		deps.Logger.Debug("dropping duplicate startups",
			zap.Strings("duplicates", dropped),
			zap.Int("startups_left", s.Len()),
		)
	}

	return s, Step{Initial: initial, Dropped: len(dropped), Left: s.Len()}, nil
}

func (f *dedupeFilter) Status() Status {
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason}
}
