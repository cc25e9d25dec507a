package filtering

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/vc-sourcer/internal/venture"
)

type excludeFileFilter struct {
	path string
}

// NewExcludeFile creates a filter that removes startups already recorded in the exclude file.
func NewExcludeFile() Filter {
	return &excludeFileFilter{}
}

func (f *excludeFileFilter) Name() string { return "exclude_file" }

func (f *excludeFileFilter) Disable(string) {}

func (f *excludeFileFilter) IsEnabled() bool { return true }

func (f *excludeFileFilter) Validate(cfg *Config) error {
	f.path = ""
	if cfg != nil {
		f.path = strings.TrimSpace(cfg.ExcludeFile)
	}
	return nil
}

func (f *excludeFileFilter) Apply(_ context.Context, deps Deps, s *venture.Startups) (*venture.Startups, Step, error) {
	initial := s.Len()
	if f.path == "" {
		return s, Step{Initial: initial, Dropped: 0, Left: s.Len()}, nil
	}

	reviewed, err := venture.ReviewedFromFile(f.path)
	if err != nil {
		return s, Step{}, fmt.Errorf("reading reviewed startups from file: %w", err)
	}

	removed := s.Exclude(reviewed.Names())
	if deps.Logger != nil && len(removed) > 0 {
		deps.Logger.Info("excluding startups based on exclude file",
			zap.String("path", f.path),
			zap.Strings("excluded_startups", removed),
			zap.Int("startups_left", s.Len()),
		)
	}

	return s, Step{Initial: initial, Dropped: len(removed), Left: s.Len()}, nil
}

func (f *excludeFileFilter) Status() Status {
	details := map[string]string{}
	if f.path != "" {
		details["path"] = f.path
	}
	return Status{Name: f.Name(), Enabled: true, Details: details}
}
