package filtering

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/vc-sourcer/internal/venture"
)

func startups(names ...string) *venture.Startups {
	s := &venture.Startups{}
	for _, n := range names {
		s.Items = append(s.Items, &venture.StartupProfile{Company: venture.CompanyProfile{Name: n}})
	}
	return s
}

func TestRunDefaultChain(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	exclude := filepath.Join(dir, "reviewed.json")
	reviewed := &venture.Reviewed{Items: []*venture.ReviewedStartup{
		{Name: "Gamma", VCFirm: "Sequoia Capital", ReviewedAt: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
	}}
	if err := reviewed.ToFile(exclude); err != nil {
		t.Fatalf("write exclude file: %v", err)
	}

	core, logs := observer.New(zap.InfoLevel)
	cfg := &Config{
		ExcludeCompanies: []string{"beta"},
		ExcludeFile:      exclude,
		ExcludePortfolio: true,
	}
	deps := Deps{
		Logger:    zap.New(core),
		VCFirm:    "Sequoia Capital",
		Portfolio: []venture.PortfolioCompany{{Name: "Stripe"}},
	}

	got, err := Run(context.Background(), cfg, deps, Default(),
		startups("Alpha", "", "alpha ", "Beta", "Gamma", "Stripe", "Delta"))
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if want := []string{"Alpha", "Delta"}; !reflect.DeepEqual(got.Names(), want) {
		t.Fatalf("names = %v, want %v", got.Names(), want)
	}

	steps := logs.FilterMessage("filter step").All()
	if len(steps) != 5 {
		t.Fatalf("expected 5 step logs, got %d", len(steps))
	}
	first := steps[0].ContextMap()
	if first["name"] != "named" || first["dropped"] != int64(1) || first["left"] != int64(6) {
		t.Fatalf("unexpected first step %+v", first)
	}
}

func TestPortfolioMembersInactiveByDefault(t *testing.T) {
	t.Parallel()

	deps := Deps{Portfolio: []venture.PortfolioCompany{{Name: "Stripe"}}}
	got, err := Run(context.Background(), &Config{}, deps, Default(), startups("Stripe", "Acme"))
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if got.Len() != 2 {
		t.Fatalf("expected portfolio member to stay, got %v", got.Names())
	}
}

func TestDisabledFilterIsSkipped(t *testing.T) {
	t.Parallel()

	steps := Default()
	DisableByName(steps, "dedupe", "raw output requested")

	got, err := Run(context.Background(), nil, Deps{}, steps, startups("Acme", "ACME"))
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if got.Len() != 2 {
		t.Fatalf("expected duplicates to survive, got %v", got.Names())
	}

	var status Status
	for _, s := range Describe(steps) {
		if s.Name == "dedupe" {
			status = s
		}
	}
	if status.Enabled || status.Reason != "raw output requested" {
		t.Fatalf("unexpected dedupe status %+v", status)
	}
}

func TestExcludeFileErrors(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	_, err := Run(context.Background(), &Config{ExcludeFile: path}, Deps{}, Default(), startups("Acme"))
	if err == nil {
		t.Fatal("expected error for malformed exclude file")
	}
}

func TestMissingExcludeFileIsEmpty(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "absent.json")
	got, err := Run(context.Background(), &Config{ExcludeFile: path}, Deps{}, Default(), startups("Acme"))
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if got.Len() != 1 {
		t.Fatalf("expected Acme to survive, got %v", got.Names())
	}
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, nil, Deps{}, Default(), startups("Acme"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
