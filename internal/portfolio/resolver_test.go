package portfolio

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/vc-sourcer/internal/catalog"
	"github.com/spigell/vc-sourcer/internal/venture"
)

type stubSource struct {
	name      string
	companies []venture.PortfolioCompany
	err       error
	calls     int
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Portfolio(_ context.Context, _ string, _ int) ([]venture.PortfolioCompany, error) {
	s.calls++
	return s.companies, s.err
}

func TestResolverFallsBackAndCaches(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.DebugLevel)
	failing := &stubSource{name: "directory", err: errors.New("connection refused")}
	empty := &stubSource{name: "empty"}
	static := &stubSource{name: "catalog", companies: []venture.PortfolioCompany{
		{Name: "Stripe", Industry: "Fintech"},
		{Name: "Stripe", Industry: "Fintech"},
		{Name: "Zoom", Industry: "SaaS"},
	}}

	r := NewResolver(zap.New(core), 10, failing, empty, static)

	got := r.Companies(context.Background(), "Sequoia Capital")
	if len(got) != 2 {
		t.Fatalf("expected deduplicated portfolio of 2, got %+v", got)
	}

	r.Companies(context.Background(), " sequoia capital ")
	if failing.calls != 1 || static.calls != 1 {
		t.Fatalf("expected cached lookup, calls directory=%d catalog=%d", failing.calls, static.calls)
	}

	if n := logs.FilterMessage("portfolio source failed").Len(); n != 1 {
		t.Fatalf("expected one failure log, got %d", n)
	}
	entry := logs.FilterMessage("portfolio resolved").All()[0]
	if entry.ContextMap()["source"] != "catalog" || entry.ContextMap()["vc_firm"] != "Sequoia Capital" {
		t.Fatalf("unexpected resolved log %+v", entry.ContextMap())
	}

	r.Clear()
	r.Companies(context.Background(), "Sequoia Capital")
	if static.calls != 2 {
		t.Fatalf("expected refetch after Clear, got %d calls", static.calls)
	}
}

func TestResolverLimitAndUnknownFirm(t *testing.T) {
	t.Parallel()

	src := &stubSource{name: "s", companies: []venture.PortfolioCompany{
		{Name: "Alpha"}, {Name: "Bravo"}, {Name: "Charlie"},
	}}
	r := NewResolver(zap.NewNop(), 2, src)
	if got := r.Companies(context.Background(), "x"); len(got) != 2 {
		t.Fatalf("expected limit 2, got %d", len(got))
	}

	none := NewResolver(zap.NewNop(), 0, &stubSource{name: "empty"})
	got := none.Companies(context.Background(), "Unknown Partners")
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", got)
	}
}

func TestResolverCachesEmptyPortfolio(t *testing.T) {
	t.Parallel()

	src := &stubSource{name: "empty"}
	r := NewResolver(zap.NewNop(), 0, src)

	for range 3 {
		if got := r.Companies(context.Background(), "Unknown Partners"); got == nil || len(got) != 0 {
			t.Fatalf("expected empty non-nil list, got %#v", got)
		}
	}
	if src.calls != 1 {
		t.Fatalf("expected a single source lookup, got %d", src.calls)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r.Companies(ctx, "Other Partners")
	r.Companies(context.Background(), "Other Partners")
	if src.calls != 2 {
		t.Fatalf("expected cancelled lookup to stay uncached, got %d calls", src.calls)
	}
}

func TestStaticSource(t *testing.T) {
	t.Parallel()

	c, err := catalog.Default()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	src := NewStaticSource(c)
	got, err := src.Portfolio(context.Background(), "Sequoia Capital", 3)
	if err != nil {
		t.Fatalf("Portfolio returned error: %v", err)
	}
	if len(got) != 3 || got[0].Name != "WhatsApp" {
		t.Fatalf("unexpected portfolio %+v", got)
	}
	if src.Name() != "catalog" {
		t.Fatalf("name = %q", src.Name())
	}
}

func TestCleanDirectoryCompanies(t *testing.T) {
	t.Parallel()

	got := clean([]venture.PortfolioCompany{
		{Name: " Acme Payments ", Description: "Card payments"},
		{Name: "Sequoia Jobs", Description: "Careers at portfolio companies"},
		{Name: ""},
		{Name: "Zoom", Industry: "SaaS"},
	})
	if len(got) != 2 {
		t.Fatalf("expected 2 companies, got %+v", got)
	}
	if got[0].Name != "Acme Payments" || got[0].Industry != "Fintech" {
		t.Fatalf("unexpected first company %+v", got[0])
	}
	if got[1].Industry != "SaaS" {
		t.Fatalf("industry overwritten: %+v", got[1])
	}
}
