// Package sourcing finds startups for a venture firm and ranks them against
// its thesis and portfolio.
package sourcing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/spigell/vc-sourcer/internal/filtering"
	"github.com/spigell/vc-sourcer/internal/logger"
	"github.com/spigell/vc-sourcer/internal/portfolio"
	"github.com/spigell/vc-sourcer/internal/ranking"
	"github.com/spigell/vc-sourcer/internal/scoring"
	"github.com/spigell/vc-sourcer/internal/utils"
	"github.com/spigell/vc-sourcer/internal/venture"
	"github.com/spigell/vc-sourcer/internal/workers"
)

const DefaultMaxStartups = 50

var (
	ErrNoVCProfile = errors.New("no vc profile could be resolved")
	ErrNoPortfolio = errors.New("no portfolio companies found")
)

// ProfileSource resolves a firm name to its profile. known is false for
// generated profiles.
type ProfileSource interface {
	VCProfile(name string) (profile *venture.VCProfile, known bool)
}

type Options struct {
	MaxStartups  int
	MinimumScore float64

	// Keyword searches in flight and their pace. Zero RequestsPerMinute disables pacing.
	Concurrency       int
	RequestsPerMinute int

	// Startups scored together and the pause between groups.
	BatchSize  int
	BatchDelay time.Duration

	Filters *filtering.Config
	// Names of filters to skip.
	DisabledFilters []string
}

// Agent owns its caches; concurrent agents never share them.
type Agent struct {
	profiles   ProfileSource
	resolver   *portfolio.Resolver
	sources    []StartupSource
	talent     []TalentSource
	calculator *scoring.Calculator
	quality    *scoring.QualityScorer
	limiter    *rate.Limiter
	opts       Options
	logger     *zap.Logger
}

func NewAgent(logger *zap.Logger, profiles ProfileSource, resolver *portfolio.Resolver, calculator *scoring.Calculator, sources []StartupSource, opts Options) *Agent {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.MaxStartups <= 0 {
		opts.MaxStartups = DefaultMaxStartups
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = workers.DefaultConcurrency
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = workers.DefaultBatchSize
	}
	if opts.Filters == nil {
		opts.Filters = &filtering.Config{}
	}

	var limiter *rate.Limiter
	if opts.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(opts.RequestsPerMinute)/60.0), 1)
	}

	return &Agent{
		profiles:   profiles,
		resolver:   resolver,
		sources:    sources,
		calculator: calculator,
		quality:    scoring.NewQualityScorer(logger),
		limiter:    limiter,
		opts:       opts,
		logger:     logger,
	}
}

// SourceStartups finds, scores and ranks startups for a firm. maxStartups
// of zero uses the configured default. Only an unresolvable firm is an
// error; a firm without a known portfolio is scored with neutral portfolio fit.
func (a *Agent) SourceStartups(ctx context.Context, vcFirm string, maxStartups int) (*venture.SourcingResult, error) {
	started := time.Now()

	vc, err := a.profile(vcFirm)
	if err != nil {
		return nil, err
	}
	log := logger.WithCommonFields(a.logger, vc.Name, "")
	log.Debug("vc profile",
		zap.String("thesis", utils.TruncateForLog(vc.InvestmentThesis, logTextLimit)),
		zap.Strings("focus_areas", vc.FocusAreas),
		zap.Strings("stages", vc.InvestmentStages),
	)

	if maxStartups <= 0 {
		maxStartups = a.opts.MaxStartups
	}

	companies := a.resolver.Companies(ctx, vcFirm)
	summary := portfolio.Summarize(companies)
	log.Info("portfolio loaded",
		zap.Int("companies", summary.TotalCompanies),
		zap.Strings("industries", summary.Industries),
	)

	keywords := GenerateKeywords(vc)
	log.Info("generated keywords", zap.Strings("keywords", keywords))

	found := a.search(ctx, log, keywords, perKeyword(maxStartups, len(keywords)))
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	steps := filtering.Default()
	for _, name := range a.opts.DisabledFilters {
		filtering.DisableByName(steps, name, "disabled by configuration")
	}
	deps := filtering.Deps{Logger: log, VCFirm: vc.Name, Portfolio: companies}
	startups, err := filtering.Run(ctx, a.opts.Filters, deps, steps, found)
	if err != nil {
		return nil, fmt.Errorf("filter startups: %w", err)
	}
	for _, st := range filtering.Describe(steps) {
		log.Debug("filter status",
			zap.String("name", st.Name),
			zap.Bool("enabled", st.Enabled),
			zap.String("reason", st.Reason),
			zap.Any("details", st.Details),
		)
	}
	if startups.Len() > maxStartups {
		startups.Items = startups.Items[:maxStartups]
	}
	log.Info("unique startups found", zap.Int("startups", startups.Len()))

	entries, err := a.score(ctx, log, startups.Items, vc, companies)
	if err != nil {
		return nil, err
	}

	results := ranking.Rank(entries)
	if a.opts.MinimumScore > 0 {
		kept := results[:0]
		for _, r := range results {
			if r.FitMetrics.OverallScore >= a.opts.MinimumScore {
				kept = append(kept, r)
			}
		}
		log.Info("applied minimum score",
			zap.Float64("minimum_score", a.opts.MinimumScore),
			zap.Int("dropped", len(results)-len(kept)),
		)
		results = kept
	}

	return &venture.SourcingResult{
		VCFirm:             vcFirm,
		AnalysisType:       venture.AnalysisStartups,
		PortfolioCompanies: summary.Companies,
		Results:            results,
		ProcessingTime:     time.Since(started).Seconds(),
		Timestamp:          time.Now(),
	}, nil
}

// Portfolio returns the resolved portfolio summary of a firm.
func (a *Agent) Portfolio(ctx context.Context, vcFirm string) (*portfolio.Summary, error) {
	if strings.TrimSpace(vcFirm) == "" {
		return nil, ErrNoVCProfile
	}
	companies := a.resolver.Companies(ctx, vcFirm)
	if len(companies) == 0 {
		return nil, fmt.Errorf("%w for %s", ErrNoPortfolio, vcFirm)
	}
	return portfolio.Summarize(companies), nil
}

// ClearCache drops cached portfolios and embeddings.
func (a *Agent) ClearCache() {
	a.resolver.Clear()
	a.calculator.ClearCache()
}

func (a *Agent) profile(vcFirm string) (*venture.VCProfile, error) {
	name := strings.TrimSpace(vcFirm)
	if name == "" {
		return nil, fmt.Errorf("%w: empty firm name", ErrNoVCProfile)
	}

	vc, known := a.profiles.VCProfile(name)
	if vc == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoVCProfile, name)
	}
	if !known {
		a.logger.Info("firm not in catalog, using generic profile", zap.String("vc_firm", name))
	}
	return vc, nil
}

func (a *Agent) search(ctx context.Context, log *zap.Logger, keywords []string, quota int) *venture.Startups {
	if len(keywords) == 0 {
		keywords = []string{""}
	}

	outcomes := workers.Bounded(ctx, keywords, a.opts.Concurrency, a.limiter,
		func(ctx context.Context, keyword string) ([]*venture.StartupProfile, error) {
			return a.searchKeyword(ctx, log, keyword, quota)
		})

	found := &venture.Startups{}
	for i, o := range outcomes {
		if o.Err != nil {
			log.Warn("keyword search failed", zap.String("keyword", keywords[i]), zap.Error(o.Err))
			continue
		}
		found.Items = append(found.Items, o.Value...)
	}
	return found
}

// searchKeyword walks the source chain and returns the first non-empty answer.
func (a *Agent) searchKeyword(ctx context.Context, log *zap.Logger, keyword string, limit int) ([]*venture.StartupProfile, error) {
	var lastErr error
	for _, src := range a.sources {
		startups, err := src.Search(ctx, keyword, limit)
		if err != nil {
			log.Warn("startup source failed, trying next",
				zap.String("source", src.Name()),
				zap.String("keyword", keyword),
				zap.Error(err),
			)
			lastErr = err
			continue
		}
		if len(startups) == 0 {
			continue
		}
		if len(startups) > limit {
			startups = startups[:limit]
		}
		log.Debug("startups found",
			zap.String("source", src.Name()),
			zap.String("keyword", keyword),
			zap.Int("startups", len(startups)),
		)
		return startups, nil
	}
	return nil, lastErr
}

func (a *Agent) score(ctx context.Context, log *zap.Logger, startups []*venture.StartupProfile, vc *venture.VCProfile, companies []venture.PortfolioCompany) ([]ranking.Scored, error) {
	outcomes, err := workers.Batch(ctx, startups, a.opts.BatchSize, a.opts.BatchDelay,
		func(ctx context.Context, s *venture.StartupProfile) (ranking.Scored, error) {
			return a.scoreOne(ctx, s, vc, companies)
		})
	if err != nil {
		return nil, fmt.Errorf("score startups: %w", err)
	}

	entries := make([]ranking.Scored, 0, len(outcomes))
	for i, o := range outcomes {
		if o.Err != nil {
			log.Warn("skipping startup", zap.Int("index", i), zap.Error(o.Err))
			continue
		}
		entries = append(entries, o.Value)
	}
	return entries, nil
}

func (a *Agent) scoreOne(ctx context.Context, s *venture.StartupProfile, vc *venture.VCProfile, companies []venture.PortfolioCompany) (ranking.Scored, error) {
	if s == nil || strings.TrimSpace(s.Company.Name) == "" {
		return ranking.Scored{}, errors.New("startup without company name")
	}

	fit := a.calculator.Calculate(ctx, s, vc)
	s.FitScore = fit.OverallScore
	s.QualityScore = a.quality.Score(s)
	s.PortfolioConflicts = portfolio.DetectConflicts(s, companies)
	s.PortfolioFit = portfolio.EstimateFit(s, companies)

	return ranking.Scored{
		Startup:      s,
		Fit:          fit,
		Quality:      s.QualityScore,
		Conflicts:    s.PortfolioConflicts,
		PortfolioFit: s.PortfolioFit,
	}, nil
}
