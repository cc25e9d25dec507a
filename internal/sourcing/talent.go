package sourcing

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/vc-sourcer/internal/logger"
	"github.com/spigell/vc-sourcer/internal/utils"
	"github.com/spigell/vc-sourcer/internal/venture"
	"github.com/spigell/vc-sourcer/internal/workers"
)

const (
	DefaultMaxTalent = 10
	// AnalysisTop is how many results each section of an Analysis keeps.
	AnalysisTop = 10

	descriptionWords = 5
	logTextLimit     = 80
)

var DefaultPlatforms = []string{"linkedin", "crunchbase", "twitter"}

// WithTalent sets the chain of talent sources tried in order.
func (a *Agent) WithTalent(sources ...TalentSource) *Agent {
	a.talent = sources
	return a
}

// SourceTalent finds people for every company in the firm's portfolio and
// orders them by match score, best first. maxPerCompany is split across
// platforms. A firm without portfolio companies is ErrNoPortfolio.
func (a *Agent) SourceTalent(ctx context.Context, vcFirm string, maxPerCompany int, platforms []string) (*venture.TalentResult, error) {
	started := time.Now()

	name := strings.TrimSpace(vcFirm)
	if name == "" {
		return nil, fmt.Errorf("%w: empty firm name", ErrNoVCProfile)
	}
	if maxPerCompany <= 0 {
		maxPerCompany = DefaultMaxTalent
	}
	platforms = normalizePlatforms(platforms)
	log := logger.WithCommonFields(a.logger, name, "")

	companies := a.resolver.Companies(ctx, name)
	if len(companies) == 0 {
		return nil, fmt.Errorf("%w for %s", ErrNoPortfolio, name)
	}
	log.Info("sourcing talent",
		zap.Int("companies", len(companies)),
		zap.Strings("platforms", platforms),
	)

	quota := perKeyword(maxPerCompany, len(platforms))
	outcomes := workers.Bounded(ctx, companies, a.opts.Concurrency, a.limiter,
		func(ctx context.Context, c venture.PortfolioCompany) ([]*venture.TalentProfile, error) {
			return a.companyTalent(ctx, log, c, platforms, quota), nil
		})
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	talent := make([]*venture.TalentProfile, 0, len(companies)*maxPerCompany)
	for i, o := range outcomes {
		if o.Err != nil {
			log.Warn("talent search failed", zap.String("company", companies[i].Name), zap.Error(o.Err))
			continue
		}
		talent = append(talent, o.Value...)
	}
	sort.SliceStable(talent, func(i, j int) bool {
		return talent[i].MatchScore > talent[j].MatchScore
	})
	log.Info("talent found", zap.Int("people", len(talent)))

	names := make([]string, 0, len(companies))
	for _, c := range companies {
		names = append(names, c.Name)
	}

	return &venture.TalentResult{
		VCFirm:             vcFirm,
		AnalysisType:       venture.AnalysisTalent,
		PortfolioCompanies: names,
		Results:            talent,
		ProcessingTime:     time.Since(started).Seconds(),
		Timestamp:          time.Now(),
	}, nil
}

// Analyze runs startup and talent sourcing side by side and keeps the top
// AnalysisTop results of each. Either run failing fails the analysis.
func (a *Agent) Analyze(ctx context.Context, vcFirm string, maxStartups, maxTalent int, platforms []string) (*venture.Analysis, error) {
	var (
		startups *venture.SourcingResult
		talent   *venture.TalentResult
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		startups, err = a.SourceStartups(gctx, vcFirm, maxStartups)
		return err
	})
	g.Go(func() error {
		var err error
		talent, err = a.SourceTalent(gctx, vcFirm, maxTalent, platforms)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &venture.Analysis{
		VCFirm:    vcFirm,
		Timestamp: time.Now(),
		Startups: venture.StartupSection{
			PortfolioCompanies: startups.PortfolioCompanies,
			TotalFound:         startups.Len(),
			ProcessingTime:     startups.ProcessingTime,
			Results:            startups.Results[:min(AnalysisTop, startups.Len())],
		},
		Talent: venture.TalentSection{
			PortfolioCompanies: talent.PortfolioCompanies,
			TotalFound:         talent.Len(),
			ProcessingTime:     talent.ProcessingTime,
			Results:            talent.Results[:min(AnalysisTop, talent.Len())],
		},
	}, nil
}

func (a *Agent) companyTalent(ctx context.Context, log *zap.Logger, company venture.PortfolioCompany, platforms []string, quota int) []*venture.TalentProfile {
	keywords := TalentKeywords(company)
	log.Debug("finding talent",
		zap.String("company", company.Name),
		zap.String("description", utils.TruncateForLog(company.Description, logTextLimit)),
		zap.Strings("keywords", keywords),
	)

	var out []*venture.TalentProfile
	for _, platform := range platforms {
		found, err := a.searchTalent(ctx, log, TalentQuery{
			Company:  company,
			Platform: platform,
			Keywords: keywords,
			Limit:    quota,
		})
		if err != nil {
			log.Error("talent platform failed",
				zap.String("company", company.Name),
				zap.String("platform", platform),
				zap.Error(err),
			)
			continue
		}
		out = append(out, found...)
	}
	return out
}

// searchTalent walks the talent chain and returns the first non-empty answer.
func (a *Agent) searchTalent(ctx context.Context, log *zap.Logger, q TalentQuery) ([]*venture.TalentProfile, error) {
	var lastErr error
	for _, src := range a.talent {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		people, err := src.SearchTalent(ctx, q)
		if err != nil {
			log.Warn("talent source failed, trying next",
				zap.String("source", src.Name()),
				zap.String("platform", q.Platform),
				zap.Error(err),
			)
			lastErr = err
			continue
		}
		if len(people) == 0 {
			continue
		}
		if len(people) > q.Limit {
			people = people[:q.Limit]
		}
		return people, nil
	}
	return nil, lastErr
}

// TalentKeywords returns the company name, its industry and the first words
// of its description.
func TalentKeywords(c venture.PortfolioCompany) []string {
	keywords := make([]string, 0, 2+descriptionWords)
	for _, k := range []string{c.Name, c.Industry} {
		if k = strings.TrimSpace(k); k != "" {
			keywords = append(keywords, k)
		}
	}
	words := strings.Fields(c.Description)
	return append(keywords, words[:min(descriptionWords, len(words))]...)
}

func normalizePlatforms(platforms []string) []string {
	out := make([]string, 0, len(platforms))
	seen := make(map[string]struct{}, len(platforms))
	for _, p := range platforms {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	if len(out) == 0 {
		return append(out, DefaultPlatforms...)
	}
	return out
}
