package portfolio

import (
	"context"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/spigell/vc-sourcer/internal/catalog"
	"github.com/spigell/vc-sourcer/internal/logger"
	"github.com/spigell/vc-sourcer/internal/venture"
)

const firmCacheSize = 128

// Resolver asks each source in turn until one returns companies. Results
// are cached per firm until Clear is called.
type Resolver struct {
	sources []Source
	limit   int
	logger  *zap.Logger
	cache   *lru.Cache[string, []venture.PortfolioCompany]
}

func NewResolver(logger *zap.Logger, limit int, sources ...Source) *Resolver {
	cache, err := lru.New[string, []venture.PortfolioCompany](firmCacheSize)
	if err != nil {
		// only fails on a non-positive size
		panic(err)
	}
	if limit <= 0 {
		limit = catalog.DefaultPortfolioLimit
	}
	return &Resolver{
		sources: sources,
		limit:   limit,
		logger:  logger,
		cache:   cache,
	}
}

// Companies returns the deduplicated portfolio of a firm. Source errors are
// logged and the next source is tried. An empty list means no source knew
// the firm; it is cached too unless the context was cancelled.
func (r *Resolver) Companies(ctx context.Context, firm string) []venture.PortfolioCompany {
	key := strings.ToLower(strings.TrimSpace(firm))
	if cached, ok := r.cache.Get(key); ok {
		return cached
	}

	log := logger.WithCommonFields(r.logger, firm, "")
	for _, src := range r.sources {
		if ctx.Err() != nil {
			break
		}

		companies, err := src.Portfolio(ctx, firm, r.limit)
		if err != nil {
			log.Warn("portfolio source failed", zap.String("source", src.Name()), zap.Error(err))
			continue
		}
		if len(companies) == 0 {
			log.Debug("portfolio source returned nothing", zap.String("source", src.Name()))
			continue
		}

		companies = Dedupe(companies)
		if len(companies) > r.limit {
			companies = companies[:r.limit]
		}
		log.Info("portfolio resolved",
			zap.String("source", src.Name()),
			zap.Int("companies", len(companies)),
		)
		r.cache.Add(key, companies)
		return companies
	}

	empty := []venture.PortfolioCompany{}
	if ctx.Err() == nil {
		r.cache.Add(key, empty)
	}
	return empty
}

func (r *Resolver) Clear() {
	r.cache.Purge()
}
