package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/vc-sourcer/internal/ai"
	"github.com/spigell/vc-sourcer/internal/ai/gemini"
	"github.com/spigell/vc-sourcer/internal/catalog"
	"github.com/spigell/vc-sourcer/internal/directory"
	"github.com/spigell/vc-sourcer/internal/filtering"
	"github.com/spigell/vc-sourcer/internal/portfolio"
	"github.com/spigell/vc-sourcer/internal/scoring"
	"github.com/spigell/vc-sourcer/internal/secrets"
	"github.com/spigell/vc-sourcer/internal/sourcing"
)

// components are the long-lived parts shared by the commands.
type components struct {
	catalog    *catalog.Catalog
	directory  *directory.Client
	calculator *scoring.Calculator
	closers    []func() error
}

func (c *components) Close(logger *zap.Logger) {
	for _, closeFn := range c.closers {
		if err := closeFn(); err != nil {
			logger.Warn("closing component", zap.Error(err))
		}
	}
}

func buildComponents(ctx context.Context, config *Config, logger *zap.Logger) (*components, error) {
	c := &components{}

	cat, err := catalog.Load(config.Catalog)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	c.catalog = cat

	dir, err := newDirectory(config.Directory, logger)
	if err != nil {
		return nil, fmt.Errorf("building directory client: %w", err)
	}
	c.directory = dir

	embedder, err := c.newEmbedder(ctx, config, logger)
	if err != nil {
		logger.Warn("text similarity disabled", zap.Error(err))
		embedder = nil
	}

	opts := []scoring.Option{scoring.WithOptimizedText(config.Optimized)}
	if model := loadModel(config.Model, logger); model != nil {
		opts = append(opts, scoring.WithModel(model))
	}
	c.calculator = scoring.NewCalculator(embedder, logger, opts...)

	return c, nil
}

func (c *components) agent(config *Config, logger *zap.Logger) *sourcing.Agent {
	portfolioSources := []portfolio.Source{}
	startupSources := []sourcing.StartupSource{}
	if c.directory != nil {
		portfolioSources = append(portfolioSources, portfolio.NewDirectorySource(c.directory))
		startupSources = append(startupSources, sourcing.NewDirectoryStartups(c.directory))
	}
	portfolioSources = append(portfolioSources, portfolio.NewStaticSource(c.catalog))
	startupSources = append(startupSources, sourcing.NewCatalogStartups(c.catalog))

	resolver := portfolio.NewResolver(logger, catalog.DefaultPortfolioLimit, portfolioSources...)

	opts := sourcing.Options{
		MaxStartups:     config.MaxStartups,
		MinimumScore:    config.MinimumScore,
		DisabledFilters: config.DisabledFilters,
		Filters: &filtering.Config{
			ExcludeCompanies: config.ExcludeCompanies,
			ExcludeFile:      config.ExcludeFile,
			ExcludePortfolio: config.ExcludePortfolio,
		},
	}
	if w := config.Workers; w != nil {
		opts.BatchSize = w.BatchSize
		opts.BatchDelay = w.BatchDelay
		opts.Concurrency = w.Concurrency
		opts.RequestsPerMinute = w.RequestsPerMinute
	}

	talentSources := []sourcing.TalentSource{}
	if c.directory != nil {
		talentSources = append(talentSources, sourcing.NewDirectoryTalent(c.directory))
	}
	talentSources = append(talentSources, sourcing.NewCatalogTalent(c.catalog))

	return sourcing.NewAgent(logger, c.catalog, resolver, c.calculator, startupSources, opts).
		WithTalent(talentSources...)
}

// newDirectory returns nil when no base url is configured.
func newDirectory(cfg *DirectoryConfig, logger *zap.Logger) (*directory.Client, error) {
	if cfg == nil || strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, nil
	}

	token := ""
	if strings.TrimSpace(cfg.TokenFile) != "" {
		var err error
		token, err = secrets.Load(secrets.Source{Name: "directory token", File: cfg.TokenFile})
		if err != nil {
			return nil, err
		}
	}

	client, err := directory.New(logger.With(zap.String("source", "directory")), directory.Options{
		BaseURL:           cfg.BaseURL,
		Token:             token,
		Timeout:           cfg.Timeout,
		RequestsPerMinute: cfg.RequestsPerMinute,
		MaxPages:          cfg.MaxPages,
	})
	if err != nil {
		return nil, err
	}
	if cfg.UserAgent != "" {
		client.UserAgent = cfg.UserAgent
	}
	return client, nil
}

// newEmbedder returns nil without error when embeddings are disabled.
func (c *components) newEmbedder(ctx context.Context, config *Config, logger *zap.Logger) (ai.Embedder, error) {
	cfg := config.Embedding
	if cfg == nil || !cfg.Enabled {
		return nil, nil
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported embedding provider: %s", cfg.Provider)
	}
	if cfg.Gemini == nil {
		return nil, errors.New("gemini configuration is required when embeddings are enabled")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: cfg.Gemini.APIKey,
		Env:   "GEMINI_API_KEY",
		File:  cfg.Gemini.APIKeyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set embedding.gemini.api-key-file or GEMINI_API_KEY)", err)
	}

	embedLogger := logger.With(
		zap.String("provider", "gemini"),
		zap.String("model", cfg.Gemini.Model),
		zap.Int("ai_retry_attempts", cfg.Gemini.MaxRetries),
	)

	embedder, err := gemini.NewEmbedder(ctx, gemini.Options{
		APIKey:     apiKey,
		Model:      cfg.Gemini.Model,
		MaxRetries: cfg.Gemini.MaxRetries,
		Dimensions: cfg.Gemini.Dimensions,
		Logger:     embedLogger,
	})
	if err != nil {
		return nil, err
	}

	capacity := scoring.DefaultCacheCapacity
	var store scoring.Store
	if cache := config.Cache; cache != nil {
		if cache.Capacity > 0 {
			capacity = cache.Capacity
		}
		redisStore, err := newRedisStore(cache.Redis)
		if err != nil {
			logger.Warn("redis embedding cache disabled", zap.Error(err))
		} else if redisStore != nil {
			store = redisStore
			c.closers = append(c.closers, redisStore.Close)
		}
	}

	return scoring.NewEmbeddingCache(embedder, capacity, store, logger)
}

func newRedisStore(cfg *RedisConfig) (*scoring.RedisStore, error) {
	if cfg == nil || strings.TrimSpace(cfg.URL) == "" {
		return nil, nil
	}

	password := ""
	if strings.TrimSpace(cfg.PasswordFile) != "" {
		var err error
		password, err = secrets.Load(secrets.Source{Name: "redis password", File: cfg.PasswordFile})
		if err != nil {
			return nil, err
		}
	}
	return scoring.NewRedisStore(cfg.URL, password, cfg.TTL)
}

// loadModel returns nil when no trained model exists; fixed weights apply then.
func loadModel(cfg *ModelConfig, logger *zap.Logger) *scoring.Model {
	if cfg == nil || strings.TrimSpace(cfg.Path) == "" {
		return nil
	}

	model, err := scoring.LoadModel(cfg.Path)
	if err != nil {
		if errors.Is(err, scoring.ErrNoModel) {
			logger.Debug("no trained fit model, using fixed weights", zap.String("path", cfg.Path))
		} else {
			logger.Warn("loading fit model failed, using fixed weights", zap.Error(err))
		}
		return nil
	}

	logger.Info("loaded trained fit model", zap.String("path", cfg.Path), zap.Int("samples", model.Samples))
	return model
}
