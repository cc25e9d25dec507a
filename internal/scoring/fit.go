package scoring

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/vc-sourcer/internal/ai"
	"github.com/spigell/vc-sourcer/internal/venture"
)

const (
	optimizedFounders      = 2
	optimizedExperienceLen = 200
	optimizedFocusAreas    = 5
	optimizedPortfolio     = 10
)

// Weights of the fixed-weight fit formula.
type Weights struct {
	Text     float64
	Industry float64
	Stage    float64
	Geo      float64
	Network  float64
}

var DefaultWeights = Weights{Text: 0.25, Industry: 0.25, Stage: 0.20, Geo: 0.15, Network: 0.15}

// Overall combines sub-scores into one rounded fit score.
func (w Weights) Overall(m *venture.FitMetrics) float64 {
	return Round2(m.TextSimilarity*w.Text +
		m.IndustryAlignment*w.Industry +
		m.StageAlignment*w.Stage +
		m.GeographicAlignment*w.Geo +
		m.NetworkProximity*w.Network)
}

type Option func(*Calculator)

// WithOptimizedText trims the embedded text: two founders with experience
// cut to 200 characters, five focus areas and ten portfolio names.
func WithOptimizedText(enabled bool) Option {
	return func(c *Calculator) { c.optimized = enabled }
}

// WithModel replaces the fixed weights with a trained model.
func WithModel(m *Model) Option {
	return func(c *Calculator) { c.model = m }
}

// Calculator produces FitMetrics for startups against one firm at a time.
// The firm text embedding is memoised by firm name.
type Calculator struct {
	embedder   ai.Embedder
	similarity *Similarity
	optimized  bool
	model      *Model
	logger     *zap.Logger

	mu           sync.Mutex
	vcEmbeddings map[string][]float32
}

// NewCalculator builds a calculator. A nil embedder disables text similarity.
func NewCalculator(embedder ai.Embedder, logger *zap.Logger, opts ...Option) *Calculator {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Calculator{
		embedder:     embedder,
		similarity:   NewSimilarity(embedder, logger),
		logger:       logger,
		vcEmbeddings: make(map[string][]float32),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Calculate scores one startup against a firm. A nil startup or firm yields
// zero metrics.
func (c *Calculator) Calculate(ctx context.Context, startup *venture.StartupProfile, vc *venture.VCProfile) *venture.FitMetrics {
	if startup == nil || vc == nil {
		c.logger.Warn("fit requested without startup or firm")
		m := &venture.FitMetrics{CalculatedAt: time.Now().UTC()}
		if startup != nil {
			m.StartupID = startup.Company.Name
		}
		if vc != nil {
			m.VCFirm = vc.Name
		}
		return m
	}
	return c.calculate(ctx, startup, vc, c.vcVector(ctx, vc))
}

// CalculateBatch scores many startups against one firm. Unnamed or nil
// startups are skipped with a warning, and cancellation stops the batch early.
// A nil firm yields an empty batch.
func (c *Calculator) CalculateBatch(ctx context.Context, startups []*venture.StartupProfile, vc *venture.VCProfile) []*venture.FitMetrics {
	if vc == nil {
		c.logger.Warn("fit batch without firm", zap.Int("startups", len(startups)))
		return []*venture.FitMetrics{}
	}
	vcVec := c.vcVector(ctx, vc)

	out := make([]*venture.FitMetrics, 0, len(startups))
	for i, s := range startups {
		if err := ctx.Err(); err != nil {
			c.logger.Warn("fit batch interrupted", zap.Int("scored", len(out)), zap.Error(err))
			break
		}
		if s == nil || strings.TrimSpace(s.Company.Name) == "" {
			c.logger.Warn("skipping malformed startup in fit batch", zap.Int("index", i))
			continue
		}
		out = append(out, c.calculate(ctx, s, vc, vcVec))
	}
	return out
}

func (c *Calculator) calculate(ctx context.Context, startup *venture.StartupProfile, vc *venture.VCProfile, vcVec []float32) *venture.FitMetrics {
	m := &venture.FitMetrics{
		StartupID:           startup.Company.Name,
		VCFirm:              vc.Name,
		TextSimilarity:      c.textSimilarity(ctx, startup, vcVec),
		IndustryAlignment:   IndustryAlignment(startup, vc),
		StageAlignment:      StageAlignment(startup, vc),
		GeographicAlignment: GeographicAlignment(startup, vc),
		NetworkProximity:    NetworkProximity(startup),
		CalculatedAt:        time.Now().UTC(),
	}

	if c.model != nil {
		m.OverallScore = c.model.Predict(featureVector(m, startup, vc))
	} else {
		m.OverallScore = DefaultWeights.Overall(m)
	}

	c.logger.Debug("fit calculated",
		zap.String("vc_firm", vc.Name),
		zap.String("startup", m.StartupID),
		zap.Float64("overall", m.OverallScore),
		zap.Float64("text", m.TextSimilarity),
		zap.Float64("industry", m.IndustryAlignment),
		zap.Float64("stage", m.StageAlignment),
		zap.Float64("geo", m.GeographicAlignment),
		zap.Float64("network", m.NetworkProximity),
	)
	return m
}

// Features returns the model inputs for a startup and firm, in FeatureNames order.
func (c *Calculator) Features(ctx context.Context, startup *venture.StartupProfile, vc *venture.VCProfile) []float64 {
	m := c.Calculate(ctx, startup, vc)
	return featureVector(m, startup, vc)
}

// ClearCache forgets memoised firm embeddings and, when the embedder caches, its entries too.
func (c *Calculator) ClearCache() {
	c.mu.Lock()
	c.vcEmbeddings = make(map[string][]float32)
	c.mu.Unlock()

	if clearer, ok := c.embedder.(interface{ Clear() }); ok {
		clearer.Clear()
	}
}

func (c *Calculator) textSimilarity(ctx context.Context, startup *venture.StartupProfile, vcVec []float32) float64 {
	if len(vcVec) == 0 {
		return 0
	}
	text := StartupText(startup, c.optimized)
	if text == "" {
		return 0
	}

	v, ok := c.similarity.embed(ctx, text)
	if !ok {
		return 0
	}
	return VectorScore(v, vcVec)
}

func (c *Calculator) vcVector(ctx context.Context, vc *venture.VCProfile) []float32 {
	if !c.similarity.Enabled() {
		return nil
	}

	c.mu.Lock()
	v, ok := c.vcEmbeddings[vc.Name]
	c.mu.Unlock()
	if ok {
		return v
	}

	v, ok = c.similarity.embed(ctx, VCText(vc, c.optimized))
	if !ok {
		return nil
	}

	c.mu.Lock()
	c.vcEmbeddings[vc.Name] = v
	c.mu.Unlock()
	return v
}

// StartupText joins description, industry and each founder's experience and title.
func StartupText(s *venture.StartupProfile, optimized bool) string {
	parts := make([]string, 0, 2+2*len(s.Founders))
	parts = appendNonEmpty(parts, s.Company.Description, s.Company.Industry)

	founders := s.Founders
	if optimized && len(founders) > optimizedFounders {
		founders = founders[:optimizedFounders]
	}
	for _, f := range founders {
		experience := f.Experience
		if optimized {
			experience = truncateRunes(experience, optimizedExperienceLen)
		}
		parts = appendNonEmpty(parts, experience, f.Title)
	}
	return strings.Join(parts, " ")
}

// VCText joins the thesis, focus areas and portfolio company names.
func VCText(vc *venture.VCProfile, optimized bool) string {
	focus, portfolio := vc.FocusAreas, vc.PortfolioCompanies
	if optimized {
		focus = focus[:min(len(focus), optimizedFocusAreas)]
		portfolio = portfolio[:min(len(portfolio), optimizedPortfolio)]
	}

	parts := appendNonEmpty(nil, vc.InvestmentThesis)
	parts = append(parts, focus...)
	parts = append(parts, portfolio...)
	return strings.Join(parts, " ")
}

func featureVector(m *venture.FitMetrics, startup *venture.StartupProfile, vc *venture.VCProfile) []float64 {
	out := []float64{
		m.TextSimilarity,
		m.IndustryAlignment,
		m.StageAlignment,
		m.GeographicAlignment,
		m.NetworkProximity,
		0, 0, 0, 0,
	}
	if startup != nil {
		out[5] = float64(len(startup.Founders))
		out[6] = float64(len([]rune(startup.Company.Description)))
	}
	if vc != nil {
		out[7] = float64(len(vc.FocusAreas))
		out[8] = float64(len(vc.PortfolioCompanies))
	}
	return out
}

func appendNonEmpty(parts []string, values ...string) []string {
	for _, v := range values {
		if v != "" {
			parts = append(parts, v)
		}
	}
	return parts
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
