package scoring

import (
	"context"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/vc-sourcer/internal/ai"
)

// Similarity scores semantic closeness of two texts on a 0-100 scale.
// A nil embedder scores everything 0.
type Similarity struct {
	embedder ai.Embedder
	logger   *zap.Logger
}

func NewSimilarity(embedder ai.Embedder, logger *zap.Logger) *Similarity {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Similarity{embedder: embedder, logger: logger}
}

func (s *Similarity) Enabled() bool {
	return s != nil && s.embedder != nil
}

// Score embeds both texts and returns their cosine similarity times 100,
// floored at 0. Empty text or an embedding failure scores 0.
func (s *Similarity) Score(ctx context.Context, a, b string) float64 {
	if strings.TrimSpace(a) == "" || strings.TrimSpace(b) == "" || !s.Enabled() {
		return 0
	}

	va, ok := s.embed(ctx, a)
	if !ok {
		return 0
	}
	vb, ok := s.embed(ctx, b)
	if !ok {
		return 0
	}
	return VectorScore(va, vb)
}

func (s *Similarity) embed(ctx context.Context, text string) ([]float32, bool) {
	if !s.Enabled() || strings.TrimSpace(text) == "" {
		return nil, false
	}
	v, err := s.embedder.Embed(ctx, text)
	if err != nil {
		s.logger.Error("embedding failed, text similarity set to 0", zap.Error(err))
		return nil, false
	}
	return v, true
}

// VectorScore maps the cosine of two vectors onto [0, 100].
func VectorScore(a, b []float32) float64 {
	return math.Max(0, Clamp(Cosine(a, b)*100, -100, 100))
}

// Cosine returns 0 for zero-length, zero-norm or mismatched vectors.
func Cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
