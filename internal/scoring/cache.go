package scoring

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/spigell/vc-sourcer/internal/ai"
)

const DefaultCacheCapacity = 1000

// Store is a secondary embedding cache shared across processes.
type Store interface {
	Get(ctx context.Context, key string) ([]float32, bool, error)
	Set(ctx context.Context, key string, vector []float32) error
}

// EmbeddingCache memoises embeddings by exact text in a bounded LRU, with an
// optional Store behind it. It satisfies ai.Embedder.
type EmbeddingCache struct {
	embedder ai.Embedder
	recent   *lru.Cache[string, []float32]
	store    Store
	logger   *zap.Logger
}

func NewEmbeddingCache(embedder ai.Embedder, capacity int, store Store, logger *zap.Logger) (*EmbeddingCache, error) {
	if embedder == nil {
		return nil, fmt.Errorf("embedder is required")
	}
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	recent, err := lru.New[string, []float32](capacity)
	if err != nil {
		return nil, fmt.Errorf("create embedding lru: %w", err)
	}

	return &EmbeddingCache{
		embedder: embedder,
		recent:   recent,
		store:    store,
		logger:   logger,
	}, nil
}

func (c *EmbeddingCache) Embed(ctx context.Context, text string) ([]float32, error) {
	if v, ok := c.recent.Get(text); ok {
		return v, nil
	}

	key := ContentKey(c.embedder.Model(), text)
	if c.store != nil {
		v, ok, err := c.store.Get(ctx, key)
		switch {
		case err != nil:
			c.logger.Warn("embedding store read failed", zap.Error(err))
		case ok:
			c.recent.Add(text, v)
			return v, nil
		}
	}

	v, err := c.embedder.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	c.recent.Add(text, v)
	if c.store != nil {
		if err := c.store.Set(ctx, key, v); err != nil {
			c.logger.Warn("embedding store write failed", zap.Error(err))
		}
	}
	return v, nil
}

func (c *EmbeddingCache) Model() string {
	return c.embedder.Model()
}

// Clear drops the in-process entries. The Store keeps its own TTL.
func (c *EmbeddingCache) Clear() {
	c.recent.Purge()
}

func (c *EmbeddingCache) Len() int {
	return c.recent.Len()
}

// ContentKey is the sha256 of the model name and text.
func ContentKey(model, text string) string {
	sum := sha256.Sum256([]byte(model + "\x00" + text))
	return hex.EncodeToString(sum[:])
}
