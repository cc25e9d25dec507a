package scoring

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
)

type memoryStore struct {
	data map[string][]float32
	sets int
	err  error
}

func (m *memoryStore) Get(_ context.Context, key string) ([]float32, bool, error) {
	if m.err != nil {
		return nil, false, m.err
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memoryStore) Set(_ context.Context, key string, v []float32) error {
	m.sets++
	if m.data == nil {
		m.data = make(map[string][]float32)
	}
	m.data[key] = v
	return nil
}

func TestEmbeddingCacheMemoises(t *testing.T) {
	t.Parallel()

	emb := &stubEmbedder{def: []float32{1, 2}}
	store := &memoryStore{}
	cache, err := NewEmbeddingCache(emb, 2, store, zap.NewNop())
	if err != nil {
		t.Fatalf("NewEmbeddingCache() error = %v", err)
	}

	for i := 0; i < 3; i++ {
		if _, err := cache.Embed(context.Background(), "fintech"); err != nil {
			t.Fatalf("Embed() error = %v", err)
		}
	}
	if emb.callCount() != 1 || store.sets != 1 {
		t.Fatalf("expected one embed and one store write, got %d and %d", emb.callCount(), store.sets)
	}
	if cache.Model() != "stub" {
		t.Fatalf("unexpected model %q", cache.Model())
	}

	cache.Clear()
	if cache.Len() != 0 {
		t.Fatalf("expected empty cache after Clear, got %d", cache.Len())
	}

	// Store still holds the vector after the LRU is purged.
	if _, err := cache.Embed(context.Background(), "fintech"); err != nil {
		t.Fatalf("Embed() error = %v", err)
	}
	if emb.callCount() != 1 {
		t.Fatalf("expected store hit, embedder called %d times", emb.callCount())
	}
}

func TestEmbeddingCacheEvicts(t *testing.T) {
	t.Parallel()

	emb := &stubEmbedder{def: []float32{1}}
	cache, err := NewEmbeddingCache(emb, 1, nil, nil)
	if err != nil {
		t.Fatalf("NewEmbeddingCache() error = %v", err)
	}

	ctx := context.Background()
	_, _ = cache.Embed(ctx, "a")
	_, _ = cache.Embed(ctx, "b")
	_, _ = cache.Embed(ctx, "a")
	if emb.callCount() != 3 {
		t.Fatalf("expected eviction to force a recompute, got %d calls", emb.callCount())
	}
}

func TestEmbeddingCacheSurvivesStoreErrors(t *testing.T) {
	t.Parallel()

	emb := &stubEmbedder{def: []float32{1}}
	cache, err := NewEmbeddingCache(emb, 10, &memoryStore{err: errors.New("down")}, nil)
	if err != nil {
		t.Fatalf("NewEmbeddingCache() error = %v", err)
	}

	if _, err := cache.Embed(context.Background(), "text"); err != nil {
		t.Fatalf("expected store failure to be tolerated, got %v", err)
	}
}

func TestCalculatorClearCachePurgesEmbeddingCache(t *testing.T) {
	t.Parallel()

	emb := &stubEmbedder{def: []float32{1, 1}}
	cache, err := NewEmbeddingCache(emb, 10, nil, nil)
	if err != nil {
		t.Fatalf("NewEmbeddingCache() error = %v", err)
	}

	c := NewCalculator(cache, nil)
	c.Calculate(context.Background(), sampleStartup(), sampleVC())
	if cache.Len() != 2 {
		t.Fatalf("expected firm and startup embeddings cached, got %d", cache.Len())
	}

	c.ClearCache()
	if cache.Len() != 0 {
		t.Fatalf("expected cache purged, got %d", cache.Len())
	}
}

func TestVectorEncoding(t *testing.T) {
	t.Parallel()

	in := []float32{0.25, -1.5, 3}
	out, err := decodeVector(encodeVector(in))
	if err != nil {
		t.Fatalf("decodeVector() error = %v", err)
	}
	for i := range in {
		if in[i] != out[i] {
			t.Fatalf("value %d changed: %v != %v", i, out[i], in[i])
		}
	}
	if _, err := decodeVector([]byte{1, 2, 3}); err == nil {
		t.Fatal("expected error for truncated blob")
	}
}

func TestContentKeyDependsOnModel(t *testing.T) {
	t.Parallel()

	if ContentKey("a", "text") == ContentKey("b", "text") {
		t.Fatal("keys for different models must differ")
	}
	if len(ContentKey("a", "text")) != 64 {
		t.Fatal("expected hex sha256 key")
	}
}
