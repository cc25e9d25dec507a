package scoring

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	DefaultCacheTTL = time.Hour

	redisKeyPrefix = "vc-sourcer:embedding:"
)

// RedisStore keeps embeddings in Redis as little-endian float32 blobs.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore connects using a redis:// URL. An explicit password overrides the one in the URL.
func NewRedisStore(url, password string, ttl time.Duration) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if password != "" {
		opts.Password = password
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}

	return &RedisStore{client: redis.NewClient(opts), ttl: ttl}, nil
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]float32, bool, error) {
	raw, err := s.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	v, err := decodeVector(raw)
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, vector []float32) error {
	return s.client.Set(ctx, redisKeyPrefix+key, encodeVector(vector), s.ttl).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func encodeVector(v []float32) []byte {
	buf := make([]byte, 4*len(v))
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

func decodeVector(raw []byte) ([]float32, error) {
	if len(raw)%4 != 0 {
		return nil, fmt.Errorf("corrupt embedding blob of %d bytes", len(raw))
	}
	v := make([]float32, len(raw)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[i*4:]))
	}
	return v, nil
}
