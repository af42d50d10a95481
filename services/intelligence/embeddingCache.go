package ai

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const embeddingPrefix = "emb:"

// CachedEmbedder memoizes another Embedder in Redis. Cache failures are logged and skipped.
type CachedEmbedder struct {
	next   Embedder
	client *redis.Client
	model  string
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedEmbedder returns next unchanged when client is nil.
func NewCachedEmbedder(next Embedder, client *redis.Client, model string, ttl time.Duration, logger *zap.Logger) Embedder {
	if client == nil {
		return next
	}
	return &CachedEmbedder{next: next, client: client, model: model, ttl: ttl, logger: logger}
}

func (c *CachedEmbedder) key(text string) string {
	sum := sha256.Sum256([]byte(text))
	return embeddingPrefix + c.model + ":" + hex.EncodeToString(sum[:])
}

func (c *CachedEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	key := c.key(text)
	data, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var vec []float32
		if err := json.Unmarshal(data, &vec); err == nil {
			return vec, nil
		}
		c.logger.Warn("Discarding corrupt cached embedding", zap.String("key", key))
	case !errors.Is(err, redis.Nil):
		c.logger.Warn("Embedding cache read failed", zap.Error(err))
	}

	vec, err := c.next.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	b, err := json.Marshal(vec)
	if err != nil {
		return vec, nil
	}
	if err := c.client.Set(ctx, key, b, c.ttl).Err(); err != nil {
		c.logger.Warn("Embedding cache write failed", zap.Error(err))
	}
	return vec, nil
}
