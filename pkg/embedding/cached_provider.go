package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheTTL = 24 * time.Hour

// CachedProvider is a read-through Redis cache in front of another provider.
// Chat queries repeat often ("I have a headache"), and embedding calls are the
// slowest step of the matcher, so repeated queries skip the backend entirely.
type CachedProvider struct {
	inner EmbeddingProvider
	rdb   *redis.Client
}

func NewCachedProvider(inner EmbeddingProvider, rdb *redis.Client) EmbeddingProvider {
	if rdb == nil {
		return inner
	}
	return &CachedProvider{
		inner: inner,
		rdb:   rdb,
	}
}

func cacheKey(text, taskType string) string {
	sum := sha256.Sum256([]byte(taskType + "\x00" + text))
	return "embedding:" + hex.EncodeToString(sum[:])
}

func (p *CachedProvider) Generate(text string, taskType string) (*EmbeddingResponse, error) {
	ctx := context.Background()
	key := cacheKey(text, taskType)

	if raw, err := p.rdb.Get(ctx, key).Bytes(); err == nil {
		var cached EmbeddingResponse
		if json.Unmarshal(raw, &cached) == nil {
			return &cached, nil
		}
	}

	res, err := p.inner.Generate(text, taskType)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(res); err == nil {
		// Cache write failures are ignored; the embedding is already in hand.
		p.rdb.Set(ctx, key, raw, cacheTTL)
	}

	return res, nil
}
