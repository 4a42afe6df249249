package speech

import (
	"context"
	"time"

	"timeskill/internal/common/cache"
)

// ArtifactCache is the single-slot store for pre-synthesized speech. The
// key is stable and the scheduler is the only writer, so no locking is
// needed beyond what the Redis client provides.
type ArtifactCache struct {
	client *cache.RedisClient
	ttl    time.Duration
}

func NewArtifactCache(client *cache.RedisClient, ttl time.Duration) *ArtifactCache {
	return &ArtifactCache{client: client, ttl: ttl}
}

// Store overwrites the artifact under key. The TTL bounds staleness if the
// refresh task ever stops running.
func (c *ArtifactCache) Store(ctx context.Context, key string, artifact []byte) error {
	return c.client.SetBytes(ctx, key, artifact, c.ttl)
}

// Fetch returns the cached artifact or the client's miss error.
func (c *ArtifactCache) Fetch(ctx context.Context, key string) ([]byte, error) {
	return c.client.GetBytes(ctx, key)
}
