// payload.go provides a Valkey-backed cache for serialized read-API
// responses. Page payloads are the expensive reads (page + hero + sections);
// caching the encoded JSON lets repeat requests skip the store entirely.
// Publishing a page invalidates its entry.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// pageKeyPrefix is the Valkey key prefix for cached page payloads.
	pageKeyPrefix = "page:"

	// DefaultPageTTL is how long a cached payload stays fresh.
	DefaultPageTTL = 5 * time.Minute
)

// PayloadCache stores encoded JSON response bodies in Valkey.
type PayloadCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPayloadCache creates a payload cache backed by the given Valkey client.
func NewPayloadCache(client *redis.Client, ttl time.Duration) *PayloadCache {
	if ttl == 0 {
		ttl = DefaultPageTTL
	}
	return &PayloadCache{client: client, ttl: ttl}
}

// GetPage retrieves a cached page payload. Returns false on miss. A nil
// cache always misses, so callers need no presence check.
func (pc *PayloadCache) GetPage(ctx context.Context, slug string) ([]byte, bool) {
	if pc == nil {
		return nil, false
	}
	val, err := pc.client.Get(ctx, pageKeyPrefix+slug).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("payload cache get error", "slug", slug, "error", err)
		return nil, false
	}
	slog.Debug("payload cache hit", "slug", slug)
	return val, true
}

// SetPage stores an encoded page payload with the configured TTL.
func (pc *PayloadCache) SetPage(ctx context.Context, slug string, body []byte) {
	if pc == nil {
		return
	}
	if err := pc.client.Set(ctx, pageKeyPrefix+slug, body, pc.ttl).Err(); err != nil {
		slog.Warn("payload cache set error", "slug", slug, "error", err)
	}
}

// InvalidatePage removes a page payload from the cache. Called after a
// publish so the next read reflects the reconciled sections.
func (pc *PayloadCache) InvalidatePage(ctx context.Context, slug string) {
	if pc == nil {
		return
	}
	if err := pc.client.Del(ctx, pageKeyPrefix+slug).Err(); err != nil {
		slog.Warn("payload cache invalidate error", "slug", slug, "error", err)
		return
	}
	slog.Debug("payload cache invalidated", "slug", slug)
}
