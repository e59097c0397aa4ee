package redis

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/turtacn/CarePath-Insight/pkg/errors"
	notetypes "github.com/turtacn/CarePath-Insight/pkg/types/note"
)

// ResultCache implements the analysis-service cache port over Redis.
// Entries are JSON documents keyed by "<prefix>analysis:<fingerprint>".
type ResultCache struct {
	client *Client
	prefix string
	ttl    time.Duration
}

// NewResultCache constructs a ResultCache.  ttl ≤ 0 falls back to the
// client's configured default TTL.
func NewResultCache(client *Client, ttl time.Duration) *ResultCache {
	if ttl <= 0 {
		ttl = client.cfg.DefaultTTL
	}
	return &ResultCache{client: client, prefix: client.cfg.KeyPrefix, ttl: ttl}
}

// GetResult looks a fingerprint up.  A missing key is (nil, false, nil).
func (c *ResultCache) GetResult(ctx context.Context, fingerprint string) (*notetypes.AnalysisResult, bool, error) {
	payload, err := c.client.rdb.Get(ctx, c.key(fingerprint)).Bytes()
	if stderrors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrap(err, errors.ErrCodeAnalysisCacheFailed, "cache get")
	}

	result := &notetypes.AnalysisResult{}
	if err := json.Unmarshal(payload, result); err != nil {
		// A corrupt entry is dropped so the next lookup recomputes cleanly.
		c.client.rdb.Del(ctx, c.key(fingerprint))
		return nil, false, errors.Wrap(err, errors.ErrCodeSerialization, "cache entry corrupt")
	}
	return result, true, nil
}

// SetResult stores a result under the fingerprint with the cache TTL.
func (c *ResultCache) SetResult(ctx context.Context, fingerprint string, result *notetypes.AnalysisResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "marshal cache entry")
	}
	if err := c.client.rdb.Set(ctx, c.key(fingerprint), payload, c.ttl).Err(); err != nil {
		return errors.Wrap(err, errors.ErrCodeAnalysisCacheFailed, "cache set")
	}
	return nil
}

// Invalidate removes a fingerprint's entry.
func (c *ResultCache) Invalidate(ctx context.Context, fingerprint string) error {
	if err := c.client.rdb.Del(ctx, c.key(fingerprint)).Err(); err != nil {
		return errors.Wrap(err, errors.ErrCodeAnalysisCacheFailed, "cache delete")
	}
	return nil
}

func (c *ResultCache) key(fingerprint string) string {
	return c.prefix + "analysis:" + fingerprint
}
