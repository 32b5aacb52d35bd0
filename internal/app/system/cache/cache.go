// Package cache keeps recently served result pages in Redis.
//
// Pages are keyed by a hash of the canonical filter, so two requests that
// differ only in which alias they used share an entry. A cache miss, a
// decode failure and a Redis outage all look the same to callers: no page.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// DefaultTTL applies when NewPages is given a non-positive ttl.
const DefaultTTL = 2 * time.Minute

// Pages is a Redis-backed page cache.
type Pages struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
	log    *zap.Logger
}

// NewPages returns a page cache that stores entries under prefix for ttl.
func NewPages(rdb *redis.Client, prefix string, ttl time.Duration, logger *zap.Logger) *Pages {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Pages{rdb: rdb, prefix: prefix, ttl: ttl, log: logger}
}

// Key derives the cache key for any JSON-encodable canonical request.
func (p *Pages) Key(req any) (string, error) {
	b, err := json.Marshal(req)
	if err != nil {
		return "", err
	}
	return p.prefix + strconv.FormatUint(xxhash.Sum64(b), 16), nil
}

// Get loads the page stored under key into v. It reports false on a miss
// or any failure; failures are logged, not returned.
func (p *Pages) Get(ctx context.Context, key string, v any) bool {
	b, err := p.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			p.log.Warn("page cache get failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(b, v); err != nil {
		p.log.Warn("page cache entry unreadable", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// Set stores v under key. Failures are logged.
func (p *Pages) Set(ctx context.Context, key string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		p.log.Warn("page cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := p.rdb.Set(ctx, key, b, p.ttl).Err(); err != nil {
		p.log.Warn("page cache set failed", zap.String("key", key), zap.Error(err))
	}
}

// Invalidate removes every cached page. It is called after the resource
// collection changes.
func (p *Pages) Invalidate(ctx context.Context) (int, error) {
	var n int
	iter := p.rdb.Scan(ctx, 0, p.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := p.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return n, err
		}
		n++
	}
	return n, iter.Err()
}
