package kvstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis stores entries as plain Redis strings under a key prefix. Keys
// matching a prefix registered with WithTTL expire on their own, so Redis
// needs no purge worker.
type Redis struct {
	rdb    *redis.Client
	prefix string
	ttls   map[string]time.Duration
}

// NewRedis returns a Store that namespaces every key with prefix.
func NewRedis(rdb *redis.Client, prefix string) *Redis {
	return &Redis{rdb: rdb, prefix: prefix, ttls: map[string]time.Duration{}}
}

// WithTTL makes every key starting with keyPrefix expire ttl after its
// last write.
func (s *Redis) WithTTL(keyPrefix string, ttl time.Duration) *Redis {
	s.ttls[keyPrefix] = ttl
	return s
}

// TTLFor returns the expiry Set applies to key, or 0 when it never expires.
// The longest matching prefix wins.
func (s *Redis) TTLFor(key string) time.Duration {
	var ttl time.Duration
	best := -1
	for p, d := range s.ttls {
		if strings.HasPrefix(key, p) && len(p) > best {
			ttl, best = d, len(p)
		}
	}
	return ttl
}

func (s *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := s.rdb.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	return b, err
}

func (s *Redis) Set(ctx context.Context, key string, value []byte) error {
	return s.rdb.Set(ctx, s.prefix+key, value, s.TTLFor(key)).Err()
}

func (s *Redis) Clear(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, s.prefix+key).Err()
}
