package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type page struct {
	IDs   []string `json:"ids"`
	Total int64    `json:"total"`
}

func testRedis(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("VETHUB_TEST_REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		t.Skipf("redis not available at %s: %v", addr, err)
	}
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func TestKey_StableAndDistinct(t *testing.T) {
	p := NewPages(nil, "test:", 0, zap.NewNop())

	a, err := p.Key(map[string]any{"state": "TX", "page": 1})
	if err != nil {
		t.Fatal(err)
	}
	b, _ := p.Key(map[string]any{"page": 1, "state": "TX"})
	c, _ := p.Key(map[string]any{"state": "CA", "page": 1})

	if a != b {
		t.Errorf("equal requests should share a key: %q vs %q", a, b)
	}
	if a == c {
		t.Error("different requests should not share a key")
	}
	if a[:5] != "test:" {
		t.Errorf("key %q missing prefix", a)
	}
}

func TestNewPages_DefaultTTL(t *testing.T) {
	if p := NewPages(nil, "", -1, zap.NewNop()); p.ttl != DefaultTTL {
		t.Errorf("ttl = %v, want %v", p.ttl, DefaultTTL)
	}
}

func TestPages_RoundTripAndInvalidate(t *testing.T) {
	rdb := testRedis(t)
	ctx := context.Background()
	prefix := "vethub_test:" + uuid.NewString()[:8] + ":"
	p := NewPages(rdb, prefix, time.Minute, zap.NewNop())

	key, _ := p.Key("q=ptsd")
	var got page
	if p.Get(ctx, key, &got) {
		t.Fatal("expected a miss on an empty cache")
	}

	p.Set(ctx, key, page{IDs: []string{"a", "b"}, Total: 2})
	if !p.Get(ctx, key, &got) {
		t.Fatal("expected a hit after Set")
	}
	if got.Total != 2 || len(got.IDs) != 2 {
		t.Errorf("got %+v", got)
	}

	n, err := p.Invalidate(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("invalidated %d keys, want 1", n)
	}
	if p.Get(ctx, key, &got) {
		t.Error("expected a miss after Invalidate")
	}
}
