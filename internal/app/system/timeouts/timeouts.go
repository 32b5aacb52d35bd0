// Package timeouts provides centralized timeout values for handler operations.
//
// These timeouts are used with context.WithTimeout for database calls,
// cache lookups and remote search requests. Timeouts can be configured at
// startup using Configure(); otherwise the defaults below apply.
//
// Guidelines for choosing a timeout:
//   - Ping: health checks and connectivity verification
//   - Short: single-document reads, cache and key-value lookups
//   - Medium: list/search queries and single writes
//   - Remote: calls to the external candidate search service
//   - Batch: seed imports and index builds
package timeouts

import (
	"os"
	"sync"
	"time"
)

// Default timeout values (used if Configure is not called).
const (
	DefaultPing   = 2 * time.Second
	DefaultShort  = 3 * time.Second
	DefaultMedium = 10 * time.Second
	DefaultRemote = 4 * time.Second
	DefaultBatch  = 2 * time.Minute
)

var mu sync.RWMutex

var current = defaults()

func defaults() Config {
	return Config{
		Ping:   DefaultPing,
		Short:  DefaultShort,
		Medium: DefaultMedium,
		Remote: DefaultRemote,
		Batch:  DefaultBatch,
	}
}

// Config holds timeout configuration values.
// Zero values are ignored (the current values are kept).
type Config struct {
	Ping   time.Duration
	Short  time.Duration
	Medium time.Duration
	Remote time.Duration
	Batch  time.Duration
}

func get(pick func(Config) time.Duration) time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return pick(current)
}

// Ping returns the timeout for health checks.
func Ping() time.Duration { return get(func(c Config) time.Duration { return c.Ping }) }

// Short returns the timeout for single-document reads and kv lookups.
func Short() time.Duration { return get(func(c Config) time.Duration { return c.Short }) }

// Medium returns the timeout for list queries and writes.
func Medium() time.Duration { return get(func(c Config) time.Duration { return c.Medium }) }

// Remote returns the timeout for remote candidate lookups.
func Remote() time.Duration { return get(func(c Config) time.Duration { return c.Remote }) }

// Batch returns the timeout for imports and index builds.
func Batch() time.Duration { return get(func(c Config) time.Duration { return c.Batch }) }

// Configure sets custom timeout values. This should be called during
// application startup before handlers are registered.
//
//	timeouts.Configure(timeouts.Config{Remote: 2 * time.Second})
func Configure(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	setIfPositive(&current.Ping, cfg.Ping)
	setIfPositive(&current.Short, cfg.Short)
	setIfPositive(&current.Medium, cfg.Medium)
	setIfPositive(&current.Remote, cfg.Remote)
	setIfPositive(&current.Batch, cfg.Batch)
}

func setIfPositive(dst *time.Duration, d time.Duration) {
	if d > 0 {
		*dst = d
	}
}

// Reset restores all timeouts to their default values.
// Useful for testing.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	current = defaults()
}

// ConfigureFromEnv reads VETHUB_TIMEOUT_PING, _SHORT, _MEDIUM, _REMOTE and
// _BATCH (Go duration strings such as "500ms" or "2m"). Unset or invalid
// values are ignored. Returns the number of timeouts configured.
func ConfigureFromEnv() int {
	var cfg Config
	n := 0
	for name, dst := range map[string]*time.Duration{
		"VETHUB_TIMEOUT_PING":   &cfg.Ping,
		"VETHUB_TIMEOUT_SHORT":  &cfg.Short,
		"VETHUB_TIMEOUT_MEDIUM": &cfg.Medium,
		"VETHUB_TIMEOUT_REMOTE": &cfg.Remote,
		"VETHUB_TIMEOUT_BATCH":  &cfg.Batch,
	} {
		if d, err := time.ParseDuration(os.Getenv(name)); err == nil && d > 0 {
			*dst = d
			n++
		}
	}
	Configure(cfg)
	return n
}

// Current returns the current timeout configuration.
func Current() Config {
	mu.RLock()
	defer mu.RUnlock()
	return current
}
