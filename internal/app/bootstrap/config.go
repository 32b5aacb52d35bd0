// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/vethub/internal/app/system/inputval"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for VetHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, session_name, etc.
//   - Environment variables: VETHUB_MONGO_URI, VETHUB_REDIS_ADDR, etc.
//   - Command-line flags: --mongo_uri, --redis_addr, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "vethub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},
	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Visitor cookie signing key (must be strong in production)"},
	{Name: "session_name", Default: "vethub-visitor", Desc: "Visitor cookie name"},

	// Redis
	{Name: "redis_addr", Default: "", Desc: "Redis address (host:port); blank disables the page cache"},
	{Name: "redis_password", Default: "", Desc: "Redis password"},
	{Name: "redis_db", Default: 0, Desc: "Redis database number"},
	{Name: "cache_ttl", Default: "2m", Desc: "Lifetime of a cached result page (e.g., 30s, 2m)"},

	// Visitor state
	{Name: "kv_backend", Default: KVMongo, Desc: "Visitor state backend: 'mongo', 'redis' or 'memory'"},
	{Name: "location_purge_interval", Default: "1h", Desc: "How often stale cached locations are purged"},

	// Remote candidate search
	{Name: "remote_search_url", Default: "", Desc: "Remote candidate search endpoint; blank uses local candidates only"},
	{Name: "remote_search_timeout", Default: "4s", Desc: "Timeout for a remote candidate search"},

	// Info requests
	{Name: "info_rate_limit", Default: 5, Desc: "Info requests allowed per client per minute"},
	{Name: "trust_proxy", Default: false, Desc: "Take the client IP from X-Forwarded-For / X-Real-IP (only behind a trusted proxy)"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, VETHUB_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "VETHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),
		SessionKey:       appValues.String("session_key"),
		SessionName:      appValues.String("session_name"),

		// Redis
		RedisAddr:     appValues.String("redis_addr"),
		RedisPassword: appValues.String("redis_password"),
		RedisDB:       appValues.Int("redis_db"),
		CacheTTL:      appValues.Duration("cache_ttl", 2*time.Minute),

		// Visitor state
		KVBackend:             appValues.String("kv_backend"),
		LocationPurgeInterval: appValues.Duration("location_purge_interval", time.Hour),

		// Remote search
		RemoteSearchURL:     appValues.String("remote_search_url"),
		RemoteSearchTimeout: appValues.Duration("remote_search_timeout", 4*time.Second),

		// Info requests
		InfoRateLimit: appValues.Int("info_rate_limit"),
		TrustProxy:    appValues.Bool("trust_proxy"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	switch appCfg.KVBackend {
	case KVMongo, KVMemory:
	case KVRedis:
		if appCfg.RedisAddr == "" {
			return fmt.Errorf("kv_backend 'redis' requires redis_addr to be set")
		}
	default:
		return fmt.Errorf("kv_backend must be 'mongo', 'redis' or 'memory', got %q", appCfg.KVBackend)
	}

	if appCfg.RemoteSearchURL != "" && !inputval.IsValidHTTPURL(appCfg.RemoteSearchURL) {
		return fmt.Errorf("remote_search_url must be an http or https URL, got %q", appCfg.RemoteSearchURL)
	}

	if appCfg.InfoRateLimit < 1 {
		return fmt.Errorf("info_rate_limit must be at least 1, got %d", appCfg.InfoRateLimit)
	}

	if appCfg.KVBackend == KVMemory && coreCfg != nil && coreCfg.Env == "prod" {
		logger.Warn("kv_backend 'memory' loses visitor state on restart; use 'mongo' or 'redis' in production")
	}

	return nil
}
