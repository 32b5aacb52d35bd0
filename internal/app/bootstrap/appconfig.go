// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig handles
// the framework-level settings (ports, TLS, logging, CORS).
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Visitor cookie
	SessionKey  string // Secret key for signing visitor cookies (must be strong in production)
	SessionName string // Cookie name (default: vethub-visitor)

	// Redis (optional). Empty RedisAddr disables the page cache.
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration // lifetime of a cached result page

	// KVBackend selects where visitor state lives: "mongo", "redis" or "memory".
	KVBackend string

	// Remote candidate search (optional). Empty URL means local candidates only.
	RemoteSearchURL     string
	RemoteSearchTimeout time.Duration

	// InfoRateLimit is the number of info requests one client may submit per minute.
	InfoRateLimit int

	// TrustProxy takes the client address from X-Forwarded-For / X-Real-IP.
	// Enable only behind a proxy that sets those headers itself.
	TrustProxy bool

	// LocationPurgeInterval is how often stale cached locations are removed.
	LocationPurgeInterval time.Duration
}

// Visitor-state backends.
const (
	KVMongo  = "mongo"
	KVRedis  = "redis"
	KVMemory = "memory"
)
