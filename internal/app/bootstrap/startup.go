// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"time"

	kvstore "github.com/dalemusser/vethub/internal/app/store/kv"
	"github.com/dalemusser/vethub/internal/app/system/ratelimit"
	"github.com/dalemusser/vethub/internal/app/system/timeouts"
	"github.com/dalemusser/vethub/internal/app/system/visitorstate"
	"github.com/dalemusser/vethub/internal/app/system/workers"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// services are the long-lived pieces shared by the handler and shutdown.
type services struct {
	kv          kvstore.Store
	infoLimiter *ratelimit.Limiter
	purge       *workers.LocationPurge
}

var svc *services

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	timeouts.ConfigureFromEnv()
	timeouts.Configure(timeouts.Config{Remote: appCfg.RemoteSearchTimeout})
	logger.Info("timeouts configured", zap.Any("timeouts", timeouts.Current()))

	svc = newServices(appCfg, deps, logger)
	if svc.purge != nil {
		svc.purge.Start()
	}
	return nil
}

func newServices(appCfg AppConfig, deps DBDeps, logger *zap.Logger) *services {
	s := &services{
		kv:          newKVStore(appCfg, deps),
		infoLimiter: ratelimit.New(appCfg.InfoRateLimit, time.Minute),
	}
	if p, ok := s.kv.(kvstore.Purger); ok {
		s.purge = workers.NewLocationPurge(p, logger, appCfg.LocationPurgeInterval)
	}
	return s
}

// newKVStore picks the visitor-state backend. Redis falls back to Mongo
// when no Redis client is available. Redis expires cached locations itself;
// the other backends are swept by the purge worker.
func newKVStore(appCfg AppConfig, deps DBDeps) kvstore.Store {
	switch appCfg.KVBackend {
	case KVMemory:
		return kvstore.NewMemory()
	case KVRedis:
		if deps.Redis != nil {
			return kvstore.NewRedis(deps.Redis, "vethub:kv:").
				WithTTL(visitorstate.LocationPrefix, visitorstate.LocationTTL)
		}
	}
	return kvstore.NewMongo(deps.MongoDatabase)
}
