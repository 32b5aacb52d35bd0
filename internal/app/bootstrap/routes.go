// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	errorsfeature "github.com/dalemusser/vethub/internal/app/features/errors"
	healthfeature "github.com/dalemusser/vethub/internal/app/features/health"
	inforequestfeature "github.com/dalemusser/vethub/internal/app/features/inforequest"
	recommendfeature "github.com/dalemusser/vethub/internal/app/features/recommend"
	resourcesfeature "github.com/dalemusser/vethub/internal/app/features/resources"
	visitorfeature "github.com/dalemusser/vethub/internal/app/features/visitor"
	inforequeststore "github.com/dalemusser/vethub/internal/app/store/inforequests"
	resourcestore "github.com/dalemusser/vethub/internal/app/store/resources"
	"github.com/dalemusser/vethub/internal/app/system/cache"
	"github.com/dalemusser/vethub/internal/app/system/remotesearch"
	"github.com/dalemusser/vethub/internal/app/system/visitor"
	"github.com/dalemusser/vethub/internal/app/system/visitorstate"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// PageCachePrefix namespaces cached result pages in Redis.
const PageCachePrefix = "vethub:page:"

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed.
//
// VetHub applies the visitor-cookie middleware to /api and mounts the
// directory, wizard, info-request and visitor-state routers beneath it.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg != nil && coreCfg.Env == "prod"
	visitors, err := visitor.NewManager(appCfg.SessionKey, appCfg.SessionName, secure, logger)
	if err != nil {
		logger.Error("visitor manager init failed", zap.Error(err))
		return nil, err
	}

	if svc == nil {
		svc = newServices(appCfg, deps, logger)
	}

	errLog := errorsfeature.NewErrorLogger(logger)
	resources := resourcestore.New(deps.MongoDatabase)
	state := visitorstate.New(svc.kv)

	// A nil interface disables caching; never pass a nil *cache.Pages.
	var pages resourcesfeature.PageCache
	if deps.Redis != nil {
		pages = cache.NewPages(deps.Redis, PageCachePrefix, appCfg.CacheTTL, logger)
	}

	var remote recommendfeature.RemoteSource
	if appCfg.RemoteSearchURL != "" {
		remote = remotesearch.NewClient(appCfg.RemoteSearchURL, appCfg.RemoteSearchTimeout, nil, logger)
	}

	r := chi.NewRouter()
	if appCfg.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.NotFound(errorsfeature.NotFound)
	r.MethodNotAllowed(errorsfeature.MethodNotAllowed)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, deps.Redis, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	r.Route("/api", func(api chi.Router) {
		api.Use(visitors.Middleware)
		api.NotFound(errorsfeature.NotFound)
		api.MethodNotAllowed(errorsfeature.MethodNotAllowed)

		// Directory
		infoHandler := inforequestfeature.NewHandler(resources, inforequeststore.New(deps.MongoDatabase), svc.infoLimiter, errLog, logger)
		resHandler := resourcesfeature.NewHandler(resources, pages, state, errLog, logger)
		api.Mount("/resources", resourcesfeature.Routes(resHandler, inforequestfeature.Routes(infoHandler)))
		api.Mount("/categories", resourcesfeature.CategoryRoutes(resHandler))

		// Symptom wizard
		recHandler := recommendfeature.NewHandler(resources, remote, errLog, logger)
		api.Mount("/recommendations", recommendfeature.Routes(recHandler))

		// Visitor state
		visHandler := visitorfeature.NewHandler(state, resources, errLog, logger)
		api.Mount("/saved", visitorfeature.SavedRoutes(visHandler))
		api.Mount("/searches", visitorfeature.SearchRoutes(visHandler))
		api.Mount("/location", visitorfeature.LocationRoutes(visHandler))
	})

	return r, nil
}
