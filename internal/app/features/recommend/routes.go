// internal/app/features/recommend/routes.go
package recommend

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter for wizard recommendations, mounted at
// /api/recommendations.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeRecommend)
	r.Post("/", h.HandleRecommend)
	return r
}
