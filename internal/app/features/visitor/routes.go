// internal/app/features/visitor/routes.go
package visitor

import "github.com/go-chi/chi/v5"

// SavedRoutes is mounted at /api/saved.
func SavedRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeSaved)
	r.Post("/", h.HandleSave)
	r.Delete("/", h.HandleClearSaved)
	r.Delete("/{id}", h.HandleUnsave)
	return r
}

// SearchRoutes is mounted at /api/searches.
func SearchRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeSearches)
	r.Post("/", h.HandleAddSearch)
	r.Delete("/", h.HandleClearSearches)
	return r
}

// LocationRoutes is mounted at /api/location.
func LocationRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeLocation)
	r.Put("/", h.HandleSetLocation)
	return r
}
