// internal/app/features/resources/routes.go
package resources

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter for the directory read endpoints. Bootstrap
// mounts it at /api/resources. When requestInfo is non-nil it is mounted
// at /{id}/request-info, so the submission route shares the {id} param.
func Routes(h *Handler, requestInfo chi.Router) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeList)
	r.Get("/{id}", h.ServeView)
	if requestInfo != nil {
		r.Mount("/{id}/request-info", requestInfo)
	}
	return r
}

// CategoryRoutes serves the wizard category table. Bootstrap mounts it at
// /api/categories.
func CategoryRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeCategories)
	return r
}
