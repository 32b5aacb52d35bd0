// internal/app/features/inforequest/routes.go
package inforequest

import "github.com/go-chi/chi/v5"

// Routes returns the submission subrouter. Bootstrap mounts it at
// /api/resources/{id}/request-info via the resources router.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.HandleSubmit)
	return r
}
