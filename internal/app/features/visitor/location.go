// internal/app/features/visitor/location.go
package visitor

import (
	"context"
	"net/http"

	"github.com/dalemusser/vethub/internal/app/system/limits"
	"github.com/dalemusser/vethub/internal/app/system/normalize"
	"github.com/dalemusser/vethub/internal/app/system/timeouts"
	"github.com/dalemusser/vethub/internal/domain/models"
	"go.uber.org/zap"
)

type locationResponse struct {
	models.CachedLocation
	Fresh bool `json:"fresh"`
}

// ServeLocation handles GET /api/location. A stale or missing location is
// reported as {"state": "", "fresh": false}.
func (h *Handler) ServeLocation(w http.ResponseWriter, r *http.Request) {
	vid, ok := h.requireVisitor(w, r)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	loc, fresh, err := h.State.Location(ctx, vid)
	if err != nil {
		h.Log.Warn("load cached location failed", zap.Error(err))
	}
	writeJSON(w, http.StatusOK, locationResponse{CachedLocation: loc, Fresh: fresh})
}

type locationRequest struct {
	State string `json:"state"`
}

// HandleSetLocation handles PUT /api/location {"state": "Texas"}. Names
// and codes are both accepted and stored as the two-letter code.
func (h *Handler) HandleSetLocation(w http.ResponseWriter, r *http.Request) {
	vid, ok := h.requireVisitor(w, r)
	if !ok {
		return
	}
	var req locationRequest
	if err := limits.DecodeJSON(w, r, limits.MaxJSONBodySize, &req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode location failed", err, "Invalid request.")
		return
	}
	state := normalize.StateCode(req.State)
	if state == "" {
		h.ErrLog.LogBadRequest(w, r, "empty location", nil, "A state is required.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	loc, err := h.State.SetLocation(ctx, vid, state)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "set location failed", err, "We couldn't save your location.")
		return
	}
	writeJSON(w, http.StatusOK, locationResponse{CachedLocation: loc, Fresh: true})
}
