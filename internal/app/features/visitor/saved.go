// internal/app/features/visitor/saved.go
package visitor

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/vethub/internal/app/system/limits"
	"github.com/dalemusser/vethub/internal/app/system/timeouts"
	visitorid "github.com/dalemusser/vethub/internal/app/system/visitor"
	"github.com/dalemusser/vethub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type savedResponse struct {
	IDs       []string          `json:"ids"`
	Resources []models.Resource `json:"resources"`
}

// ServeSaved handles GET /api/saved. Ids whose resource no longer exists
// are still listed in ids but have no entry in resources.
func (h *Handler) ServeSaved(w http.ResponseWriter, r *http.Request) {
	vid, ok := h.requireVisitor(w, r)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	ids, err := h.State.Saved(ctx, vid)
	if err != nil {
		h.Log.Warn("load saved resources failed", zap.Error(err))
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, savedResponse{IDs: ids, Resources: h.resolve(ctx, ids)})
}

type saveRequest struct {
	ResourceID string `json:"resourceId"`
}

// HandleSave handles POST /api/saved {"resourceId": "..."}.
func (h *Handler) HandleSave(w http.ResponseWriter, r *http.Request) {
	vid, ok := h.requireVisitor(w, r)
	if !ok {
		return
	}
	var req saveRequest
	if err := limits.DecodeJSON(w, r, limits.MaxJSONBodySize, &req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode save request failed", err, "Invalid request.")
		return
	}
	id := strings.TrimSpace(req.ResourceID)
	if id == "" {
		h.ErrLog.LogBadRequest(w, r, "save without resource id", nil, "A resource id is required.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	exists, err := h.Resources.Exists(ctx, id)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "check resource failed", err, "We couldn't save this resource. Please try again.")
		return
	}
	if !exists {
		h.ErrLog.LogNotFound(w, r, "save unknown resource", nil, "Resource not found.")
		return
	}

	ids, err := h.State.Save(ctx, vid, id)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "save resource failed", err, "We couldn't save this resource. Please try again.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ids": ids})
}

// HandleUnsave handles DELETE /api/saved/{id}.
func (h *Handler) HandleUnsave(w http.ResponseWriter, r *http.Request) {
	vid, ok := h.requireVisitor(w, r)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	ids, err := h.State.Unsave(ctx, vid, chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.LogServerError(w, r, "unsave resource failed", err, "We couldn't update your saved resources.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ids": ids})
}

// HandleClearSaved handles DELETE /api/saved.
func (h *Handler) HandleClearSaved(w http.ResponseWriter, r *http.Request) {
	vid, ok := h.requireVisitor(w, r)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.State.ClearSaved(ctx, vid); err != nil {
		h.ErrLog.LogServerError(w, r, "clear saved failed", err, "We couldn't update your saved resources.")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) resolve(ctx context.Context, ids []string) []models.Resource {
	if len(ids) == 0 {
		return []models.Resource{}
	}
	rs, err := h.Resources.GetByIDs(ctx, ids)
	if err != nil {
		h.Log.Warn("resolve saved resources failed", zap.Error(err))
		return []models.Resource{}
	}
	return rs
}

func (h *Handler) requireVisitor(w http.ResponseWriter, r *http.Request) (string, bool) {
	vid := visitorid.ID(r)
	if vid == "" {
		h.ErrLog.LogBadRequest(w, r, "request without visitor id", nil, "Cookies are required for this feature.")
		return "", false
	}
	return vid, true
}
