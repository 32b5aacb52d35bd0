// internal/app/features/visitor/searches.go
package visitor

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/vethub/internal/app/system/limits"
	"github.com/dalemusser/vethub/internal/app/system/timeouts"
	"github.com/dalemusser/vethub/internal/domain/models"
	"go.uber.org/zap"
)

// ServeSearches handles GET /api/searches: most recent first.
func (h *Handler) ServeSearches(w http.ResponseWriter, r *http.Request) {
	vid, ok := h.requireVisitor(w, r)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	list, err := h.State.Searches(ctx, vid)
	if err != nil {
		h.Log.Warn("load search history failed", zap.Error(err))
		list = []models.SavedSearch{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"searches": list})
}

type searchRequest struct {
	Term  string `json:"term"`
	Query string `json:"query"`
}

// HandleAddSearch handles POST /api/searches {"term": "...", "query": "..."}.
func (h *Handler) HandleAddSearch(w http.ResponseWriter, r *http.Request) {
	vid, ok := h.requireVisitor(w, r)
	if !ok {
		return
	}
	var req searchRequest
	if err := limits.DecodeJSON(w, r, limits.MaxJSONBodySize, &req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode search failed", err, "Invalid request.")
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		h.ErrLog.LogBadRequest(w, r, "search without query", nil, "A query is required.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	list, err := h.State.AddSearch(ctx, vid, models.SavedSearch{Term: req.Term, Query: req.Query})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "add search failed", err, "We couldn't update your search history.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"searches": list})
}

// HandleClearSearches handles DELETE /api/searches.
func (h *Handler) HandleClearSearches(w http.ResponseWriter, r *http.Request) {
	vid, ok := h.requireVisitor(w, r)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.State.ClearSearches(ctx, vid); err != nil {
		h.ErrLog.LogServerError(w, r, "clear searches failed", err, "We couldn't update your search history.")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
