// internal/app/features/resources/list.go
package resources

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/dalemusser/vethub/internal/app/store/queries/resourcesearch"
	"github.com/dalemusser/vethub/internal/app/system/normalize"
	"github.com/dalemusser/vethub/internal/app/system/timeouts"
	"github.com/dalemusser/vethub/internal/app/system/visitor"
	"github.com/dalemusser/vethub/internal/domain/models"
	"go.uber.org/zap"
)

// unavailableMessage is shown when the store cannot be read.
const unavailableMessage = "We couldn't load resources right now. Please try again in a moment."

// noMatchMessage is shown when a filtered search matches nothing.
const noMatchMessage = "No resources match your filters. Try removing a filter or broadening your search."

type listResponse struct {
	resourcesearch.Result
	Message string `json:"message,omitempty"`
}

// ServeList handles GET /api/resources.
//
// Storage failures never surface as errors: the response is always 200,
// with an empty resources array and a message when nothing could be read.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	f := normalize.Filter(r.URL.Query())
	if f.SessionID == "" {
		f.SessionID = visitor.ID(r)
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	res, ok := h.cached(ctx, f)
	if !ok {
		var err error
		res, err = resourcesearch.Run(ctx, h.Store, f)
		if err != nil {
			h.Log.Warn("resource search failed",
				zap.Error(err),
				zap.String("query", r.URL.RawQuery))
			writeJSON(w, listResponse{
				Result:  emptyResult(f),
				Message: unavailableMessage,
			})
			return
		}
		h.store(ctx, f, res)
	}

	h.recordSearch(ctx, r, f)

	resp := listResponse{Result: res}
	if res.Total == 0 && !f.IsEmpty() {
		resp.Message = noMatchMessage
	}
	writeJSON(w, resp)
}

func (h *Handler) cached(ctx context.Context, f models.ResourceFilter) (resourcesearch.Result, bool) {
	var res resourcesearch.Result
	if h.Cache == nil {
		return res, false
	}
	key, err := h.Cache.Key(f)
	if err != nil {
		return res, false
	}
	if !h.Cache.Get(ctx, key, &res) {
		return res, false
	}
	if res.Resources == nil {
		res.Resources = []models.Resource{}
	}
	return res, true
}

func (h *Handler) store(ctx context.Context, f models.ResourceFilter, res resourcesearch.Result) {
	if h.Cache == nil {
		return
	}
	if key, err := h.Cache.Key(f); err == nil {
		h.Cache.Set(ctx, key, res)
	}
}

// recordSearch adds free-text searches to the visitor's history.
func (h *Handler) recordSearch(ctx context.Context, r *http.Request, f models.ResourceFilter) {
	vid := visitor.ID(r)
	if h.History == nil || vid == "" || f.SearchTerm == "" {
		return
	}
	_, err := h.History.AddSearch(ctx, vid, models.SavedSearch{
		Term:  f.SearchTerm,
		Query: r.URL.RawQuery,
		At:    time.Now().UTC(),
	})
	if err != nil {
		h.Log.Warn("record search failed", zap.Error(err))
	}
}

func emptyResult(f models.ResourceFilter) resourcesearch.Result {
	return resourcesearch.Result{
		Resources: []models.Resource{},
		Page:      f.Page,
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
