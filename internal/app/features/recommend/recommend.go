// internal/app/features/recommend/recommend.go
package recommend

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dalemusser/vethub/internal/app/system/limits"
	"github.com/dalemusser/vethub/internal/app/system/normalize"
	"github.com/dalemusser/vethub/internal/app/system/ranking"
	"github.com/dalemusser/vethub/internal/app/system/timeouts"
	"github.com/dalemusser/vethub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"go.uber.org/zap"
)

const (
	noCategoryMessage  = "Choose a category to see recommended resources."
	unavailableMessage = "We couldn't load recommendations right now. Please try again in a moment."
	noMatchMessage     = "We didn't find resources for this selection yet. Try a different category."
)

// Candidate sources reported in responses.
const (
	SourceRemote = "remote"
	SourceLocal  = "local"
)

type selectionRequest struct {
	CategoryID    string   `json:"categoryId"`
	SymptomIDs    []string `json:"symptomIds"`
	SeverityID    string   `json:"severityId"`
	SelectionHash string   `json:"selectionHash"`
}

type response struct {
	Resources []models.Resource `json:"resources"`
	Source    string            `json:"source,omitempty"`
	Message   string            `json:"message,omitempty"`
}

// HandleRecommend handles POST /api/recommendations with a JSON selection.
func (h *Handler) HandleRecommend(w http.ResponseWriter, r *http.Request) {
	var req selectionRequest
	if err := limits.DecodeJSON(w, r, limits.MaxJSONBodySize, &req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode selection failed", err, "Invalid selection.")
		return
	}
	sel := normalize.Selection(req.CategoryID, req.SymptomIDs, req.SeverityID, req.SelectionHash)
	h.respond(w, r, sel)
}

// ServeRecommend handles GET /api/recommendations with the selection in
// the query string (categoryId, symptomIds, severityId, selectionHash).
func (h *Handler) ServeRecommend(w http.ResponseWriter, r *http.Request) {
	v := r.URL.Query()
	sel := normalize.Selection(
		firstOf(r, "categoryId", "category"),
		append(v["symptomIds"], v["symptoms"]...),
		firstOf(r, "severityId", "severity"),
		firstOf(r, "selectionHash", "hash"),
	)
	h.respond(w, r, sel)
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, sel models.Selection) {
	if sel.CategoryID == "" {
		writeJSON(w, response{Resources: []models.Resource{}, Message: noCategoryMessage})
		return
	}

	candidates, source, err := h.candidates(r.Context(), sel)
	if err != nil {
		h.Log.Warn("load recommendation candidates failed",
			zap.Error(err),
			zap.String("category", sel.CategoryID))
		writeJSON(w, response{Resources: []models.Resource{}, Message: unavailableMessage})
		return
	}

	out := response{Resources: ranking.Rank(candidates, sel), Source: source}
	if len(out.Resources) == 0 {
		out.Message = noMatchMessage
	}
	writeJSON(w, out)
}

// candidates asks the remote service first when one is configured. A
// remote failure, an unusable answer or an empty answer falls back to the
// local directory.
func (h *Handler) candidates(ctx context.Context, sel models.Selection) ([]models.Resource, string, error) {
	if h.Remote != nil {
		rctx, cancel := context.WithTimeout(ctx, timeouts.Remote())
		rs, err := h.Remote.Candidates(rctx, sel)
		cancel()
		switch {
		case err != nil:
			h.Log.Warn("remote search failed, using local candidates",
				zap.Error(err),
				zap.String("category", sel.CategoryID))
		case len(rs) > 0:
			return rs, SourceRemote, nil
		}
	}

	cat, _ := models.LookupWizardCategory(sel.CategoryID)
	lctx, cancel := context.WithTimeout(ctx, timeouts.Medium())
	defer cancel()
	rs, err := h.Local.FindForCategory(lctx, cat, h.Limit)
	if err != nil {
		return nil, "", err
	}
	return rs, SourceLocal, nil
}

func firstOf(r *http.Request, keys ...string) string {
	for _, k := range keys {
		if v := query.Get(r, k); v != "" {
			return v
		}
	}
	return ""
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
