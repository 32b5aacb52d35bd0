// internal/app/features/resources/view.go
package resources

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"strings"

	resourcestore "github.com/dalemusser/vethub/internal/app/store/resources"
	"github.com/dalemusser/vethub/internal/app/system/timeouts"
	"github.com/dalemusser/vethub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ServeView handles GET /api/resources/{id}.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		h.ErrLog.LogBadRequest(w, r, "missing resource id", nil, "A resource id is required.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	res, err := h.Store.GetByID(ctx, id)
	if errors.Is(err, resourcestore.ErrNotFound) {
		h.ErrLog.LogNotFound(w, r, "resource not found", err, "Resource not found.")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load resource failed", err, "We couldn't load this resource right now.")
		return
	}
	writeJSON(w, res)
}

type categoryInfo struct {
	models.WizardCategory
	Severities map[string]float64 `json:"severities"`
}

// ServeCategories handles GET /api/categories: the wizard category table,
// the rating each severity requires, and the directory categories that
// currently have records. A store failure leaves inUse empty.
func (h *Handler) ServeCategories(w http.ResponseWriter, r *http.Request) {
	out := make([]categoryInfo, 0, len(models.WizardCategories))
	for _, c := range models.WizardCategories {
		out = append(out, categoryInfo{WizardCategory: c, Severities: models.SeverityThresholds})
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	inUse, err := h.Store.Categories(ctx)
	if err != nil {
		h.Log.Warn("list categories in use failed", zap.Error(err))
		inUse = nil
	}
	if inUse == nil {
		inUse = []string{}
	}
	sort.Strings(inUse)
	writeJSON(w, map[string]any{"categories": out, "inUse": inUse})
}
