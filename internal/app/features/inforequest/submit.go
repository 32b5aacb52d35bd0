// internal/app/features/inforequest/submit.go
package inforequest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	uierrors "github.com/dalemusser/vethub/internal/app/features/errors"
	"github.com/dalemusser/vethub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/vethub/internal/app/system/inputval"
	"github.com/dalemusser/vethub/internal/app/system/limits"
	"github.com/dalemusser/vethub/internal/app/system/normalize"
	"github.com/dalemusser/vethub/internal/app/system/ratelimit"
	"github.com/dalemusser/vethub/internal/app/system/timeouts"
	"github.com/dalemusser/vethub/internal/app/system/visitor"
	"github.com/dalemusser/vethub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const submitFailedMessage = "We couldn't send your request. Please try again."

type submitInput struct {
	Name    string `json:"name" validate:"required,max=120" label:"Name"`
	Email   string `json:"email" validate:"required,email,max=254" label:"Email"`
	Phone   string `json:"phone" validate:"phone,max=40" label:"Phone"`
	Message string `json:"message" validate:"max=2000" label:"Message"`
}

type submitResponse struct {
	Reference string `json:"reference"`
	Message   string `json:"message"`
}

// HandleSubmit handles POST /api/resources/{id}/request-info.
//
//	400 malformed body or invalid fields
//	404 unknown resource
//	429 too many submissions from this client
//	500 store failure
//	201 {"reference": "...", "message": "..."}
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	if h.Limiter != nil && !h.Limiter.Allow(ratelimit.ClientIP(r)) {
		h.Log.Info("info request rate limited", zap.String("ip", ratelimit.ClientIP(r)))
		w.Header().Set("Retry-After", "60")
		uierrors.JSON(w, http.StatusTooManyRequests, "Too many requests. Please wait a minute and try again.")
		return
	}

	resourceID := strings.TrimSpace(chi.URLParam(r, "id"))
	if resourceID == "" {
		h.ErrLog.LogBadRequest(w, r, "info request without resource id", nil, "A resource id is required.")
		return
	}

	var in submitInput
	if err := limits.DecodeJSON(w, r, limits.MaxInfoRequestSize, &in); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode info request failed", err, "Invalid request.")
		return
	}
	in = clean(in)
	if res := inputval.Validate(in); res.HasErrors() {
		h.ErrLog.LogBadRequest(w, r, "info request invalid", errors.New(res.All()), res.First())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	exists, err := h.Resources.Exists(ctx, resourceID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "check resource failed", err, submitFailedMessage)
		return
	}
	if !exists {
		h.ErrLog.LogNotFound(w, r, "info request for unknown resource", nil, "Resource not found.")
		return
	}

	saved, err := h.Requests.Insert(ctx, models.InfoRequest{
		ResourceID: resourceID,
		Name:       in.Name,
		Email:      in.Email,
		Phone:      in.Phone,
		Message:    in.Message,
		VisitorID:  visitor.ID(r),
	})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "insert info request failed", err, submitFailedMessage)
		return
	}

	h.Log.Info("info request received",
		zap.String("reference", saved.Reference),
		zap.String("resource_id", resourceID))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(submitResponse{
		Reference: saved.Reference,
		Message:   "Your request was sent. Keep this reference for your records.",
	})
}

// clean strips markup from free-text fields and canonicalizes the email.
func clean(in submitInput) submitInput {
	return submitInput{
		Name:    htmlsanitize.Text(in.Name),
		Email:   normalize.Email(in.Email),
		Phone:   strings.TrimSpace(in.Phone),
		Message: htmlsanitize.Text(in.Message),
	}
}
