// internal/app/features/visitor/handler.go
package visitor

import (
	"context"
	"encoding/json"
	"net/http"

	uierrors "github.com/dalemusser/vethub/internal/app/features/errors"
	"github.com/dalemusser/vethub/internal/app/system/visitorstate"
	"github.com/dalemusser/vethub/internal/domain/models"
	"go.uber.org/zap"
)

// ResourceLookup resolves saved ids against the directory.
type ResourceLookup interface {
	GetByIDs(ctx context.Context, ids []string) ([]models.Resource, error)
	Exists(ctx context.Context, id string) (bool, error)
}

// Handler serves a visitor's saved resources, search history and cached
// location. All state is keyed by the visitor cookie id.
type Handler struct {
	State     *visitorstate.State
	Resources ResourceLookup
	ErrLog    *uierrors.ErrorLogger
	Log       *zap.Logger
}

// NewHandler constructs a visitor Handler.
func NewHandler(state *visitorstate.State, resources ResourceLookup, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		State:     state,
		Resources: resources,
		ErrLog:    errLog,
		Log:       logger,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
