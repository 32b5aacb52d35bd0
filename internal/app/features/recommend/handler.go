// internal/app/features/recommend/handler.go
package recommend

import (
	"context"

	uierrors "github.com/dalemusser/vethub/internal/app/features/errors"
	"github.com/dalemusser/vethub/internal/domain/models"
	"go.uber.org/zap"
)

// DefaultCandidateLimit caps how many local candidates are loaded for one
// wizard request.
const DefaultCandidateLimit = 200

// LocalSource loads candidates for a wizard category from the directory.
type LocalSource interface {
	FindForCategory(ctx context.Context, cat models.WizardCategory, limit int64) ([]models.Resource, error)
}

// RemoteSource asks an external search service for candidates. A nil
// RemoteSource means only local candidates are used.
type RemoteSource interface {
	Candidates(ctx context.Context, sel models.Selection) ([]models.Resource, error)
}

// Handler serves wizard recommendations.
type Handler struct {
	Local  LocalSource
	Remote RemoteSource
	Limit  int64
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
}

// NewHandler constructs a recommend Handler. remote may be nil.
func NewHandler(local LocalSource, remote RemoteSource, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Local:  local,
		Remote: remote,
		Limit:  DefaultCandidateLimit,
		ErrLog: errLog,
		Log:    logger,
	}
}
