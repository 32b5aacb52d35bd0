// internal/app/features/inforequest/handler.go
package inforequest

import (
	"context"

	uierrors "github.com/dalemusser/vethub/internal/app/features/errors"
	"github.com/dalemusser/vethub/internal/domain/models"
	"go.uber.org/zap"
)

// ResourceChecker confirms a resource exists before a request is stored.
type ResourceChecker interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// Inserter stores a request and returns it with its reference assigned.
type Inserter interface {
	Insert(ctx context.Context, req models.InfoRequest) (models.InfoRequest, error)
}

// Limiter decides whether a client may submit now.
type Limiter interface {
	Allow(key string) bool
}

// Handler accepts "request more information" submissions.
//
// This is the one write path in the directory, so failures are reported
// to the visitor with a status code instead of being absorbed.
type Handler struct {
	Resources ResourceChecker
	Requests  Inserter
	Limiter   Limiter
	ErrLog    *uierrors.ErrorLogger
	Log       *zap.Logger
}

// NewHandler constructs an inforequest Handler. limiter may be nil to
// disable rate limiting.
func NewHandler(resources ResourceChecker, requests Inserter, limiter Limiter, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Resources: resources,
		Requests:  requests,
		Limiter:   limiter,
		ErrLog:    errLog,
		Log:       logger,
	}
}
