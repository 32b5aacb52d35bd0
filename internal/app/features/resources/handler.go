// internal/app/features/resources/handler.go
package resources

import (
	"context"

	uierrors "github.com/dalemusser/vethub/internal/app/features/errors"
	"github.com/dalemusser/vethub/internal/app/store/queries/resourcesearch"
	"github.com/dalemusser/vethub/internal/domain/models"
	"go.uber.org/zap"
)

// Reader is the slice of the resource store these handlers need.
type Reader interface {
	resourcesearch.Source
	GetByID(ctx context.Context, id string) (models.Resource, error)
	Categories(ctx context.Context) ([]string, error)
}

// PageCache caches list pages. A nil PageCache disables caching.
type PageCache interface {
	Key(req any) (string, error)
	Get(ctx context.Context, key string, v any) bool
	Set(ctx context.Context, key string, v any)
}

// SearchRecorder keeps a visitor's recent searches. A nil SearchRecorder
// disables search history.
type SearchRecorder interface {
	AddSearch(ctx context.Context, visitorID string, s models.SavedSearch) ([]models.SavedSearch, error)
}

// Handler serves the directory's read endpoints.
//
// It is constructed once at startup in bootstrap.
type Handler struct {
	Store   Reader
	Cache   PageCache
	History SearchRecorder
	ErrLog  *uierrors.ErrorLogger
	Log     *zap.Logger
}

// NewHandler constructs a resources Handler.
func NewHandler(store Reader, cache PageCache, history SearchRecorder, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Store:   store,
		Cache:   cache,
		History: history,
		ErrLog:  errLog,
		Log:     logger,
	}
}
