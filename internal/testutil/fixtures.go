package testutil

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/vethub/internal/app/system/normalize"
	"github.com/dalemusser/vethub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// Resource returns a normalized, unsaved resource with sensible defaults.
func Resource(id, title, category string, rating float64, organization string) models.Resource {
	return normalize.Resource(models.Resource{
		ID:           id,
		Title:        title,
		Description:  fmt.Sprintf("%s description", title),
		Categories:   []string{category},
		Rating:       rating,
		Organization: organization,
		LastUpdated:  time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		CreatedAt:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})
}

// CreateResource inserts r as-is into the resources collection.
func (f *Fixtures) CreateResource(ctx context.Context, r models.Resource) models.Resource {
	f.t.Helper()

	if _, err := f.db.Collection("resources").InsertOne(ctx, r); err != nil {
		f.t.Fatalf("failed to create test resource: %v", err)
	}
	return r
}

// CreateResources inserts n resources in category, ids prefix-1..prefix-n,
// with ratings stepping down from 5.
func (f *Fixtures) CreateResources(ctx context.Context, prefix, category string, n int) []models.Resource {
	f.t.Helper()

	out := make([]models.Resource, 0, n)
	for i := 1; i <= n; i++ {
		r := Resource(fmt.Sprintf("%s-%d", prefix, i), fmt.Sprintf("%s %d", category, i), category, 5-float64(i)*0.1, "Community Clinic")
		out = append(out, f.CreateResource(ctx, r))
	}
	return out
}
