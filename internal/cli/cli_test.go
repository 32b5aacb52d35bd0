package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	inforequeststore "github.com/dalemusser/vethub/internal/app/store/inforequests"
	resourcestore "github.com/dalemusser/vethub/internal/app/store/resources"
	"github.com/dalemusser/vethub/internal/app/system/normalize"
	"github.com/dalemusser/vethub/internal/domain/models"
)

// fakeDirectory records upserts and serves a fixed result set.
type fakeDirectory struct {
	resources []models.Resource
	upserted  []models.Resource
	existing  map[string]bool
	lastCat   string
	deleted   []string
}

func (f *fakeDirectory) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Resource, error) {
	return f.resources, nil
}

func (f *fakeDirectory) Count(ctx context.Context, filter bson.M) (int64, error) {
	return int64(len(f.resources)), nil
}

func (f *fakeDirectory) Upsert(ctx context.Context, r models.Resource) (bool, error) {
	r = normalize.Resource(r)
	if r.ID == "" || r.Title == "" {
		return false, resourcestore.ErrInvalid
	}
	f.upserted = append(f.upserted, r)
	return !f.existing[r.ID], nil
}

func (f *fakeDirectory) FindForCategory(ctx context.Context, cat models.WizardCategory, limit int64) ([]models.Resource, error) {
	f.lastCat = cat.ID
	return f.resources, nil
}

func (f *fakeDirectory) Delete(ctx context.Context, id string) (int64, error) {
	if !f.existing[id] {
		return 0, nil
	}
	f.deleted = append(f.deleted, id)
	return 1, nil
}

type fakeCache struct{ calls int }

func (c *fakeCache) Invalidate(ctx context.Context) (int, error) {
	c.calls++
	return 3, nil
}

type fakeRequests struct {
	list     []models.InfoRequest
	count    int64
	gotSince time.Time
}

func (r *fakeRequests) ListForResource(ctx context.Context, resourceID string, limit int64) ([]models.InfoRequest, error) {
	return r.list, nil
}

func (r *fakeRequests) GetByReference(ctx context.Context, ref string) (models.InfoRequest, error) {
	for _, ir := range r.list {
		if ir.Reference == ref {
			return ir, nil
		}
	}
	return models.InfoRequest{}, inforequeststore.ErrNotFound
}

func (r *fakeRequests) CountSince(ctx context.Context, t time.Time) (int64, error) {
	r.gotSince = t
	return r.count, nil
}

// setupTestServices installs fakes and restores the previous services
// when the test ends.
func setupTestServices(t *testing.T, d *fakeDirectory) *fakeCache {
	t.Helper()
	prevDir, prevCache, prevReq, prevSchema := directory, pageCache, requests, ensureSchema
	c := &fakeCache{}
	directory = d
	pageCache = c
	requests = &fakeRequests{}
	ensureSchema = func(ctx context.Context) error { return nil }
	t.Cleanup(func() {
		directory, pageCache, requests, ensureSchema = prevDir, prevCache, prevReq, prevSchema
		rootCmd.SetArgs(nil)
		importDryRun = false
		searchJSON = false
		recJSON = false
		requestsJSON = false
		requestsSince = 24 * time.Hour
		searchFile, searchState = "", ""
		searchSort, searchPage, searchLimit = "relevance", 1, 30
	})
	return c
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}
