package recommend_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	uierrors "github.com/dalemusser/vethub/internal/app/features/errors"
	"github.com/dalemusser/vethub/internal/app/features/recommend"
	resourcestore "github.com/dalemusser/vethub/internal/app/store/resources"
	"github.com/dalemusser/vethub/internal/app/system/remotesearch"
	"github.com/dalemusser/vethub/internal/domain/models"
	"github.com/dalemusser/vethub/internal/testutil"
	"go.uber.org/zap"
)

type fakeLocal struct {
	rs    []models.Resource
	err   error
	calls int
}

func (f *fakeLocal) FindForCategory(_ context.Context, _ models.WizardCategory, _ int64) ([]models.Resource, error) {
	f.calls++
	return f.rs, f.err
}

type fakeRemote struct {
	rs  []models.Resource
	err error
}

func (f *fakeRemote) Candidates(_ context.Context, _ models.Selection) ([]models.Resource, error) {
	return f.rs, f.err
}

type body struct {
	Resources []models.Resource `json:"resources"`
	Source    string            `json:"source"`
	Message   string            `json:"message"`
}

func newHandler(local recommend.LocalSource, remote recommend.RemoteSource) *recommend.Handler {
	logger := zap.NewNop()
	return recommend.NewHandler(local, remote, uierrors.NewErrorLogger(logger), logger)
}

func scenario() []models.Resource {
	return []models.Resource{
		{ID: "1", LegacyCategory: "Mental Health", Rating: 4.6, Organization: "Veterans Affairs"},
		{ID: "2", LegacyCategory: "Mental Health", Rating: 4.0, Organization: "Wounded Warrior NGO"},
		{ID: "3", LegacyCategory: "Mental Health", Rating: 3.9, Organization: "Community Clinic"},
	}
}

func ids(rs []models.Resource) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.ID
	}
	return out
}

func TestHandleRecommend_CrisisScenario(t *testing.T) {
	local := &fakeLocal{rs: scenario()}
	h := newHandler(local, nil)

	rec := testutil.NewRecorder()
	h.HandleRecommend(rec, testutil.NewJSONRequest(http.MethodPost, "/api/recommendations",
		`{"categoryId":"mental","symptomIds":[],"severityId":"crisis"}`))

	rec.AssertStatus(t, http.StatusOK)
	var b body
	rec.DecodeJSON(t, &b)
	if got := fmt.Sprint(ids(b.Resources)); got != "[1 2 3]" {
		t.Errorf("order = %s, want [1 2 3]", got)
	}
	if b.Source != recommend.SourceLocal {
		t.Errorf("source = %q", b.Source)
	}
}

func TestHandleRecommend_NoCategory(t *testing.T) {
	local := &fakeLocal{rs: scenario()}
	h := newHandler(local, nil)

	rec := testutil.NewRecorder()
	h.HandleRecommend(rec, testutil.NewJSONRequest(http.MethodPost, "/api/recommendations", `{"severityId":"mild"}`))

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, `"resources":[]`)
	if local.calls != 0 {
		t.Error("no candidates should be loaded without a category")
	}
}

func TestHandleRecommend_BadBody(t *testing.T) {
	h := newHandler(&fakeLocal{}, nil)
	rec := testutil.NewRecorder()
	h.HandleRecommend(rec, testutil.NewJSONRequest(http.MethodPost, "/api/recommendations", `{"categoryId":`))
	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestRecommend_RemoteFallback(t *testing.T) {
	remoteOnly := []models.Resource{{ID: "r1", Categories: []string{"Housing"}, Rating: 4}}

	tests := []struct {
		name       string
		remote     recommend.RemoteSource
		wantSource string
		wantFirst  string
	}{
		{"no remote", nil, recommend.SourceLocal, "1"},
		{"remote ok", &fakeRemote{rs: []models.Resource{{ID: "r9", LegacyCategory: "Mental Health", Rating: 5}}}, recommend.SourceRemote, "r9"},
		{"remote error", &fakeRemote{err: errors.New("timeout")}, recommend.SourceLocal, "1"},
		{"remote unusable", &fakeRemote{err: remotesearch.ErrUnusable}, recommend.SourceLocal, "1"},
		{"remote empty", &fakeRemote{rs: []models.Resource{}}, recommend.SourceLocal, "1"},
		{"remote off-category", &fakeRemote{rs: remoteOnly}, recommend.SourceRemote, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHandler(&fakeLocal{rs: scenario()}, tt.remote)
			rec := testutil.NewRecorder()
			h.ServeRecommend(rec, testutil.NewRequest(http.MethodGet, "/api/recommendations?category=mental&severity=severe"))

			rec.AssertStatus(t, http.StatusOK)
			var b body
			rec.DecodeJSON(t, &b)
			if b.Source != tt.wantSource {
				t.Errorf("source = %q, want %q", b.Source, tt.wantSource)
			}
			if tt.wantFirst == "" {
				if len(b.Resources) != 0 || b.Message == "" {
					t.Errorf("expected an empty list with a message, got %+v", b)
				}
				return
			}
			if len(b.Resources) == 0 || b.Resources[0].ID != tt.wantFirst {
				t.Errorf("resources = %v, want first %s", ids(b.Resources), tt.wantFirst)
			}
		})
	}
}

func TestRecommend_LocalFailureDegrades(t *testing.T) {
	h := newHandler(&fakeLocal{err: errors.New("no reachable servers")}, &fakeRemote{err: errors.New("down")})

	rec := testutil.NewRecorder()
	h.ServeRecommend(rec, testutil.NewRequest(http.MethodGet, "/api/recommendations?categoryId=life"))

	rec.AssertStatus(t, http.StatusOK)
	var b body
	rec.DecodeJSON(t, &b)
	if len(b.Resources) != 0 || b.Message == "" {
		t.Errorf("expected an empty list with a message, got %+v", b)
	}
}

func TestServeRecommend_Deterministic(t *testing.T) {
	var rs []models.Resource
	for i := 0; i < 12; i++ {
		org := []string{"Veterans Affairs", "Helping Hands NGO", "County Clinic"}[i%3]
		rs = append(rs, models.Resource{ID: fmt.Sprintf("m%02d", i), Categories: []string{"Mental Health"}, Rating: 4, Organization: org})
	}
	h := newHandler(&fakeLocal{rs: rs}, nil)

	target := "/api/recommendations?categoryId=mental&severityId=mild&symptomIds=ptsd,sleep&selectionHash=abc"
	first := testutil.NewRecorder()
	h.ServeRecommend(first, testutil.NewRequest(http.MethodGet, target))
	second := testutil.NewRecorder()
	h.ServeRecommend(second, testutil.NewRequest(http.MethodGet, target))

	if first.Body.String() != second.Body.String() {
		t.Error("identical selections should produce identical responses")
	}
}

func TestRoutes(t *testing.T) {
	router := recommend.Routes(newHandler(&fakeLocal{rs: scenario()}, nil))

	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.NewJSONRequest(http.MethodPost, "/", `{"categoryId":"mental"}`))
	rec.AssertStatus(t, http.StatusOK)

	rec = testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.NewRequest(http.MethodGet, "/?categoryId=mental"))
	rec.AssertStatus(t, http.StatusOK)
}

func TestRecommend_Mongo(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateResources(ctx, "mh", "Mental Health", 6)
	fx.CreateResources(ctx, "hs", "Housing", 4)

	h := newHandler(resourcestore.New(db), nil)
	rec := testutil.NewRecorder()
	h.ServeRecommend(rec, testutil.NewRequest(http.MethodGet, "/api/recommendations?categoryId=mental"))

	rec.AssertStatus(t, http.StatusOK)
	var b body
	rec.DecodeJSON(t, &b)
	if len(b.Resources) != 6 {
		t.Errorf("got %d resources, want the 6 mental health records", len(b.Resources))
	}
}
