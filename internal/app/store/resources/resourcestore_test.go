package resourcestore_test

import (
	"errors"
	"testing"

	resourcestore "github.com/dalemusser/vethub/internal/app/store/resources"
	"github.com/dalemusser/vethub/internal/domain/models"
	"github.com/dalemusser/vethub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
)

func TestStore_Upsert_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := resourcestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Upsert(ctx, models.Resource{
		ID:             "vc-1",
		Title:          "  Vet Center  ",
		LegacyCategory: "Mental Health",
		LegacyState:    "texas",
		Organization:   "Department of Veterans Affairs",
		Rating:         4.5,
	})
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if !created {
		t.Error("expected a new document to be created")
	}

	got, err := store.GetByID(ctx, "vc-1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Title != "Vet Center" || got.TitleCI == "" {
		t.Errorf("title = %q, title_ci = %q", got.Title, got.TitleCI)
	}
	if len(got.Categories) != 1 || got.Categories[0] != "Mental Health" {
		t.Errorf("Categories = %v", got.Categories)
	}
	if got.StateCode() != "TX" {
		t.Errorf("StateCode = %q, want TX", got.StateCode())
	}
	if got.ProviderCategory != models.ProviderVA {
		t.Errorf("ProviderCategory = %q, want va", got.ProviderCategory)
	}
	if got.CreatedAt.IsZero() || got.LastUpdated.IsZero() {
		t.Error("expected timestamps to be set")
	}
	if got.LegacyCategory != "" || got.LegacyState != "" {
		t.Error("legacy fields should not be stored")
	}
}

func TestStore_Upsert_UpdateKeepsCreatedAt(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := resourcestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	r := testutil.Resource("r1", "Clinic", "Healthcare", 3, "Clinic")
	if _, err := store.Upsert(ctx, r); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	first, _ := store.GetByID(ctx, "r1")

	r.Title = "Clinic Renamed"
	r.CreatedAt = first.CreatedAt.AddDate(1, 0, 0)
	created, err := store.Upsert(ctx, r)
	if err != nil {
		t.Fatalf("second Upsert failed: %v", err)
	}
	if created {
		t.Error("second upsert should update, not create")
	}

	second, _ := store.GetByID(ctx, "r1")
	if second.Title != "Clinic Renamed" {
		t.Errorf("Title = %q", second.Title)
	}
	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Errorf("CreatedAt changed: %v -> %v", first.CreatedAt, second.CreatedAt)
	}
}

func TestStore_Upsert_Invalid(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := resourcestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Upsert(ctx, models.Resource{ID: "x"}); !errors.Is(err, resourcestore.ErrInvalid) {
		t.Errorf("err = %v, want ErrInvalid", err)
	}
}

func TestStore_GetByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := resourcestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.GetByID(ctx, "missing"); !errors.Is(err, resourcestore.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	ok, err := store.Exists(ctx, "missing")
	if err != nil || ok {
		t.Errorf("Exists = %v, %v; want false, nil", ok, err)
	}
}

func TestStore_GetByIDs_PreservesOrder(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := resourcestore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateResources(ctx, "r", "Housing", 3)

	got, err := store.GetByIDs(ctx, []string{"r-3", "nope", "r-1"})
	if err != nil {
		t.Fatalf("GetByIDs failed: %v", err)
	}
	if len(got) != 2 || got[0].ID != "r-3" || got[1].ID != "r-1" {
		t.Errorf("got %+v", got)
	}
}

func TestStore_FindCount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := resourcestore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateResources(ctx, "h", "Housing", 4)
	fx.CreateResources(ctx, "m", "Mental Health", 2)

	n, err := store.Count(ctx, bson.M{"categories": "Housing"})
	if err != nil || n != 4 {
		t.Errorf("Count = %d, %v; want 4", n, err)
	}
	all, err := store.Find(ctx, bson.M{})
	if err != nil || len(all) != 6 {
		t.Errorf("Find = %d, %v; want 6", len(all), err)
	}
}

func TestStore_FindForCategory(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := resourcestore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateResources(ctx, "m", "Mental Health", 3)
	fx.CreateResources(ctx, "c", "Crisis Services", 2)
	fx.CreateResources(ctx, "h", "Housing", 2)
	fx.CreateResource(ctx, testutil.Resource("x", "Mental wellness", "mental wellness", 4, "Clinic"))

	cat, _ := models.LookupWizardCategory(models.CategoryMental)
	got, err := store.FindForCategory(ctx, cat, 100)
	if err != nil {
		t.Fatalf("FindForCategory failed: %v", err)
	}
	if len(got) != 6 {
		t.Errorf("got %d candidates, want 6", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i-1].Rating < got[i].Rating {
			t.Errorf("candidates not sorted by rating: %v then %v", got[i-1].Rating, got[i].Rating)
		}
	}
}

func TestStore_Categories(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := resourcestore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateResources(ctx, "h", "Housing", 2)
	fx.CreateResources(ctx, "e", "Employment", 1)

	got, err := store.Categories(ctx)
	if err != nil {
		t.Fatalf("Categories failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("Categories = %v, want 2 names", got)
	}
}
