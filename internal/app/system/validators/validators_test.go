package validators_test

import (
	"testing"
	"time"

	"github.com/dalemusser/vethub/internal/app/system/validators"
	"github.com/dalemusser/vethub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
)

func TestEnsureAll_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("first EnsureAll failed: %v", err)
	}
	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("second EnsureAll failed: %v", err)
	}
}

func TestEnsureAll_CreatesCollections(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
	names, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		t.Fatalf("ListCollectionNames failed: %v", err)
	}
	have := map[string]bool{}
	for _, n := range names {
		have[n] = true
	}
	for _, want := range []string{"resources", "info_requests", "kv"} {
		if !have[want] {
			t.Errorf("collection %s not created", want)
		}
	}
}

func TestResourcesValidator_RejectsBadProvider(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	good := bson.M{"_id": "ok", "title": "Clinic", "title_ci": "clinic", "provider_category": "other", "last_updated": time.Now()}
	if _, err := db.Collection("resources").InsertOne(ctx, good); err != nil {
		t.Fatalf("valid document rejected: %v", err)
	}

	bad := bson.M{"_id": "bad", "title": "Clinic", "title_ci": "clinic", "provider_category": "martian"}
	if _, err := db.Collection("resources").InsertOne(ctx, bad); err == nil {
		t.Error("expected document with unknown provider_category to be rejected")
	}
}
