// internal/app/store/resources/resourcestore.go
package resourcestore

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/dalemusser/vethub/internal/app/system/normalize"
	"github.com/dalemusser/vethub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store provides access to the resources collection.
type Store struct {
	c *mongo.Collection
}

var (
	ErrNotFound = errors.New("resource not found")
	ErrInvalid  = errors.New("resource requires an id and a title")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("resources")}
}

// Upsert normalizes r and writes it under its id. CreatedAt is set only
// when the document is first inserted; LastUpdated defaults to now.
// It reports whether a new document was created.
func (s *Store) Upsert(ctx context.Context, r models.Resource) (bool, error) {
	r = normalize.Resource(r)
	if r.ID == "" || r.Title == "" {
		return false, ErrInvalid
	}
	now := time.Now().UTC()
	if r.LastUpdated.IsZero() {
		r.LastUpdated = now
	}
	created := r.CreatedAt
	if created.IsZero() {
		created = now
	}

	update := bson.M{
		"$set": bson.M{
			"title":             r.Title,
			"title_ci":          r.TitleCI,
			"description":       r.Description,
			"categories":        r.Categories,
			"tags":              r.Tags,
			"rating":            r.Rating,
			"review_count":      r.ReviewCount,
			"resource_type":     r.ResourceType,
			"organization":      r.Organization,
			"provider_category": r.ProviderCategory,
			"is_verified":       r.IsVerified,
			"is_veteran_led":    r.IsVeteranLed,
			"is_featured":       r.IsFeatured,
			"service_branches":  r.ServiceBranches,
			"veteran_eras":      r.VeteranEras,
			"veteran_types":     r.VeteranTypes,
			"location":          r.Location,
			"contact":           r.Contact,
			"last_updated":      r.LastUpdated,
		},
		"$setOnInsert": bson.M{
			"created_at": created,
		},
		"$unset": bson.M{
			"category":     "",
			"veteran_type": "",
			"phone":        "",
			"state":        "",
		},
	}

	opts := options.Update().SetUpsert(true)
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": r.ID}, update, opts)
	if err != nil {
		return false, err
	}
	return res.UpsertedCount > 0, nil
}

// GetByID returns a resource by its ID.
func (s *Store) GetByID(ctx context.Context, id string) (models.Resource, error) {
	var r models.Resource
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&r)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Resource{}, ErrNotFound
	}
	if err != nil {
		return models.Resource{}, err
	}
	return r, nil
}

// Exists reports whether a resource with id is stored.
func (s *Store) Exists(ctx context.Context, id string) (bool, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// GetByIDs returns the resources with the given ids, in the order given.
// Unknown ids are skipped.
func (s *Store) GetByIDs(ctx context.Context, ids []string) ([]models.Resource, error) {
	if len(ids) == 0 {
		return []models.Resource{}, nil
	}
	found, err := s.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	byID := make(map[string]models.Resource, len(found))
	for _, r := range found {
		byID[r.ID] = r
	}
	out := make([]models.Resource, 0, len(found))
	for _, id := range ids {
		if r, ok := byID[id]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}

// Delete removes a resource by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id string) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Find returns resources matching the given filter with optional find options.
// The caller is responsible for building the filter and options (pagination, sorting, projection).
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Resource, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var resources []models.Resource
	if err := cur.All(ctx, &resources); err != nil {
		return nil, err
	}
	return resources, nil
}

// Count returns the number of resources matching the given filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}

// FindForCategory returns wizard candidates for cat: records with one of
// the mapped display categories or a category containing the category id.
// At most limit records are returned, best rated first.
func (s *Store) FindForCategory(ctx context.Context, cat models.WizardCategory, limit int64) ([]models.Resource, error) {
	filter := bson.M{"$or": []bson.M{
		{"categories": bson.M{"$in": cat.DisplayNames}},
		{"categories": bson.M{"$regex": regexp.QuoteMeta(cat.ID), "$options": "i"}},
	}}
	opts := options.Find().
		SetSort(bson.D{{Key: "rating", Value: -1}, {Key: "_id", Value: 1}}).
		SetLimit(limit)
	return s.Find(ctx, filter, opts)
}

// Categories returns the distinct category names in use.
func (s *Store) Categories(ctx context.Context) ([]string, error) {
	vals, err := s.c.Distinct(ctx, "categories", bson.M{})
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if str, ok := v.(string); ok && str != "" {
			out = append(out, str)
		}
	}
	return out, nil
}
