// internal/app/store/inforequests/inforequeststore.go
package inforequeststore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/vethub/internal/domain/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store provides access to the info_requests collection.
type Store struct {
	c *mongo.Collection
}

var ErrNotFound = errors.New("info request not found")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("info_requests")}
}

// Insert assigns a fresh reference and creation time to req and stores it.
// The stored request is returned.
func (s *Store) Insert(ctx context.Context, req models.InfoRequest) (models.InfoRequest, error) {
	req.Reference = uuid.NewString()
	req.CreatedAt = time.Now().UTC()
	if _, err := s.c.InsertOne(ctx, req); err != nil {
		return models.InfoRequest{}, err
	}
	return req, nil
}

// GetByReference loads a single request.
func (s *Store) GetByReference(ctx context.Context, ref string) (models.InfoRequest, error) {
	var out models.InfoRequest
	err := s.c.FindOne(ctx, bson.M{"_id": ref}).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return out, ErrNotFound
	}
	return out, err
}

// ListForResource returns the requests made for a resource, newest first.
func (s *Store) ListForResource(ctx context.Context, resourceID string, limit int64) ([]models.InfoRequest, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}).
		SetLimit(limit)
	cur, err := s.c.Find(ctx, bson.M{"resource_id": resourceID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.InfoRequest{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CountSince counts requests created at or after t.
func (s *Store) CountSince(ctx context.Context, t time.Time) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"created_at": bson.M{"$gte": t}})
}
