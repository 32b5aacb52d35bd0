package kvstore

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo stores entries in the kv collection, one document per key.
type Mongo struct {
	c *mongo.Collection
}

type entry struct {
	Key       string    `bson:"_id"`
	Value     []byte    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// NewMongo returns a Store backed by db's kv collection.
func NewMongo(db *mongo.Database) *Mongo {
	return &Mongo{c: db.Collection("kv")}
}

func (s *Mongo) Get(ctx context.Context, key string) ([]byte, error) {
	var e entry
	err := s.c.FindOne(ctx, bson.M{"_id": key}).Decode(&e)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return e.Value, nil
}

// Set upserts the value at key and refreshes updated_at.
func (s *Mongo) Set(ctx context.Context, key string, value []byte) error {
	update := bson.M{
		"$set": bson.M{
			"value":      value,
			"updated_at": time.Now().UTC(),
		},
	}
	opts := options.Update().SetUpsert(true)
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": key}, update, opts)
	return err
}

func (s *Mongo) Clear(ctx context.Context, key string) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"_id": key})
	return err
}

// DeleteOlderThan removes entries under prefix whose updated_at is before cutoff.
func (s *Mongo) DeleteOlderThan(ctx context.Context, prefix string, cutoff time.Time) (int64, error) {
	filter := bson.M{
		"_id":        bson.M{"$regex": "^" + regexp.QuoteMeta(prefix)},
		"updated_at": bson.M{"$lt": cutoff},
	}
	res, err := s.c.DeleteMany(ctx, filter)
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
