package history

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

const (
	// DefaultDatabase holds the lookups collection.
	DefaultDatabase = "bomstock"

	// Collection is the name of the lookups collection.
	Collection = "lookups"

	connectTimeout = 10 * time.Second
)

// MongoStore writes lookups to MongoDB.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to uri and verifies the connection with a ping.
// The database comes from the URI path, or DefaultDatabase when absent.
func NewMongoStore(ctx context.Context, uri string) (*MongoStore, error) {
	opts := options.Client().ApplyURI(uri).SetConnectTimeout(connectTimeout)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := DefaultDatabase
	if cs, err := connstring.ParseAndValidate(uri); err == nil && cs.Database != "" {
		db = cs.Database
	}
	coll := client.Database(db).Collection(Collection)

	_, err = coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "run_id", Value: 1}, {Key: "row", Value: 1}}},
		{Keys: bson.D{{Key: "mpn", Value: 1}, {Key: "recorded_at", Value: -1}}},
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo indexes: %w", err)
	}

	return &MongoStore{client: client, coll: coll}, nil
}

// Save inserts all lookups in one unordered batch.
func (s *MongoStore) Save(ctx context.Context, lookups []Lookup) error {
	if len(lookups) == 0 {
		return nil
	}
	docs := make([]any, len(lookups))
	for i := range lookups {
		docs[i] = lookups[i]
	}
	if _, err := s.coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false)); err != nil {
		return fmt.Errorf("mongo insert: %w", err)
	}
	return nil
}

// Latest returns the most recent stored lookups of mpn, newest first.
func (s *MongoStore) Latest(ctx context.Context, mpn string, limit int64) ([]Lookup, error) {
	opts := options.Find().SetSort(bson.D{{Key: "recorded_at", Value: -1}}).SetLimit(limit)
	cur, err := s.coll.Find(ctx, bson.D{{Key: "mpn", Value: mpn}}, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo find: %w", err)
	}
	var out []Lookup
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("mongo decode: %w", err)
	}
	return out, nil
}

// Close disconnects the client.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
