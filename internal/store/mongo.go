package store

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"deedflow/internal/logger"
)

// connectTimeout bounds the initial connect + ping.
const connectTimeout = 10 * time.Second

// MongoStore implements Store on top of a MongoDB collection.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
	log    zerolog.Logger
}

// NewMongoStore connects to MongoDB and returns a store bound to the given
// database and collection.
func NewMongoStore(ctx context.Context, uri, database, collection string) (*MongoStore, error) {
	const op = "NewMongoStore"

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("%s: failed to connect: %w", op, err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		return nil, fmt.Errorf("%s: ping failed: %w", op, err)
	}

	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(collection),
		log:    logger.WithComponent("mongo-store"),
	}, nil
}

// NewMongoStoreWithCollection creates a store with an explicit collection (for testing).
func NewMongoStoreWithCollection(coll *mongo.Collection) *MongoStore {
	return &MongoStore{
		coll: coll,
		log:  logger.WithComponent("mongo-store"),
	}
}

// FindPending returns all documents eligible for processing, in store order.
func (s *MongoStore) FindPending(ctx context.Context) ([]Document, error) {
	const op = "FindPending"

	cursor, err := s.coll.Find(ctx, bson.M{"status": bson.M{"$in": PendingStatuses}})
	if err != nil {
		return nil, fmt.Errorf("%s: query failed: %w", op, err)
	}
	defer cursor.Close(ctx)

	var docs []Document
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%s: decode failed: %w", op, err)
	}

	s.log.Debug().Int("count", len(docs)).Msg("Found pending documents")
	return docs, nil
}

// FindByID resolves a single document by hex ID.
func (s *MongoStore) FindByID(ctx context.Context, id string) (*Document, error) {
	const op = "FindByID"

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: invalid id %q", op, ErrNotFound, id)
	}

	var doc Document
	if err := s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("%s: %w: %s", op, ErrNotFound, id)
		}
		return nil, fmt.Errorf("%s: lookup failed: %w", op, err)
	}
	return &doc, nil
}

// Update applies a partial $set to the document with the given hex ID.
func (s *MongoStore) Update(ctx context.Context, id string, fields map[string]any) error {
	const op = "Update"

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%s: %w: invalid id %q", op, ErrNotFound, id)
	}

	set := bson.M{}
	for k, v := range fields {
		set[k] = v
	}
	if _, err := s.coll.UpdateByID(ctx, oid, bson.M{"$set": set}); err != nil {
		return fmt.Errorf("%s: update failed: %w", op, err)
	}
	return nil
}

// SetStatus updates only the status field.
func (s *MongoStore) SetStatus(ctx context.Context, id string, status Status) error {
	return s.Update(ctx, id, map[string]any{"status": status})
}

// Close disconnects the underlying client.
func (s *MongoStore) Close(ctx context.Context) error {
	if s.client != nil {
		return s.client.Disconnect(ctx)
	}
	return nil
}
