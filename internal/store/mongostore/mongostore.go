// Package mongostore implements the repositories on MongoDB. Ids are ObjectID hex strings.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ride-hailing/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	usersCollection        = "users"
	driversCollection      = "drivers"
	ridesCollection        = "rides"
	rideRequestsCollection = "riderequests"

	connectTimeout = 10 * time.Second
)

type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect opens a client, pings the primary and selects dbName.
func Connect(ctx context.Context, uri, dbName string) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongostore.Connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongostore.Ping: %w", err)
	}
	return &Store{client: client, db: client.Database(dbName)}, nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Store) Users() *UserRepository {
	return &UserRepository{coll: s.db.Collection(usersCollection)}
}

func (s *Store) Drivers() *DriverRepository {
	return &DriverRepository{coll: s.db.Collection(driversCollection)}
}

func (s *Store) Rides() *RideRepository {
	return &RideRepository{coll: s.db.Collection(ridesCollection), users: s.db.Collection(usersCollection)}
}

func (s *Store) RideRequests() *RideRequestRepository {
	return &RideRequestRepository{coll: s.db.Collection(rideRequestsCollection)}
}

// EnsureIndexes creates the unique and lookup indexes. Safe to run repeatedly.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		usersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		driversCollection: {
			{Keys: bson.D{{Key: "license_number", Value: 1}}, Options: options.Index().SetUnique(true)},
			// drivers without an email must not collide on the missing field
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetSparse(true)},
		},
		rideRequestsCollection: {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "requested_at", Value: -1}}},
		},
		ridesCollection: {
			{Keys: bson.D{{Key: "created_at", Value: -1}}},
		},
	}
	for name, specs := range indexes {
		if _, err := s.db.Collection(name).Indexes().CreateMany(ctx, specs); err != nil {
			return fmt.Errorf("mongostore.EnsureIndexes(%s): %w", name, err)
		}
	}
	return nil
}

// objectID parses a hex id. Anything else can never match a document.
func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, models.ErrNotFound
	}
	return oid, nil
}

// translate maps driver errors onto the domain sentinels.
func translate(op string, err error) error {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return models.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return models.ErrConflict
	}
	return fmt.Errorf("repository.%s: %w", op, err)
}
