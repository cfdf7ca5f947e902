package mongostore

import (
	"context"
	"time"

	"ride-hailing/internal/models"
	"ride-hailing/internal/modules/ride"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ ride.RepositoryInterface = (*RideRepository)(nil)

type rideDoc struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	UserID          string             `bson:"user"`
	DriverID        string             `bson:"driver"`
	PickupLocation  string             `bson:"pickup_location"`
	DropoffLocation string             `bson:"dropoff_location"`
	Status          string             `bson:"status"`
	Fare            float64            `bson:"fare"`
	CreatedAt       time.Time          `bson:"created_at"`
}

func (d rideDoc) toModel() models.Ride {
	return models.Ride{
		ID:              d.ID.Hex(),
		UserID:          d.UserID,
		DriverID:        d.DriverID,
		PickupLocation:  d.PickupLocation,
		DropoffLocation: d.DropoffLocation,
		Status:          d.Status,
		Fare:            d.Fare,
		CreatedAt:       d.CreatedAt,
	}
}

type RideRepository struct {
	coll  *mongo.Collection
	users *mongo.Collection
}

// Create inserts the ride, then pushes its id onto the rider's history. The two writes
// are not transactional since standalone servers do not support transactions.
func (r *RideRepository) Create(ctx context.Context, in *models.Ride) (*models.Ride, error) {
	doc := rideDoc{
		ID:              primitive.NewObjectID(),
		UserID:          in.UserID,
		DriverID:        in.DriverID,
		PickupLocation:  in.PickupLocation,
		DropoffLocation: in.DropoffLocation,
		Status:          in.Status,
		Fare:            in.Fare,
		CreatedAt:       time.Now().UTC(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, translate("CreateRide", err)
	}

	if userOID, err := primitive.ObjectIDFromHex(in.UserID); err == nil {
		if _, err := r.users.UpdateByID(ctx, userOID, bson.M{"$push": bson.M{"ride_history": doc.ID}}); err != nil {
			return nil, translate("CreateRide.AppendHistory", err)
		}
	}

	out := doc.toModel()
	return &out, nil
}

func (r *RideRepository) List(ctx context.Context, limit, offset int) ([]models.Ride, int, error) {
	total, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, translate("ListRides.Count", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, translate("ListRides", err)
	}
	defer cursor.Close(ctx)

	var docs []rideDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, 0, translate("ListRides.Decode", err)
	}
	rides := make([]models.Ride, 0, len(docs))
	for _, d := range docs {
		rides = append(rides, d.toModel())
	}
	return rides, int(total), nil
}
