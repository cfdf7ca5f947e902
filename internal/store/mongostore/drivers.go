package mongostore

import (
	"context"
	"time"

	"ride-hailing/internal/models"
	"ride-hailing/internal/modules/driver"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ driver.RepositoryInterface = (*DriverRepository)(nil)

type driverDoc struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty"`
	Name               string             `bson:"name"`
	VehicleDetails     string             `bson:"vehicle_details"`
	LicenseNumber      string             `bson:"license_number"`
	Rating             float64            `bson:"rating"`
	AvailabilityStatus bool               `bson:"availability_status"`
	Email              string             `bson:"email,omitempty"` // omitted so the sparse unique index skips it
	PasswordHash       string             `bson:"password_hash,omitempty"`
	CreatedAt          time.Time          `bson:"created_at"`
}

func (d driverDoc) toModel() *models.Driver {
	return &models.Driver{
		ID:                 d.ID.Hex(),
		Name:               d.Name,
		VehicleDetails:     d.VehicleDetails,
		LicenseNumber:      d.LicenseNumber,
		Rating:             d.Rating,
		AvailabilityStatus: d.AvailabilityStatus,
		Email:              d.Email,
		PasswordHash:       d.PasswordHash,
		CreatedAt:          d.CreatedAt,
	}
}

type DriverRepository struct {
	coll *mongo.Collection
}

func (r *DriverRepository) Create(ctx context.Context, d *models.Driver) (*models.Driver, error) {
	doc := driverDoc{
		ID:                 primitive.NewObjectID(),
		Name:               d.Name,
		VehicleDetails:     d.VehicleDetails,
		LicenseNumber:      d.LicenseNumber,
		AvailabilityStatus: true,
		Email:              d.Email,
		PasswordHash:       d.PasswordHash,
		CreatedAt:          time.Now().UTC(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, translate("CreateDriver", err)
	}
	return doc.toModel(), nil
}

func (r *DriverRepository) FindByID(ctx context.Context, driverID string) (*models.Driver, error) {
	oid, err := objectID(driverID)
	if err != nil {
		return nil, err
	}
	var doc driverDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, translate("FindDriverByID", err)
	}
	return doc.toModel(), nil
}

func (r *DriverRepository) FindByEmail(ctx context.Context, email string) (*models.Driver, error) {
	var doc driverDoc
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		return nil, translate("FindDriverByEmail", err)
	}
	return doc.toModel(), nil
}

func (r *DriverRepository) SetAvailability(ctx context.Context, driverID string, available bool) (*models.Driver, error) {
	oid, err := objectID(driverID)
	if err != nil {
		return nil, err
	}
	var doc driverDoc
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"availability_status": available}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return nil, translate("SetAvailability", err)
	}
	return doc.toModel(), nil
}
