package mongostore

import (
	"context"
	"errors"
	"time"

	"ride-hailing/internal/models"
	"ride-hailing/internal/modules/riderequest"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ riderequest.RepositoryInterface = (*RideRequestRepository)(nil)

type placeDoc struct {
	Description string  `bson:"description"`
	Lat         float64 `bson:"lat"`
	Lng         float64 `bson:"lng"`
}

type rideRequestDoc struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	UserID            string             `bson:"user_id"`
	Origin            placeDoc           `bson:"origin"`
	Destination       placeDoc           `bson:"destination"`
	VehicleType       string             `bson:"vehicle_type"`
	Fare              float64            `bson:"fare"`
	Status            string             `bson:"status"`
	DriverID          string             `bson:"driver_id,omitempty"`
	RequestedAt       time.Time          `bson:"requested_at"`
	EstimatedDistance float64            `bson:"estimated_distance"`
	EstimatedDuration float64            `bson:"estimated_duration"`
	ActualPickupTime  *time.Time         `bson:"actual_pickup_time,omitempty"`
	ActualDropoffTime *time.Time         `bson:"actual_dropoff_time,omitempty"`
	PaymentStatus     string             `bson:"payment_status"`
	PaymentMethod     string             `bson:"payment_method,omitempty"`
	UpdatedAt         time.Time          `bson:"updated_at"`
}

func newRideRequestDoc(r *models.RideRequest) rideRequestDoc {
	return rideRequestDoc{
		UserID:            r.UserID,
		Origin:            placeDoc{r.Origin.Description, r.Origin.Location.Lat, r.Origin.Location.Lng},
		Destination:       placeDoc{r.Destination.Description, r.Destination.Location.Lat, r.Destination.Location.Lng},
		VehicleType:       r.VehicleType,
		Fare:              r.Fare,
		Status:            string(r.Status),
		DriverID:          r.DriverID,
		RequestedAt:       r.RequestedAt,
		EstimatedDistance: r.EstimatedDistance,
		EstimatedDuration: r.EstimatedDuration,
		ActualPickupTime:  r.ActualPickupTime,
		ActualDropoffTime: r.ActualDropoffTime,
		PaymentStatus:     r.PaymentStatus,
		PaymentMethod:     r.PaymentMethod,
		UpdatedAt:         r.UpdatedAt,
	}
}

func (d rideRequestDoc) toModel() *models.RideRequest {
	return &models.RideRequest{
		ID:     d.ID.Hex(),
		UserID: d.UserID,
		Origin: models.Place{
			Description: d.Origin.Description,
			Location:    models.LatLng{Lat: d.Origin.Lat, Lng: d.Origin.Lng},
		},
		Destination: models.Place{
			Description: d.Destination.Description,
			Location:    models.LatLng{Lat: d.Destination.Lat, Lng: d.Destination.Lng},
		},
		VehicleType:       d.VehicleType,
		Fare:              d.Fare,
		Status:            models.RideRequestStatus(d.Status),
		DriverID:          d.DriverID,
		RequestedAt:       d.RequestedAt,
		EstimatedDistance: d.EstimatedDistance,
		EstimatedDuration: d.EstimatedDuration,
		ActualPickupTime:  d.ActualPickupTime,
		ActualDropoffTime: d.ActualDropoffTime,
		PaymentStatus:     d.PaymentStatus,
		PaymentMethod:     d.PaymentMethod,
		UpdatedAt:         d.UpdatedAt,
	}
}

// patchSet turns a patch into the $set document of a transition update.
func patchSet(p models.RideRequestPatch, now time.Time) bson.M {
	set := bson.M{"updated_at": now}
	if p.Status != "" {
		set["status"] = string(p.Status)
	}
	if p.DriverID != nil {
		set["driver_id"] = *p.DriverID
	}
	if p.ActualPickupTime != nil {
		set["actual_pickup_time"] = *p.ActualPickupTime
	}
	if p.ActualDropoffTime != nil {
		set["actual_dropoff_time"] = *p.ActualDropoffTime
	}
	if p.PaymentStatus != nil {
		set["payment_status"] = *p.PaymentStatus
	}
	if p.PaymentMethod != nil {
		set["payment_method"] = *p.PaymentMethod
	}
	return set
}

func statusStrings(statuses []models.RideRequestStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

type RideRequestRepository struct {
	coll *mongo.Collection
}

func (r *RideRequestRepository) Create(ctx context.Context, in *models.RideRequest) (*models.RideRequest, error) {
	doc := newRideRequestDoc(in)
	doc.ID = primitive.NewObjectID()
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, translate("CreateRideRequest", err)
	}
	return doc.toModel(), nil
}

func (r *RideRequestRepository) FindByID(ctx context.Context, id string) (*models.RideRequest, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var doc rideRequestDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, translate("FindRideRequest", err)
	}
	return doc.toModel(), nil
}

// updateWhere applies update when filter matches, mapping "no match" to miss.
func (r *RideRequestRepository) updateWhere(ctx context.Context, op string, filter, update bson.M, miss error) (*models.RideRequest, error) {
	var doc rideRequestDoc
	err := r.coll.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, miss
		}
		return nil, translate(op, err)
	}
	return doc.toModel(), nil
}

func (r *RideRequestRepository) Transition(ctx context.Context, id string, from []models.RideRequestStatus, patch models.RideRequestPatch) (*models.RideRequest, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrInvalidTransition
	}
	filter := bson.M{"_id": oid, "status": bson.M{"$in": statusStrings(from)}}
	return r.updateWhere(ctx, "TransitionRideRequest", filter,
		bson.M{"$set": patchSet(patch, time.Now().UTC())}, models.ErrInvalidTransition)
}

func (r *RideRequestRepository) MarkPaid(ctx context.Context, id, method string) (*models.RideRequest, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrNotPayable
	}
	filter := bson.M{
		"_id":            oid,
		"status":         string(models.RideRequestCompleted),
		"payment_status": models.PaymentPending,
	}
	paid := models.PaymentCompleted
	patch := models.RideRequestPatch{PaymentStatus: &paid, PaymentMethod: &method}
	return r.updateWhere(ctx, "MarkRideRequestPaid", filter,
		bson.M{"$set": patchSet(patch, time.Now().UTC())}, models.ErrNotPayable)
}

func (r *RideRequestRepository) ListByUser(ctx context.Context, userID string, statuses []models.RideRequestStatus, limit int) ([]models.RideRequest, error) {
	filter := bson.M{"user_id": userID, "status": bson.M{"$in": statusStrings(statuses)}}
	opts := options.Find().SetSort(bson.D{{Key: "requested_at", Value: -1}}).SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, translate("ListRideRequests", err)
	}
	defer cursor.Close(ctx)

	var docs []rideRequestDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, translate("ListRideRequests.Decode", err)
	}
	out := make([]models.RideRequest, 0, len(docs))
	for _, d := range docs {
		out = append(out, *d.toModel())
	}
	return out, nil
}
