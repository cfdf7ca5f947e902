package mongostore

import (
	"context"
	"time"

	"ride-hailing/internal/models"
	"ride-hailing/internal/modules/user"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ user.RepositoryInterface = (*UserRepository)(nil)

type userDoc struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty"`
	Name         string               `bson:"name"`
	Email        string               `bson:"email"`
	PasswordHash string               `bson:"password_hash,omitempty"`
	PhoneNumber  string               `bson:"phone_number,omitempty"`
	ProfileImage string               `bson:"profile_image,omitempty"`
	AuthProvider string               `bson:"auth_provider"`
	RideHistory  []primitive.ObjectID `bson:"ride_history"`
	CreatedAt    time.Time            `bson:"created_at"`
	UpdatedAt    time.Time            `bson:"updated_at"`
}

func (d userDoc) toModel() *models.User {
	history := make([]string, 0, len(d.RideHistory))
	for _, id := range d.RideHistory {
		history = append(history, id.Hex())
	}
	return &models.User{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		PhoneNumber:  d.PhoneNumber,
		ProfileImage: d.ProfileImage,
		AuthProvider: d.AuthProvider,
		RideHistory:  history,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

type UserRepository struct {
	coll *mongo.Collection
}

func (r *UserRepository) findOne(ctx context.Context, op string, filter bson.M) (*models.User, error) {
	var doc userDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, translate(op, err)
	}
	return doc.toModel(), nil
}

func (r *UserRepository) FindByID(ctx context.Context, userID string) (*models.User, error) {
	oid, err := objectID(userID)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, "FindUserByID", bson.M{"_id": oid})
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, "FindUserByEmail", bson.M{"email": email})
}

func (r *UserRepository) Create(ctx context.Context, u *models.User) (*models.User, error) {
	now := time.Now().UTC()
	doc := userDoc{
		ID:           primitive.NewObjectID(),
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		PhoneNumber:  u.PhoneNumber,
		ProfileImage: u.ProfileImage,
		AuthProvider: u.AuthProvider,
		RideHistory:  []primitive.ObjectID{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, translate("CreateUser", err)
	}
	return doc.toModel(), nil
}

func (r *UserRepository) Update(ctx context.Context, userID string, data models.UserUpdateData) (*models.User, error) {
	oid, err := objectID(userID)
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	if data.Name != nil {
		set["name"] = *data.Name
	}
	if data.Email != nil {
		set["email"] = *data.Email
	}
	if data.PhoneNumber != nil {
		set["phone_number"] = *data.PhoneNumber
	}
	if data.ProfileImage != nil {
		set["profile_image"] = *data.ProfileImage
	}
	if len(set) == 0 {
		return r.FindByID(ctx, userID)
	}
	set["updated_at"] = time.Now().UTC()

	var doc userDoc
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return nil, translate("UpdateUser", err)
	}
	return doc.toModel(), nil
}
