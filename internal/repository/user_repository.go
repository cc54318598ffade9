package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"sharespace/internal/model"
)

const UsersCollection = "users"

// ErrDuplicateEmail is returned when the unique email index rejects a write.
var ErrDuplicateEmail = errors.New("duplicate email")

type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(UsersCollection)}
}

func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_unique"),
	})
	if err != nil {
		return fmt.Errorf("create users email index failed: %w", err)
	}
	return nil
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	if user.ID.IsZero() {
		user.ID = bson.NewObjectID()
	}
	if _, err := r.coll.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("create user failed: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, bson.D{{Key: "email", Value: email}}, "email")
}

func (r *UserRepository) GetByID(ctx context.Context, id bson.ObjectID) (*model.User, error) {
	return r.findOne(ctx, bson.D{{Key: "_id", Value: id}}, "id")
}

// UpdateProfile applies a partial update and returns the updated document, or
// nil when no user has the id.
func (r *UserRepository) UpdateProfile(ctx context.Context, id bson.ObjectID, update model.ProfileUpdate) (*model.User, error) {
	set := bson.D{}
	if update.Name != nil {
		set = append(set, bson.E{Key: "name", Value: *update.Name})
	}
	if update.Bio != nil {
		set = append(set, bson.E{Key: "bio", Value: *update.Bio})
	}
	switch {
	case update.ClearPicture:
		set = append(set, bson.E{Key: "profilePictureUrl", Value: nil})
	case update.ProfilePictureURL != nil:
		set = append(set, bson.E{Key: "profilePictureUrl", Value: *update.ProfilePictureURL})
	}
	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}

	var user model.User
	err := r.coll.FindOneAndUpdate(
		ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$set", Value: set}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("update user profile failed: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.D, by string) (*model.User, error) {
	var user model.User
	if err := r.coll.FindOne(ctx, filter).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("query user by %s failed: %w", by, err)
	}
	return &user, nil
}
