package app

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	"sharespace/internal/model"
)

// UserStore is the persistence the services need; repository.UserRepository
// satisfies it against MongoDB.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id bson.ObjectID) (*model.User, error)
	UpdateProfile(ctx context.Context, id bson.ObjectID, update model.ProfileUpdate) (*model.User, error)
}

type ProfileCache interface {
	GetProfile(ctx context.Context, userID string) (*model.User, bool, error)
	ProfileVersion(ctx context.Context, userID string) (int64, error)
	SetProfile(ctx context.Context, user *model.User, version int64) error
	DeleteProfile(ctx context.Context, userID string) error
}

type EventPublisher interface {
	Publish(ctx context.Context, event model.AuthEvent) error
}

// RequestMeta describes the caller for audit events.
type RequestMeta struct {
	IP        string
	UserAgent string
}
