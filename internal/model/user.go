package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	DefaultBio      = "A member of the ShareSpace community 🌟"
	MaxBioLength    = 500
	MinPasswordSize = 6
)

// User mirrors a document in the users collection. PasswordHash is never
// serialised to JSON.
type User struct {
	ID                bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Name              string        `bson:"name" json:"name"`
	Email             string        `bson:"email" json:"email"`
	PasswordHash      string        `bson:"password" json:"-"`
	Bio               string        `bson:"bio" json:"bio"`
	ProfilePictureURL *string       `bson:"profilePictureUrl" json:"profilePictureUrl"`
	CreatedAt         time.Time     `bson:"createdAt" json:"createdAt"`
}

// ProfileUpdate carries the whitelisted fields of a profile change. Nil fields
// are left untouched; ClearPicture unsets the picture URL.
type ProfileUpdate struct {
	Name              *string
	Bio               *string
	ProfilePictureURL *string
	ClearPicture      bool
}

func (u ProfileUpdate) IsEmpty() bool {
	return u.Name == nil && u.Bio == nil && u.ProfilePictureURL == nil && !u.ClearPicture
}

func ParseUserID(raw string) (bson.ObjectID, error) {
	return bson.ObjectIDFromHex(raw)
}
