package app

import (
	"context"
	"strings"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"

	"sharespace/internal/model"
)

type UserService struct {
	users UserStore
	cache ProfileCache
	audit auditor
	log   *zap.Logger
}

// UpdateProfileInput holds the raw whitelisted fields of a profile update. A
// nil Name or Bio is left unchanged. When PictureSet is true a nil or blank
// Picture clears the stored URL.
type UpdateProfileInput struct {
	Name       *string
	Bio        *string
	Picture    *string
	PictureSet bool
	Meta       RequestMeta
}

func NewUserService(users UserStore, cache ProfileCache, publisher EventPublisher, log *zap.Logger) *UserService {
	if log == nil {
		log = zap.NewNop()
	}
	return &UserService{
		users: users,
		cache: cache,
		audit: auditor{publisher: publisher, log: log},
		log:   log,
	}
}

func (s *UserService) GetProfile(ctx context.Context, id bson.ObjectID) (*model.User, error) {
	if id.IsZero() {
		return nil, ErrInvalidInput
	}

	fill := false
	var version int64
	if s.cache != nil {
		cached, ok, err := s.cache.GetProfile(ctx, id.Hex())
		if err != nil {
			s.log.Warn("read profile cache failed", zap.String("user_id", id.Hex()), zap.Error(err))
		} else if ok {
			return cached, nil
		}
		// the version must be read before the document
		if version, err = s.cache.ProfileVersion(ctx, id.Hex()); err == nil {
			fill = true
		}
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if fill {
		if err := s.cache.SetProfile(ctx, user, version); err != nil {
			s.log.Warn("write profile cache failed", zap.String("user_id", id.Hex()), zap.Error(err))
		}
	}
	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, id bson.ObjectID, input UpdateProfileInput) (*model.User, error) {
	if id.IsZero() {
		return nil, ErrInvalidInput
	}

	update, err := buildProfileUpdate(input)
	if err != nil {
		return nil, err
	}

	user, err := s.users.UpdateProfile(ctx, id, update)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if s.cache != nil {
		if err := s.cache.DeleteProfile(ctx, id.Hex()); err != nil {
			s.log.Warn("invalidate profile cache failed", zap.String("user_id", id.Hex()), zap.Error(err))
		}
	}
	if !update.IsEmpty() {
		s.audit.record(ctx, id.Hex(), model.AuthEventProfileUpdate, input.Meta)
	}
	return user, nil
}

func buildProfileUpdate(input UpdateProfileInput) (model.ProfileUpdate, error) {
	var update model.ProfileUpdate

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return update, ErrNameEmpty
		}
		update.Name = &name
	}

	if input.Bio != nil {
		bio := strings.TrimSpace(*input.Bio)
		if utf8.RuneCountInString(bio) > model.MaxBioLength {
			return update, ErrBioTooLong
		}
		update.Bio = &bio
	}

	if input.PictureSet {
		if input.Picture == nil {
			update.ClearPicture = true
		} else if pic := strings.TrimSpace(*input.Picture); pic == "" {
			update.ClearPicture = true
		} else {
			update.ProfilePictureURL = &pic
		}
	}

	return update, nil
}
