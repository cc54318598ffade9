// Package testutil holds in-memory doubles shared by package tests.
package testutil

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/v2/bson"

	"sharespace/internal/model"
	"sharespace/internal/repository"
)

// UserStore is an in-memory stand-in for repository.UserRepository with the
// same unique-email and partial-update behaviour.
type UserStore struct {
	mu    sync.Mutex
	users map[bson.ObjectID]model.User
}

func NewUserStore() *UserStore {
	return &UserStore{users: make(map[bson.ObjectID]model.User)}
}

func (s *UserStore) Create(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	if user.ID.IsZero() {
		user.ID = bson.NewObjectID()
	}
	s.users[user.ID] = *user
	return nil
}

func (s *UserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (s *UserStore) GetByID(_ context.Context, id bson.ObjectID) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (s *UserStore) UpdateProfile(_ context.Context, id bson.ObjectID, update model.ProfileUpdate) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	if update.Name != nil {
		u.Name = *update.Name
	}
	if update.Bio != nil {
		u.Bio = *update.Bio
	}
	switch {
	case update.ClearPicture:
		u.ProfilePictureURL = nil
	case update.ProfilePictureURL != nil:
		pic := *update.ProfilePictureURL
		u.ProfilePictureURL = &pic
	}
	s.users[id] = u
	return &u, nil
}

// Delete simulates a user document vanishing after a token was issued.
func (s *UserStore) Delete(id bson.ObjectID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
}

func (s *UserStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

// EventRecorder captures published auth events.
type EventRecorder struct {
	mu     sync.Mutex
	events []model.AuthEvent
	Err    error
}

func (r *EventRecorder) Publish(_ context.Context, event model.AuthEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.events = append(r.events, event)
	return nil
}

func (r *EventRecorder) Types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	types := make([]string, 0, len(r.events))
	for _, e := range r.events {
		types = append(types, e.Type)
	}
	return types
}

func (r *EventRecorder) Events() []model.AuthEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.AuthEvent(nil), r.events...)
}
