// Package seed fills a development database with demo accounts. It goes
// through the services so seeded users look exactly like real sign-ups.
package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"

	"sharespace/internal/app"
	"sharespace/internal/model"
)

const DefaultPassword = "sharespace123"

type Signer interface {
	Signup(ctx context.Context, input app.SignupInput) (*app.AuthResult, error)
}

type ProfileUpdater interface {
	UpdateProfile(ctx context.Context, id bson.ObjectID, input app.UpdateProfileInput) (*model.User, error)
}

type Options struct {
	Count    int
	Password string
	// A non-zero Seed makes runs repeatable, so a second run skips the
	// accounts the first one created.
	Seed int64
	// WithPictures gives every other user a profile picture.
	WithPictures bool
}

type Report struct {
	Created []*model.User
	Skipped int
}

type Seeder struct {
	auth     Signer
	profiles ProfileUpdater
	log      *zap.Logger
}

func NewSeeder(auth Signer, profiles ProfileUpdater, log *zap.Logger) *Seeder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Seeder{auth: auth, profiles: profiles, log: log}
}

func (s *Seeder) Run(ctx context.Context, opts Options) (*Report, error) {
	if opts.Count <= 0 {
		return &Report{}, nil
	}
	if opts.Password == "" {
		opts.Password = DefaultPassword
	}

	faker := gofakeit.New(opts.Seed)
	report := &Report{}
	for i := 0; i < opts.Count; i++ {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		name := faker.Name()
		email := fmt.Sprintf("%s.%d@sharespace.test", strings.ToLower(faker.Username()), i+1)
		bio := faker.Sentence(12)
		picture := fmt.Sprintf("https://picsum.photos/seed/%s/256/256", faker.UUID())

		res, err := s.auth.Signup(ctx, app.SignupInput{Name: name, Email: email, Password: opts.Password})
		if errors.Is(err, app.ErrEmailExists) {
			report.Skipped++
			s.log.Debug("demo user exists", zap.String("email", email))
			continue
		}
		if err != nil {
			return report, fmt.Errorf("seed user %s failed: %w", email, err)
		}

		input := app.UpdateProfileInput{Bio: &bio}
		if opts.WithPictures && i%2 == 0 {
			input.Picture, input.PictureSet = &picture, true
		}
		user, err := s.profiles.UpdateProfile(ctx, res.User.ID, input)
		if err != nil {
			return report, fmt.Errorf("seed profile %s failed: %w", email, err)
		}

		report.Created = append(report.Created, user)
		s.log.Info("demo user created", zap.String("user_id", user.ID.Hex()), zap.String("email", email))
	}
	return report, nil
}
