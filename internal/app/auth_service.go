package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"

	"sharespace/internal/model"
	"sharespace/internal/pkg/jwtutil"
	"sharespace/internal/pkg/password"
	"sharespace/internal/repository"
)

const maxPasswordBytes = 72

type AuthService struct {
	users         UserStore
	jwtSecret     string
	jwtExpiration time.Duration
	bcryptCost    int
	audit         auditor
	log           *zap.Logger

	dummyOnce sync.Once
	dummyHash string
}

type AuthServiceConfig struct {
	JWTSecret     string
	JWTExpiration time.Duration
	BcryptCost    int
}

type SignupInput struct {
	Name     string
	Email    string
	Password string
	Meta     RequestMeta
}

type LoginInput struct {
	Email    string
	Password string
	Meta     RequestMeta
}

type AuthResult struct {
	Token string
	User  *model.User
}

func NewAuthService(users UserStore, cfg AuthServiceConfig, publisher EventPublisher, log *zap.Logger) *AuthService {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = password.DefaultCost
	}
	return &AuthService{
		users:         users,
		jwtSecret:     cfg.JWTSecret,
		jwtExpiration: cfg.JWTExpiration,
		bcryptCost:    cfg.BcryptCost,
		audit:         auditor{publisher: publisher, log: log},
		log:           log,
	}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) Signup(ctx context.Context, input SignupInput) (*AuthResult, error) {
	name := strings.TrimSpace(input.Name)
	email := NormalizeEmail(input.Email)
	if name == "" || email == "" || input.Password == "" {
		return nil, ErrMissingFields
	}
	if utf8.RuneCountInString(input.Password) < model.MinPasswordSize {
		return nil, ErrPasswordTooShort
	}
	if len(input.Password) > maxPasswordBytes {
		return nil, ErrPasswordTooLong
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailExists
	}

	hash, err := password.Hash(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:           bson.NewObjectID(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Bio:          model.DefaultBio,
		CreatedAt:    time.Now().UTC().Truncate(time.Millisecond),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailExists
		}
		return nil, err
	}

	token, err := jwtutil.GenerateToken(s.jwtSecret, s.jwtExpiration, user.ID.Hex())
	if err != nil {
		return nil, err
	}

	s.log.Info("user signed up", zap.String("user_id", user.ID.Hex()))
	s.audit.record(ctx, user.ID.Hex(), model.AuthEventSignup, input.Meta)
	return &AuthResult{Token: token, User: user}, nil
}

// Login answers ErrInvalidCredential for both an unknown email and a wrong
// password, and spends a bcrypt comparison either way.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	email := NormalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return nil, ErrMissingLogin
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		_, _ = password.Verify(s.placeholderHash(), input.Password)
		return nil, ErrInvalidCredential
	}

	ok, err := password.Verify(user.PasswordHash, input.Password)
	if err != nil {
		return nil, fmt.Errorf("verify credentials for %s: %w", user.ID.Hex(), err)
	}
	if !ok {
		return nil, ErrInvalidCredential
	}

	token, err := jwtutil.GenerateToken(s.jwtSecret, s.jwtExpiration, user.ID.Hex())
	if err != nil {
		return nil, err
	}

	s.audit.record(ctx, user.ID.Hex(), model.AuthEventLogin, input.Meta)
	return &AuthResult{Token: token, User: user}, nil
}

// Verify resolves a raw token to its user. A missing secret is returned as is
// so the caller can surface it as a server fault.
func (s *AuthService) Verify(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}

	claims, err := jwtutil.ParseToken(s.jwtSecret, token)
	if err != nil {
		if errors.Is(err, jwtutil.ErrMissingSecret) {
			return nil, err
		}
		return nil, ErrUnauthorized
	}

	id, err := model.ParseUserID(claims.ID)
	if err != nil {
		return nil, ErrUnauthorized
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUnauthorized
	}
	return user, nil
}

func (s *AuthService) placeholderHash() string {
	s.dummyOnce.Do(func() {
		hash, err := password.Hash("sharespace-placeholder", s.bcryptCost)
		if err != nil {
			s.log.Warn("build placeholder hash failed", zap.Error(err))
			return
		}
		s.dummyHash = hash
	})
	return s.dummyHash
}
