package service

import (
	"context"
	"errors"
	"time"

	"github.com/propertyhub/propertyhub-go/internal/crypto"
	"github.com/propertyhub/propertyhub-go/internal/model"
	"github.com/propertyhub/propertyhub-go/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrNameRequired       = errors.New("name is required")
	ErrNameTooLong        = errors.New("name must be at most 100 characters")
	ErrEmailRequired      = errors.New("email is required")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
)

// AuthService handles registration, login and identity lookup.
type AuthService struct {
	users     repository.UserRepository
	jwtSecret string
	jwtExpiry time.Duration
}

func NewAuthService(users repository.UserRepository, secret string, expiry time.Duration) *AuthService {
	return &AuthService{
		users:     users,
		jwtSecret: secret,
		jwtExpiry: expiry,
	}
}

// Register creates a new account and returns a token with the public user
// view. The email existence check and the insert are not atomic; a
// concurrent duplicate lands on the store's unique index and is reported as
// ErrEmailTaken the same way.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (model.AuthResponse, error) {
	if req.Name == "" {
		return model.AuthResponse{}, ErrNameRequired
	}
	if len(req.Name) > 100 {
		return model.AuthResponse{}, ErrNameTooLong
	}
	if req.Email == "" {
		return model.AuthResponse{}, ErrEmailRequired
	}
	if len(req.Password) < 6 {
		return model.AuthResponse{}, ErrPasswordTooShort
	}

	_, err := s.users.GetByEmail(ctx, req.Email)
	if err == nil {
		return model.AuthResponse{}, ErrEmailTaken
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return model.AuthResponse{}, err
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return model.AuthResponse{}, err
	}

	user := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return model.AuthResponse{}, ErrEmailTaken
		}
		return model.AuthResponse{}, err
	}

	return s.respond(user)
}

// Login verifies credentials and returns a token with the public user
// view. An unknown email and a wrong password both yield
// ErrInvalidCredentials so a caller cannot tell which part failed.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.AuthResponse{}, ErrInvalidCredentials
		}
		return model.AuthResponse{}, err
	}

	// A hash that fails to decode counts as a mismatch, not a crash.
	match, err := crypto.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil || !match {
		return model.AuthResponse{}, ErrInvalidCredentials
	}

	return s.respond(user)
}

func (s *AuthService) respond(user *model.User) (model.AuthResponse, error) {
	token, err := crypto.GenerateToken(user.ID.Hex(), s.jwtSecret, s.jwtExpiry)
	if err != nil {
		return model.AuthResponse{}, err
	}
	return model.AuthResponse{
		Token: token,
		User:  model.PublicUser(user),
	}, nil
}
