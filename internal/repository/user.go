package repository

import (
	"context"
	"errors"

	"github.com/propertyhub/propertyhub-go/internal/model"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

// UserRepository defines persistence operations for users. The store
// enforces email uniqueness; Create returns ErrDuplicateEmail when the
// constraint is violated, which closes the register check-then-act race.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
}
