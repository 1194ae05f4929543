package repository

import (
	"context"
	"errors"

	"github.com/propertyhub/propertyhub-go/internal/model"
)

var ErrPropertyNotFound = errors.New("property not found")

// PropertyRepository defines persistence operations for properties. Every
// read and write is scoped to an owner id; a property belonging to another
// owner is indistinguishable from one that does not exist.
type PropertyRepository interface {
	Insert(ctx context.Context, property *model.Property) error
	ListByOwner(ctx context.Context, ownerID string) ([]model.Property, error)
	GetByID(ctx context.Context, ownerID, id string) (*model.Property, error)
	Update(ctx context.Context, ownerID, id string, property *model.Property) error
	Delete(ctx context.Context, ownerID, id string) error
}
