package service

import (
	"context"
	"errors"

	"github.com/propertyhub/propertyhub-go/internal/model"
	"github.com/propertyhub/propertyhub-go/internal/repository"
)

var (
	ErrTitleRequired       = errors.New("title is required")
	ErrTitleTooLong        = errors.New("title must be at most 120 characters")
	ErrInvalidPropertyType = errors.New("type must be owned or rented")
	ErrPropertyNotFound    = errors.New("property not found")
)

// PropertyService handles owner-scoped property operations. The owner id
// always comes from the authenticated identity: creates stamp it onto the
// record, and every other call passes it into the repository so the query
// only selects the caller's records.
type PropertyService struct {
	properties repository.PropertyRepository
}

func NewPropertyService(properties repository.PropertyRepository) *PropertyService {
	return &PropertyService{properties: properties}
}

// Create stores a new property owned by the given user.
func (s *PropertyService) Create(ctx context.Context, owner *model.User, req model.PropertyRequest) (model.PropertyResponse, error) {
	if err := validateProperty(req); err != nil {
		return model.PropertyResponse{}, err
	}

	property := &model.Property{
		OwnerID: owner.ID,
		Title:   req.Title,
		Type:    req.Type,
		Address: req.Address,
		City:    req.City,
		Lat:     req.Lat,
		Lng:     req.Lng,
		Notes:   req.Notes,
	}

	if err := s.properties.Insert(ctx, property); err != nil {
		return model.PropertyResponse{}, err
	}

	return propertyToResponse(*property), nil
}

// List returns the owner's properties, newest first.
func (s *PropertyService) List(ctx context.Context, owner *model.User) ([]model.PropertyResponse, error) {
	properties, err := s.properties.ListByOwner(ctx, owner.ID.Hex())
	if err != nil {
		return nil, err
	}

	result := make([]model.PropertyResponse, len(properties))
	for i, p := range properties {
		result[i] = propertyToResponse(p)
	}
	return result, nil
}

// Get returns one of the owner's properties.
func (s *PropertyService) Get(ctx context.Context, owner *model.User, id string) (model.PropertyResponse, error) {
	property, err := s.properties.GetByID(ctx, owner.ID.Hex(), id)
	if err != nil {
		if errors.Is(err, repository.ErrPropertyNotFound) {
			return model.PropertyResponse{}, ErrPropertyNotFound
		}
		return model.PropertyResponse{}, err
	}
	return propertyToResponse(*property), nil
}

// Update replaces the fields of one of the owner's properties.
func (s *PropertyService) Update(ctx context.Context, owner *model.User, id string, req model.PropertyRequest) (model.PropertyResponse, error) {
	if err := validateProperty(req); err != nil {
		return model.PropertyResponse{}, err
	}

	property := &model.Property{
		Title:   req.Title,
		Type:    req.Type,
		Address: req.Address,
		City:    req.City,
		Lat:     req.Lat,
		Lng:     req.Lng,
		Notes:   req.Notes,
	}

	if err := s.properties.Update(ctx, owner.ID.Hex(), id, property); err != nil {
		if errors.Is(err, repository.ErrPropertyNotFound) {
			return model.PropertyResponse{}, ErrPropertyNotFound
		}
		return model.PropertyResponse{}, err
	}

	return s.Get(ctx, owner, id)
}

// Delete removes one of the owner's properties.
func (s *PropertyService) Delete(ctx context.Context, owner *model.User, id string) error {
	err := s.properties.Delete(ctx, owner.ID.Hex(), id)
	if errors.Is(err, repository.ErrPropertyNotFound) {
		return ErrPropertyNotFound
	}
	return err
}

func validateProperty(req model.PropertyRequest) error {
	if req.Title == "" {
		return ErrTitleRequired
	}
	if len(req.Title) > 120 {
		return ErrTitleTooLong
	}
	if req.Type != model.PropertyTypeOwned && req.Type != model.PropertyTypeRented {
		return ErrInvalidPropertyType
	}
	return nil
}

func propertyToResponse(p model.Property) model.PropertyResponse {
	return model.PropertyResponse{
		ID:        p.ID.Hex(),
		Title:     p.Title,
		Type:      p.Type,
		Address:   p.Address,
		City:      p.City,
		Lat:       p.Lat,
		Lng:       p.Lng,
		Notes:     p.Notes,
		CreatedAt: p.CreatedAt,
	}
}
