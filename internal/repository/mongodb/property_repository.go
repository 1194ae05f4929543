package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/propertyhub/propertyhub-go/internal/model"
	"github.com/propertyhub/propertyhub-go/internal/repository"
)

// PropertyRepository stores properties in the properties collection. Every
// filter it builds is anchored on owner_id, so records of other owners are
// never visible through this type.
type PropertyRepository struct {
	coll *mongo.Collection
}

func NewPropertyRepository(db *mongo.Database) *PropertyRepository {
	return &PropertyRepository{coll: db.Collection("properties")}
}

// Init creates the owner_id/created_at index backing owner-scoped listings.
func (r *PropertyRepository) Init(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "owner_id", Value: 1},
			{Key: "created_at", Value: -1},
		},
	})
	if err != nil {
		return fmt.Errorf("create property index: %w", err)
	}
	return nil
}

// ownerScope builds the filter selecting a single property of an owner. A
// malformed id cannot match anything and is reported as not found.
func ownerScope(ownerID, id string) (bson.D, error) {
	owner, err := bson.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, repository.ErrPropertyNotFound
	}
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrPropertyNotFound
	}
	return bson.D{
		{Key: "_id", Value: oid},
		{Key: "owner_id", Value: owner},
	}, nil
}

// Insert stores a new property, assigning an id and creation timestamp.
func (r *PropertyRepository) Insert(ctx context.Context, property *model.Property) error {
	if property.ID.IsZero() {
		property.ID = bson.NewObjectID()
	}
	if property.CreatedAt.IsZero() {
		property.CreatedAt = time.Now().UTC()
	}

	if _, err := r.coll.InsertOne(ctx, property); err != nil {
		return fmt.Errorf("insert property: %w", err)
	}
	return nil
}

// ListByOwner returns the owner's properties, newest first.
func (r *PropertyRepository) ListByOwner(ctx context.Context, ownerID string) ([]model.Property, error) {
	owner, err := bson.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, nil
	}

	cursor, err := r.coll.Find(ctx,
		bson.D{{Key: "owner_id", Value: owner}},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	defer cursor.Close(ctx)

	var properties []model.Property
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, fmt.Errorf("decode properties: %w", err)
	}
	return properties, nil
}

// GetByID retrieves one of the owner's properties.
func (r *PropertyRepository) GetByID(ctx context.Context, ownerID, id string) (*model.Property, error) {
	filter, err := ownerScope(ownerID, id)
	if err != nil {
		return nil, err
	}

	var property model.Property
	if err := r.coll.FindOne(ctx, filter).Decode(&property); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrPropertyNotFound
		}
		return nil, fmt.Errorf("find property: %w", err)
	}
	return &property, nil
}

// Update replaces the mutable fields of one of the owner's properties.
func (r *PropertyRepository) Update(ctx context.Context, ownerID, id string, property *model.Property) error {
	filter, err := ownerScope(ownerID, id)
	if err != nil {
		return err
	}

	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "title", Value: property.Title},
		{Key: "type", Value: property.Type},
		{Key: "address", Value: property.Address},
		{Key: "city", Value: property.City},
		{Key: "lat", Value: property.Lat},
		{Key: "lng", Value: property.Lng},
		{Key: "notes", Value: property.Notes},
	}}}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("update property: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrPropertyNotFound
	}
	return nil
}

// Delete removes one of the owner's properties.
func (r *PropertyRepository) Delete(ctx context.Context, ownerID, id string) error {
	filter, err := ownerScope(ownerID, id)
	if err != nil {
		return err
	}

	res, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("delete property: %w", err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrPropertyNotFound
	}
	return nil
}
