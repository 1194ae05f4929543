package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Property type values.
const (
	PropertyTypeOwned  = "owned"
	PropertyTypeRented = "rented"
)

// Property represents a tracked property as stored in the properties
// collection. OwnerID is stamped from the authenticated identity on create
// and anchors every query against the collection.
type Property struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	OwnerID   bson.ObjectID `bson:"owner_id"`
	Title     string        `bson:"title"`
	Type      string        `bson:"type"`
	Address   string        `bson:"address,omitempty"`
	City      string        `bson:"city,omitempty"`
	Lat       *float64      `bson:"lat,omitempty"`
	Lng       *float64      `bson:"lng,omitempty"`
	Notes     string        `bson:"notes,omitempty"`
	CreatedAt time.Time     `bson:"created_at"`
}

// PropertyRequest represents a property create or update payload.
type PropertyRequest struct {
	Title   string   `json:"title"`
	Type    string   `json:"type"`
	Address string   `json:"address"`
	City    string   `json:"city"`
	Lat     *float64 `json:"lat"`
	Lng     *float64 `json:"lng"`
	Notes   string   `json:"notes"`
}

// PropertyResponse represents a property in API responses.
type PropertyResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Type      string    `json:"type"`
	Address   string    `json:"address,omitempty"`
	City      string    `json:"city,omitempty"`
	Lat       *float64  `json:"lat,omitempty"`
	Lng       *float64  `json:"lng,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
