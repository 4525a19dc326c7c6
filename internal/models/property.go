package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Property purposes
const (
	PurposeBuy  = "buy"
	PurposeRent = "rent"
)

// Property types
const (
	TypeHome       = "home"
	TypePlot       = "plot"
	TypeCommercial = "commercial"
)

// Property statuses
const (
	StatusActive   = "active"
	StatusSold     = "sold"
	StatusRented   = "rented"
	StatusInactive = "inactive"
)

// MaxPropertyImages bounds Property.Images
const MaxPropertyImages = 20

// PropertyStatuses lists every valid listing status.
var PropertyStatuses = []string{StatusActive, StatusSold, StatusRented, StatusInactive}

// AreaUnits lists the accepted area units.
var AreaUnits = []string{"marla", "kanal", "sq-ft", "sq-yard", "sq-meter"}

type Area struct {
	Value float64 `json:"value" bson:"value"`
	Unit  string  `json:"unit" bson:"unit"`
}

type Coordinates struct {
	Lat float64 `json:"lat" bson:"lat"`
	Lng float64 `json:"lng" bson:"lng"`
}

type Location struct {
	City        string       `json:"city" bson:"city"`
	Area        string       `json:"area" bson:"area"`
	Address     string       `json:"address,omitempty" bson:"address,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty" bson:"coordinates,omitempty"`
}

type Features struct {
	Bedrooms  int  `json:"bedrooms" bson:"bedrooms"`
	Bathrooms int  `json:"bathrooms" bson:"bathrooms"`
	Parking   int  `json:"parking" bson:"parking"`
	Furnished bool `json:"furnished" bson:"furnished"`
}

// Property is one listing in the properties collection.
type Property struct {
	ID           primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Title        string             `json:"title" bson:"title"`
	Description  string             `json:"description" bson:"description"`
	Purpose      string             `json:"purpose" bson:"purpose"`
	PropertyType string             `json:"propertyType" bson:"propertyType"`
	SubType      string             `json:"subType" bson:"subType"`
	Price        float64            `json:"price" bson:"price"`
	Area         Area               `json:"area" bson:"area"`
	Location     Location           `json:"location" bson:"location"`
	Features     Features           `json:"features" bson:"features"`
	Images       []string           `json:"images" bson:"images"`
	Owner        primitive.ObjectID `json:"owner" bson:"owner"`
	OwnerDetails *UserSummary       `json:"ownerDetails,omitempty" bson:"-"`
	Status       string             `json:"status" bson:"status"`
	Featured     bool               `json:"featured" bson:"featured"`
	Views        int64              `json:"views" bson:"views"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// IsValidStatus reports whether s is one of PropertyStatuses.
func IsValidStatus(s string) bool {
	for _, status := range PropertyStatuses {
		if s == status {
			return true
		}
	}
	return false
}
