package validators

import (
	"strings"

	"propertyhub-api/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AreaInput struct {
	Value *float64 `json:"value" validate:"required,gt=0"`
	Unit  string   `json:"unit" validate:"required,oneof=marla kanal sq-ft sq-yard sq-meter"`
}

type CoordinatesInput struct {
	Lat float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lng float64 `json:"lng" validate:"gte=-180,lte=180"`
}

type LocationInput struct {
	City        string            `json:"city" validate:"required"`
	Area        string            `json:"area" validate:"required"`
	Address     string            `json:"address" validate:"max=300"`
	Coordinates *CoordinatesInput `json:"coordinates" validate:"omitempty"`
}

type FeaturesInput struct {
	Bedrooms  int  `json:"bedrooms" validate:"gte=0"`
	Bathrooms int  `json:"bathrooms" validate:"gte=0"`
	Parking   int  `json:"parking" validate:"gte=0"`
	Furnished bool `json:"furnished"`
}

// PropertyInput is the body of create and update listing requests.
// Any owner sent by the client is ignored.
type PropertyInput struct {
	Title        string        `json:"title" validate:"required,min=10,max=200"`
	Description  string        `json:"description" validate:"required,min=50,max=2000"`
	Purpose      string        `json:"purpose" validate:"required,oneof=buy rent"`
	PropertyType string        `json:"propertyType" validate:"required,oneof=home plot commercial"`
	SubType      string        `json:"subType" validate:"required"`
	Price        *float64      `json:"price" validate:"required,gte=0"`
	Area         AreaInput     `json:"area"`
	Location     LocationInput `json:"location"`
	Features     FeaturesInput `json:"features"`
	Images       []string      `json:"images" validate:"max=20"`
	Status       string        `json:"status" validate:"omitempty,oneof=active sold rented inactive"`
	Featured     bool          `json:"featured"`
}

// Normalize trims the free-text fields.
func (in *PropertyInput) Normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.SubType = strings.TrimSpace(in.SubType)
	in.Location.City = strings.TrimSpace(in.Location.City)
	in.Location.Area = strings.TrimSpace(in.Location.Area)
	in.Location.Address = strings.TrimSpace(in.Location.Address)
}

// Validate normalizes then validates the input.
func (in *PropertyInput) Validate() error {
	in.Normalize()
	return ValidateStruct(in)
}

// ApplyTo copies the editable fields onto p. Status is only copied when set.
func (in *PropertyInput) ApplyTo(p *models.Property) {
	p.Title = in.Title
	p.Description = in.Description
	p.Purpose = in.Purpose
	p.PropertyType = in.PropertyType
	p.SubType = in.SubType
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Area.Value != nil {
		p.Area.Value = *in.Area.Value
	}
	p.Area.Unit = in.Area.Unit
	p.Location = models.Location{
		City:    in.Location.City,
		Area:    in.Location.Area,
		Address: in.Location.Address,
	}
	if c := in.Location.Coordinates; c != nil {
		p.Location.Coordinates = &models.Coordinates{Lat: c.Lat, Lng: c.Lng}
	}
	p.Features = models.Features(in.Features)
	p.Images = in.Images
	if p.Images == nil {
		p.Images = []string{}
	}
	if in.Status != "" {
		p.Status = in.Status
	}
	p.Featured = in.Featured
}

// ToProperty builds a new listing owned by owner.
func (in *PropertyInput) ToProperty(owner primitive.ObjectID) *models.Property {
	p := &models.Property{Owner: owner, Status: models.StatusActive}
	in.ApplyTo(p)
	return p
}

type StatusInput struct {
	Status string `json:"status" validate:"required,oneof=active sold rented inactive"`
}

type InquiryInput struct {
	Property string `json:"property" validate:"required,objectid"`
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required"`
	Message  string `json:"message" validate:"required,min=10,max=500"`
}

func (in *InquiryInput) Validate() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Message = strings.TrimSpace(in.Message)
	return ValidateStruct(in)
}

type InquiryStatusInput struct {
	Status string `json:"status" validate:"required,oneof=new contacted closed"`
}
