package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Inquiry statuses
const (
	InquiryNew       = "new"
	InquiryContacted = "contacted"
	InquiryClosed    = "closed"
)

type Inquiry struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Property  primitive.ObjectID `json:"property" bson:"property"`
	Sender    primitive.ObjectID `json:"sender" bson:"sender"`
	Name      string             `json:"name" bson:"name"`
	Email     string             `json:"email" bson:"email"`
	Phone     string             `json:"phone" bson:"phone"`
	Message   string             `json:"message" bson:"message"`
	Status    string             `json:"status" bson:"status"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`

	PropertyDetails *PropertySummary `json:"propertyDetails,omitempty" bson:"-"`
}

// PropertySummary is the short listing card attached to inquiries.
type PropertySummary struct {
	ID     primitive.ObjectID `json:"_id"`
	Title  string             `json:"title"`
	Price  float64            `json:"price"`
	City   string             `json:"city"`
	Images []string           `json:"images,omitempty"`
	Owner  primitive.ObjectID `json:"owner"`
}

func (p *Property) Summary() *PropertySummary {
	return &PropertySummary{ID: p.ID, Title: p.Title, Price: p.Price, City: p.Location.City, Images: p.Images, Owner: p.Owner}
}
