package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles
const (
	RoleBuyer  = "buyer"
	RoleSeller = "seller"
	RoleAgent  = "agent"
	RoleAdmin  = "admin"
)

// OwnerRoles are the roles counted as property owners in statistics.
var OwnerRoles = []string{RoleSeller, RoleAgent}

type User struct {
	ID              primitive.ObjectID   `json:"_id" bson:"_id,omitempty"`
	Name            string               `json:"name" bson:"name"`
	Email           string               `json:"email" bson:"email"`
	Password        string               `json:"-" bson:"password"`
	Phone           string               `json:"phone,omitempty" bson:"phone,omitempty"`
	Role            string               `json:"role" bson:"role"`
	Avatar          string               `json:"avatar,omitempty" bson:"avatar,omitempty"`
	IsVerified      bool                 `json:"isVerified" bson:"isVerified"`
	IsActive        bool                 `json:"isActive" bson:"isActive"`
	SavedProperties []primitive.ObjectID `json:"savedProperties" bson:"savedProperties"`

	// agent profile
	AgencyName     string   `json:"agencyName,omitempty" bson:"agencyName,omitempty"`
	LicenseNumber  string   `json:"licenseNumber,omitempty" bson:"licenseNumber,omitempty"`
	Bio            string   `json:"bio,omitempty" bson:"bio,omitempty"`
	Experience     int      `json:"experience,omitempty" bson:"experience,omitempty"`
	Specialization []string `json:"specialization,omitempty" bson:"specialization,omitempty"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// UserSummary is the public contact card embedded in listings and inquiries.
type UserSummary struct {
	ID     primitive.ObjectID `json:"_id"`
	Name   string             `json:"name"`
	Email  string             `json:"email"`
	Phone  string             `json:"phone,omitempty"`
	Avatar string             `json:"avatar,omitempty"`
	Role   string             `json:"role,omitempty"`
}

func (u *User) Summary() *UserSummary {
	return &UserSummary{ID: u.ID, Name: u.Name, Email: u.Email, Phone: u.Phone, Avatar: u.Avatar, Role: u.Role}
}

// IsOwnerRole reports whether role counts as a property owner.
func IsOwnerRole(role string) bool {
	return role == RoleSeller || role == RoleAgent
}

// HasSaved reports whether id is in the user's saved properties.
func (u *User) HasSaved(id primitive.ObjectID) bool {
	for _, saved := range u.SavedProperties {
		if saved == id {
			return true
		}
	}
	return false
}
