package validators

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

type RegisterInput struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone" validate:"omitempty,phone"`
	Role     string `json:"role" validate:"omitempty,oneof=buyer seller agent"`
}

func (in *RegisterInput) Validate() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)
	return ValidateStruct(in)
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (in *LoginInput) Validate() error {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	return ValidateStruct(in)
}

type PasswordInput struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

// ProfileInput is the self-service profile update; empty fields are left unchanged.
type ProfileInput struct {
	Name   string `json:"name" validate:"omitempty,min=2,max=50"`
	Phone  string `json:"phone" validate:"omitempty,phone"`
	Avatar string `json:"avatar" validate:"omitempty,url"`
}

func (in *ProfileInput) Validate() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Avatar = strings.TrimSpace(in.Avatar)
	return ValidateStruct(in)
}

// Fields returns the $set document for the non-empty fields.
func (in *ProfileInput) Fields() bson.D {
	fields := bson.D{}
	if in.Name != "" {
		fields = append(fields, bson.E{Key: "name", Value: in.Name})
	}
	if in.Phone != "" {
		fields = append(fields, bson.E{Key: "phone", Value: in.Phone})
	}
	if in.Avatar != "" {
		fields = append(fields, bson.E{Key: "avatar", Value: in.Avatar})
	}
	return fields
}

// AgentProfileInput updates agent-only fields; nil fields are left unchanged.
type AgentProfileInput struct {
	AgencyName     *string  `json:"agencyName" validate:"omitempty,max=100"`
	LicenseNumber  *string  `json:"licenseNumber" validate:"omitempty,max=50"`
	Bio            *string  `json:"bio" validate:"omitempty,max=1000"`
	Experience     *int     `json:"experience" validate:"omitempty,gte=0,lte=100"`
	Specialization []string `json:"specialization"`
}

func (in *AgentProfileInput) Fields() bson.D {
	fields := bson.D{}
	if in.AgencyName != nil {
		fields = append(fields, bson.E{Key: "agencyName", Value: strings.TrimSpace(*in.AgencyName)})
	}
	if in.LicenseNumber != nil {
		fields = append(fields, bson.E{Key: "licenseNumber", Value: strings.TrimSpace(*in.LicenseNumber)})
	}
	if in.Bio != nil {
		fields = append(fields, bson.E{Key: "bio", Value: *in.Bio})
	}
	if in.Experience != nil {
		fields = append(fields, bson.E{Key: "experience", Value: *in.Experience})
	}
	if in.Specialization != nil {
		fields = append(fields, bson.E{Key: "specialization", Value: in.Specialization})
	}
	return fields
}

// AdminCreateUserInput is the body of POST /admin/users.
type AdminCreateUserInput struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone" validate:"omitempty,phone"`
	Role     string `json:"role" validate:"omitempty,oneof=buyer seller agent admin"`
	IsActive *bool  `json:"isActive"`
}

func (in *AdminCreateUserInput) Validate() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)
	return ValidateStruct(in)
}

// AdminUpdateUserInput is the body of PUT /admin/users/:id. Agent fields
// apply only when the user is, or becomes, an agent.
type AdminUpdateUserInput struct {
	Name     *string `json:"name" validate:"omitempty,min=2,max=50"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Phone    *string `json:"phone" validate:"omitempty,phone"`
	Role     *string `json:"role" validate:"omitempty,oneof=buyer seller agent admin"`
	IsActive *bool   `json:"isActive"`
	AgentProfileInput
}

// Fields returns the $set document; currentRole is the stored role.
func (in *AdminUpdateUserInput) Fields(currentRole string) bson.D {
	fields := bson.D{}
	if in.Name != nil && *in.Name != "" {
		fields = append(fields, bson.E{Key: "name", Value: strings.TrimSpace(*in.Name)})
	}
	if in.Email != nil && *in.Email != "" {
		fields = append(fields, bson.E{Key: "email", Value: strings.ToLower(strings.TrimSpace(*in.Email))})
	}
	if in.Phone != nil && *in.Phone != "" {
		fields = append(fields, bson.E{Key: "phone", Value: *in.Phone})
	}
	role := currentRole
	if in.Role != nil && *in.Role != "" {
		role = *in.Role
		fields = append(fields, bson.E{Key: "role", Value: role})
	}
	if in.IsActive != nil {
		fields = append(fields, bson.E{Key: "isActive", Value: *in.IsActive})
	}
	if role == "agent" {
		fields = append(fields, in.AgentProfileInput.Fields()...)
	}
	return fields
}
