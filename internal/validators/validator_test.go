package validators

import (
	"strings"
	"testing"

	apperrors "propertyhub-api/internal/errors"
	"propertyhub-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func float(f float64) *float64 { return &f }

func validProperty() PropertyInput {
	return PropertyInput{
		Title:        "  Modern family home in DHA  ",
		Description:  strings.Repeat("Spacious and bright. ", 4),
		Purpose:      models.PurposeBuy,
		PropertyType: models.TypeHome,
		SubType:      "house",
		Price:        float(25000000),
		Area:         AreaInput{Value: float(10), Unit: "marla"},
		Location:     LocationInput{City: "Lahore", Area: "DHA Phase 5"},
		Features:     FeaturesInput{Bedrooms: 4, Bathrooms: 3},
	}
}

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	require.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok, "expected *AppError, got %T", err)
	assert.Equal(t, apperrors.ErrCodeValidation, appErr.Code)
	assert.Equal(t, 400, appErr.HTTPStatus)

	out := map[string]string{}
	for _, f := range appErr.Fields {
		out[f.Field] = f.Message
	}
	return out
}

func TestPropertyInput_Valid(t *testing.T) {
	in := validProperty()
	require.NoError(t, in.Validate())
	assert.Equal(t, "Modern family home in DHA", in.Title)
}

func TestPropertyInput_NestedFieldNames(t *testing.T) {
	in := validProperty()
	in.Price = nil
	in.Area = AreaInput{Value: float(0), Unit: "acre"}
	in.Location.City = "   "
	in.Location.Coordinates = &CoordinatesInput{Lat: 91, Lng: 0}

	fields := fieldErrors(t, in.Validate())
	assert.Equal(t, "price is required", fields["price"])
	assert.Equal(t, "value must be greater than 0", fields["area.value"])
	assert.Contains(t, fields["area.unit"], "marla, kanal")
	assert.Equal(t, "city is required", fields["location.city"])
	assert.Equal(t, "lat must be at most 90", fields["location.coordinates.lat"])
}

func TestPropertyInput_TooManyImages(t *testing.T) {
	in := validProperty()
	in.Images = make([]string, models.MaxPropertyImages+1)

	fields := fieldErrors(t, in.Validate())
	assert.Equal(t, "images cannot contain more than 20 items", fields["images"])
}

func TestPropertyInput_ToProperty(t *testing.T) {
	owner := primitive.NewObjectID()
	in := validProperty()
	in.Location.Coordinates = &CoordinatesInput{Lat: 31.5, Lng: 74.3}

	p := in.ToProperty(owner)
	assert.Equal(t, owner, p.Owner)
	assert.Equal(t, models.StatusActive, p.Status)
	assert.Equal(t, 10.0, p.Area.Value)
	assert.Equal(t, 4, p.Features.Bedrooms)
	assert.Equal(t, 31.5, p.Location.Coordinates.Lat)
	assert.NotNil(t, p.Images)
}

func TestApplyTo_KeepsStatusWhenUnset(t *testing.T) {
	p := &models.Property{Status: models.StatusSold}
	in := validProperty()
	in.ApplyTo(p)
	assert.Equal(t, models.StatusSold, p.Status)
}

func TestRegisterInput(t *testing.T) {
	in := RegisterInput{Name: "Ayesha", Email: " Ayesha@Example.COM ", Password: "secret1", Phone: "+92 (300) 123-4567"}
	require.NoError(t, in.Validate())
	assert.Equal(t, "ayesha@example.com", in.Email)

	bad := RegisterInput{Name: "A", Email: "nope", Password: "123", Phone: "call me", Role: "admin"}
	fields := fieldErrors(t, bad.Validate())
	assert.Equal(t, "name must be at least 2 characters", fields["name"])
	assert.Equal(t, "Please provide a valid email", fields["email"])
	assert.Equal(t, "password must be at least 6 characters", fields["password"])
	assert.Equal(t, "Please provide a valid phone number", fields["phone"])
	assert.Contains(t, fields["role"], "buyer, seller, agent")
}

func TestInquiryInput(t *testing.T) {
	in := InquiryInput{Property: "not-an-id", Name: "Bilal", Email: "b@x.pk", Phone: "0300", Message: "too short"}
	fields := fieldErrors(t, in.Validate())
	assert.Equal(t, "Invalid property ID", fields["property"])
	assert.Equal(t, "message must be at least 10 characters", fields["message"])

	in.Property = primitive.NewObjectID().Hex()
	in.Message = "Is the price negotiable?"
	assert.NoError(t, in.Validate())
}

func TestProfileInput_Fields(t *testing.T) {
	in := ProfileInput{Name: " Sana ", Avatar: "https://cdn.example.com/a.png"}
	require.NoError(t, in.Validate())
	assert.Equal(t, bson.D{{Key: "name", Value: "Sana"}, {Key: "avatar", Value: "https://cdn.example.com/a.png"}}, in.Fields())

	bad := ProfileInput{Avatar: "not a url"}
	fields := fieldErrors(t, bad.Validate())
	assert.Equal(t, "avatar must be a valid URL", fields["avatar"])
}

func TestAdminUpdateUserInput_AgentFieldsOnlyForAgents(t *testing.T) {
	agency := "Prime Realty"
	in := AdminUpdateUserInput{AgentProfileInput: AgentProfileInput{AgencyName: &agency}}

	assert.Empty(t, in.Fields(models.RoleBuyer))
	assert.Equal(t, bson.D{{Key: "agencyName", Value: "Prime Realty"}}, in.Fields(models.RoleAgent))

	role := models.RoleAgent
	in.Role = &role
	fields := in.Fields(models.RoleBuyer)
	assert.Equal(t, bson.D{{Key: "role", Value: "agent"}, {Key: "agencyName", Value: "Prime Realty"}}, fields)
}
