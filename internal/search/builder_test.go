package search

import (
	"net/url"
	"testing"

	"propertyhub-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func listing(purpose, ptype, subType, city, area string, price, size float64, unit string, beds, baths int, status string, featured bool) *models.Property {
	return &models.Property{
		ID:           primitive.NewObjectID(),
		Purpose:      purpose,
		PropertyType: ptype,
		SubType:      subType,
		Price:        price,
		Area:         models.Area{Value: size, Unit: unit},
		Location:     models.Location{City: city, Area: area},
		Features:     models.Features{Bedrooms: beds, Bathrooms: baths},
		Status:       status,
		Featured:     featured,
	}
}

func fixtures() []*models.Property {
	return []*models.Property{
		listing("buy", "home", "house", "Lahore", "DHA Phase 5", 5_000_000, 10, "marla", 5, 4, "active", true),
		listing("buy", "home", "house", "Lahore", "DHA Phase 6", 8_000_000, 1, "kanal", 6, 5, "active", false),
		listing("rent", "home", "apartment", "Karachi", "Clifton", 150_000, 5, "marla", 2, 2, "active", false),
		listing("buy", "plot", "residential", "Islamabad", "F-10", 3_000_000, 8, "marla", 0, 0, "sold", false),
		listing("buy", "home", "house", "Lahore", "Gulberg", 4_000_000, 10, "marla", 4, 3, "active", false),
		listing("buy", "home", "house", "Lahore", "Johar Town", 2_500_000, 5, "marla", 3, 2, "inactive", false),
	}
}

func matching(f Filter, props []*models.Property) map[primitive.ObjectID]bool {
	out := map[primitive.ObjectID]bool{}
	for _, p := range props {
		if f.Matches(p) {
			out[p.ID] = true
		}
	}
	return out
}

func TestBuild_DefaultsStatusToActive(t *testing.T) {
	f := Build(ParseParams(url.Values{}))

	assert.Equal(t, bson.D{{Key: "status", Value: "active"}}, f.BSON())

	for _, p := range fixtures() {
		assert.Equal(t, p.Status == models.StatusActive, f.Matches(p), p.Location.Area)
	}
}

func TestBuild_ExplicitStatus(t *testing.T) {
	f := Build(ParseParams(url.Values{"status": {"sold"}}))

	got := matching(f, fixtures())
	require.Len(t, got, 1)

	c, ok := f.Clause(FieldStatus)
	require.True(t, ok)
	assert.Equal(t, "sold", c.Value)
}

func TestBuild_PriceBoundsAreIndependent(t *testing.T) {
	tests := []struct {
		name   string
		values url.Values
		want   bson.D
	}{
		{
			name:   "lower bound only",
			values: url.Values{"minPrice": {"4000000"}},
			want:   bson.D{{Key: "$gte", Value: 4_000_000.0}},
		},
		{
			name:   "upper bound only",
			values: url.Values{"maxPrice": {"4000000"}},
			want:   bson.D{{Key: "$lte", Value: 4_000_000.0}},
		},
		{
			name:   "both bounds",
			values: url.Values{"minPrice": {"1"}, "maxPrice": {"2"}},
			want:   bson.D{{Key: "$gte", Value: 1.0}, {Key: "$lte", Value: 2.0}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Build(ParseParams(tt.values))
			c, ok := f.Clause(FieldPrice)
			require.True(t, ok)
			assert.Equal(t, KindRange, c.Kind)
			assert.Equal(t, tt.want, c.bsonValue())
		})
	}
}

func TestBuild_NonNumericValuesAreIgnored(t *testing.T) {
	p := ParseParams(url.Values{
		"minPrice":  {"cheap"},
		"maxArea":   {"NaN"},
		"bedrooms":  {"lots"},
		"bathrooms": {"2.5"},
		"agent":     {"not-an-id"},
	})

	assert.ElementsMatch(t, []string{"minPrice", "maxArea", "bedrooms", "bathrooms", "agent"}, p.Ignored)

	f := Build(p)
	assert.Equal(t, 1, f.Len())
	_, ok := f.Clause(FieldStatus)
	assert.True(t, ok)
}

func TestBuild_BedroomsAtLeast(t *testing.T) {
	f := Build(ParseParams(url.Values{"bedrooms": {"5+"}}))

	c, ok := f.Clause(FieldBedrooms)
	require.True(t, ok)
	assert.Equal(t, KindRange, c.Kind)
	require.NotNil(t, c.Gte)
	assert.Equal(t, 5.0, *c.Gte)
	assert.Nil(t, c.Lte)

	for beds, want := range map[int]bool{4: false, 5: true, 6: true, 9: true} {
		p := listing("buy", "home", "house", "Lahore", "Gulberg", 1, 1, "marla", beds, 1, "active", false)
		assert.Equal(t, want, f.Matches(p), "bedrooms=%d", beds)
	}
}

func TestBuild_BedroomsExact(t *testing.T) {
	f := Build(ParseParams(url.Values{"bedrooms": {"3"}}))

	c, ok := f.Clause(FieldBedrooms)
	require.True(t, ok)
	assert.Equal(t, KindEqual, c.Kind)
	assert.Equal(t, 3, c.Value)
}

func TestBuild_CityIsCaseInsensitiveSubstring(t *testing.T) {
	f := Build(ParseParams(url.Values{"city": {"lah"}}))

	c, ok := f.Clause(FieldCity)
	require.True(t, ok)
	assert.Equal(t, primitive.Regex{Pattern: "lah", Options: "i"}, c.bsonValue())

	got := matching(f, fixtures())
	assert.Len(t, got, 3)
}

func TestBuild_CityMetacharactersAreLiteral(t *testing.T) {
	f := Build(ParseParams(url.Values{"city": {"L.hore"}}))

	p := listing("buy", "home", "house", "Lahore", "Gulberg", 1, 1, "marla", 1, 1, "active", false)
	assert.False(t, f.Matches(p))
}

func TestBuild_FeaturedOnlyOnLiteralTrue(t *testing.T) {
	f := Build(ParseParams(url.Values{"featured": {"yes"}}))
	_, ok := f.Clause(FieldFeatured)
	assert.False(t, ok)

	f = Build(ParseParams(url.Values{"featured": {"true"}}))
	c, ok := f.Clause(FieldFeatured)
	require.True(t, ok)
	assert.Equal(t, true, c.Value)
}

func TestBuild_AgentFilter(t *testing.T) {
	owner := primitive.NewObjectID()
	f := Build(ParseParams(url.Values{"agent": {owner.Hex()}}))

	mine := listing("buy", "home", "house", "Lahore", "Gulberg", 1, 1, "marla", 1, 1, "active", false)
	mine.Owner = owner
	other := listing("buy", "home", "house", "Lahore", "Gulberg", 1, 1, "marla", 1, 1, "active", false)
	other.Owner = primitive.NewObjectID()

	assert.True(t, f.Matches(mine))
	assert.False(t, f.Matches(other))
}

// Dropping any parameter other than status must never shrink the result set.
func TestBuild_OmittingParameterNeverNarrows(t *testing.T) {
	full := url.Values{
		"purpose":      {"buy"},
		"propertyType": {"home"},
		"subType":      {"house"},
		"city":         {"lahore"},
		"area":         {"dha phase 5"},
		"minPrice":     {"1000000"},
		"maxPrice":     {"9000000"},
		"minArea":      {"5"},
		"maxArea":      {"12"},
		"areaUnit":     {"marla"},
		"bedrooms":     {"5+"},
		"bathrooms":    {"4"},
		"featured":     {"true"},
		"status":       {"active"},
	}
	props := fixtures()

	base := matching(Build(ParseParams(full)), props)
	require.Len(t, base, 1)

	for key := range full {
		if key == "status" {
			continue
		}
		t.Run("without "+key, func(t *testing.T) {
			reduced := url.Values{}
			for k, v := range full {
				if k != key {
					reduced[k] = v
				}
			}
			got := matching(Build(ParseParams(reduced)), props)
			for id := range base {
				assert.True(t, got[id], "omitting %s dropped a match", key)
			}
			assert.GreaterOrEqual(t, len(got), len(base))
		})
	}
}

func TestScenario_NewListingVisibleByDefault(t *testing.T) {
	p := &models.Property{
		Price:    5_000_000,
		Area:     models.Area{Value: 10, Unit: "marla"},
		Location: models.Location{City: "Lahore", Area: "Gulberg"},
		Status:   models.StatusActive,
	}

	assert.True(t, Build(ParseParams(url.Values{})).Matches(p))
	assert.False(t, Build(ParseParams(url.Values{"status": {"sold"}})).Matches(p))
}

func TestFilter_BSONKeepsClauseOrder(t *testing.T) {
	f := Build(ParseParams(url.Values{"purpose": {"rent"}, "city": {"Karachi"}}))

	doc := f.BSON()
	require.Len(t, doc, 3)
	assert.Equal(t, "purpose", doc[0].Key)
	assert.Equal(t, "location.city", doc[1].Key)
	assert.Equal(t, "status", doc[2].Key)
}

func TestFilter_WithDoesNotMutate(t *testing.T) {
	base := Filter{}.With(Equal(FieldStatus, "active"))
	_ = base.With(Equal(FieldPurpose, "buy"))

	assert.Equal(t, 1, base.Len())
}
