package search

import (
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"propertyhub-api/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Params is the typed form of the listing search query string.
type Params struct {
	Purpose      string
	PropertyType string
	SubType      string
	City         string
	Area         string
	AreaUnit     string
	Status       string

	MinPrice *float64
	MaxPrice *float64
	MinArea  *float64
	MaxArea  *float64

	Bedrooms        *int
	BedroomsAtLeast bool // "5+" style value
	Bathrooms       *int

	Featured bool
	Owner    *primitive.ObjectID

	// Ignored names parameters that were present but could not be parsed.
	Ignored []string
}

// ParseParams reads search parameters from a query string. Unparseable
// numeric or id values are dropped and listed in Params.Ignored.
func ParseParams(values url.Values) Params {
	p := Params{
		Purpose:      strings.TrimSpace(values.Get("purpose")),
		PropertyType: strings.TrimSpace(values.Get("propertyType")),
		SubType:      strings.TrimSpace(values.Get("subType")),
		City:         strings.TrimSpace(values.Get("city")),
		Area:         values.Get("area"),
		AreaUnit:     strings.TrimSpace(values.Get("areaUnit")),
		Status:       strings.TrimSpace(values.Get("status")),
		Featured:     values.Get("featured") == "true",
	}

	p.MinPrice = p.parseFloat(values, "minPrice")
	p.MaxPrice = p.parseFloat(values, "maxPrice")
	p.MinArea = p.parseFloat(values, "minArea")
	p.MaxArea = p.parseFloat(values, "maxArea")
	p.Bathrooms = p.parseInt(values, "bathrooms")

	if raw := strings.TrimSpace(values.Get("bedrooms")); raw != "" {
		atLeast := strings.HasSuffix(raw, "+")
		if n, err := strconv.Atoi(strings.TrimSuffix(raw, "+")); err == nil && n >= 0 {
			p.Bedrooms = &n
			p.BedroomsAtLeast = atLeast
		} else {
			p.Ignored = append(p.Ignored, "bedrooms")
		}
	}

	if raw := strings.TrimSpace(values.Get("agent")); raw != "" {
		if id, err := primitive.ObjectIDFromHex(raw); err == nil {
			p.Owner = &id
		} else {
			p.Ignored = append(p.Ignored, "agent")
		}
	}

	return p
}

func (p *Params) parseFloat(values url.Values, key string) *float64 {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return nil
	}
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		p.Ignored = append(p.Ignored, key)
		return nil
	}
	return &n
}

func (p *Params) parseInt(values url.Values, key string) *int {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		p.Ignored = append(p.Ignored, key)
		return nil
	}
	return &n
}

// Build converts search parameters into a listing filter.
// The status clause is always present and defaults to active.
func Build(p Params) Filter {
	f := Filter{}

	if p.Purpose != "" {
		f = f.With(Equal(FieldPurpose, p.Purpose))
	}
	if p.PropertyType != "" {
		f = f.With(Equal(FieldPropertyType, p.PropertyType))
	}
	if p.SubType != "" {
		f = f.With(Equal(FieldSubType, p.SubType))
	}
	if p.City != "" {
		f = f.With(Pattern(FieldCity, regexp.QuoteMeta(p.City)))
	}
	if pattern, ok := AreaPattern(p.Area); ok {
		f = f.With(Pattern(FieldArea, pattern))
	}
	if p.MinPrice != nil || p.MaxPrice != nil {
		f = f.With(Range(FieldPrice, p.MinPrice, p.MaxPrice))
	}
	if p.MinArea != nil || p.MaxArea != nil {
		f = f.With(Range(FieldAreaValue, p.MinArea, p.MaxArea))
	}
	if p.AreaUnit != "" {
		f = f.With(Equal(FieldAreaUnit, p.AreaUnit))
	}
	if p.Bedrooms != nil {
		if p.BedroomsAtLeast {
			min := float64(*p.Bedrooms)
			f = f.With(Range(FieldBedrooms, &min, nil))
		} else {
			f = f.With(Equal(FieldBedrooms, *p.Bedrooms))
		}
	}
	if p.Bathrooms != nil {
		f = f.With(Equal(FieldBathrooms, *p.Bathrooms))
	}

	status := p.Status
	if status == "" {
		status = models.StatusActive
	}
	f = f.With(Equal(FieldStatus, status))

	if p.Featured {
		f = f.With(Equal(FieldFeatured, true))
	}
	if p.Owner != nil {
		f = f.With(Equal(FieldOwner, *p.Owner))
	}

	return f
}
