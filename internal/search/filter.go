// Package search turns listing query parameters into store predicates.
//
// A Filter is an ordered list of typed clauses. It renders to a MongoDB
// filter document with BSON and can be evaluated in memory with Matches,
// so query construction is testable without a database.
package search

import (
	"fmt"
	"regexp"

	"propertyhub-api/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Document fields a clause may target.
const (
	FieldPurpose      = "purpose"
	FieldPropertyType = "propertyType"
	FieldSubType      = "subType"
	FieldCity         = "location.city"
	FieldArea         = "location.area"
	FieldPrice        = "price"
	FieldAreaValue    = "area.value"
	FieldAreaUnit     = "area.unit"
	FieldBedrooms     = "features.bedrooms"
	FieldBathrooms    = "features.bathrooms"
	FieldStatus       = "status"
	FieldFeatured     = "featured"
	FieldOwner        = "owner"
)

type ClauseKind int

const (
	KindEqual ClauseKind = iota
	KindRange
	KindPattern
)

func (k ClauseKind) String() string {
	switch k {
	case KindEqual:
		return "equal"
	case KindRange:
		return "range"
	case KindPattern:
		return "pattern"
	}
	return "unknown"
}

// Clause constrains a single field.
type Clause struct {
	Field string
	Kind  ClauseKind

	Value interface{} // KindEqual

	Gte *float64 // KindRange, inclusive bounds; nil means unbounded
	Lte *float64

	Pattern string // KindPattern, matched case-insensitively anywhere in the value
}

func Equal(field string, value interface{}) Clause {
	return Clause{Field: field, Kind: KindEqual, Value: value}
}

func Range(field string, gte, lte *float64) Clause {
	return Clause{Field: field, Kind: KindRange, Gte: gte, Lte: lte}
}

func Pattern(field, pattern string) Clause {
	return Clause{Field: field, Kind: KindPattern, Pattern: pattern}
}

// Filter is a conjunction of clauses.
type Filter struct {
	Clauses []Clause
}

// With returns a copy of f with c appended.
func (f Filter) With(c Clause) Filter {
	clauses := make([]Clause, 0, len(f.Clauses)+1)
	clauses = append(clauses, f.Clauses...)
	return Filter{Clauses: append(clauses, c)}
}

// Clause returns the first clause on field.
func (f Filter) Clause(field string) (Clause, bool) {
	for _, c := range f.Clauses {
		if c.Field == field {
			return c, true
		}
	}
	return Clause{}, false
}

func (f Filter) Len() int {
	return len(f.Clauses)
}

// BSON renders the filter as a MongoDB query document.
func (f Filter) BSON() bson.D {
	doc := bson.D{}
	for _, c := range f.Clauses {
		doc = append(doc, bson.E{Key: c.Field, Value: c.bsonValue()})
	}
	return doc
}

func (c Clause) bsonValue() interface{} {
	switch c.Kind {
	case KindRange:
		bounds := bson.D{}
		if c.Gte != nil {
			bounds = append(bounds, bson.E{Key: "$gte", Value: *c.Gte})
		}
		if c.Lte != nil {
			bounds = append(bounds, bson.E{Key: "$lte", Value: *c.Lte})
		}
		return bounds
	case KindPattern:
		return primitive.Regex{Pattern: c.Pattern, Options: "i"}
	default:
		return c.Value
	}
}

func (c Clause) String() string {
	switch c.Kind {
	case KindRange:
		return fmt.Sprintf("%s in [%v, %v]", c.Field, deref(c.Gte), deref(c.Lte))
	case KindPattern:
		return fmt.Sprintf("%s ~ /%s/i", c.Field, c.Pattern)
	default:
		return fmt.Sprintf("%s = %v", c.Field, c.Value)
	}
}

func deref(v *float64) interface{} {
	if v == nil {
		return "*"
	}
	return *v
}

// Matches evaluates the filter against a property in memory.
// A clause on an unknown field never matches.
func (f Filter) Matches(p *models.Property) bool {
	for _, c := range f.Clauses {
		if !c.matches(p) {
			return false
		}
	}
	return true
}

func (c Clause) matches(p *models.Property) bool {
	value, ok := fieldValue(p, c.Field)
	if !ok {
		return false
	}

	switch c.Kind {
	case KindEqual:
		return equalValues(value, c.Value)
	case KindRange:
		n, ok := toFloat(value)
		if !ok {
			return false
		}
		if c.Gte != nil && n < *c.Gte {
			return false
		}
		if c.Lte != nil && n > *c.Lte {
			return false
		}
		return true
	case KindPattern:
		s, ok := value.(string)
		if !ok {
			return false
		}
		re, err := regexp.Compile("(?i)" + c.Pattern)
		if err != nil {
			return false
		}
		return re.MatchString(s)
	}
	return false
}

func fieldValue(p *models.Property, field string) (interface{}, bool) {
	switch field {
	case FieldPurpose:
		return p.Purpose, true
	case FieldPropertyType:
		return p.PropertyType, true
	case FieldSubType:
		return p.SubType, true
	case FieldCity:
		return p.Location.City, true
	case FieldArea:
		return p.Location.Area, true
	case FieldPrice:
		return p.Price, true
	case FieldAreaValue:
		return p.Area.Value, true
	case FieldAreaUnit:
		return p.Area.Unit, true
	case FieldBedrooms:
		return p.Features.Bedrooms, true
	case FieldBathrooms:
		return p.Features.Bathrooms, true
	case FieldStatus:
		return p.Status, true
	case FieldFeatured:
		return p.Featured, true
	case FieldOwner:
		return p.Owner, true
	}
	return nil, false
}

func equalValues(a, b interface{}) bool {
	if x, ok := toFloat(a); ok {
		if y, ok := toFloat(b); ok {
			return x == y
		}
		return false
	}
	return a == b
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
