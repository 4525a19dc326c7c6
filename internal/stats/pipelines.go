// Package stats builds listing statistics for the admin dashboard and public pages.
package stats

import (
	"math"

	"propertyhub-api/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// GroupCount is one bucket of a group-by-field count.
type GroupCount struct {
	Value string `json:"_id" bson:"_id"`
	Count int64  `json:"count" bson:"count"`
}

// GroupOptions shapes a GroupCountPipeline.
type GroupOptions struct {
	Match       bson.D
	SortByCount bool // descending by count, ties by value
	Limit       int64
}

// GroupCountPipeline groups documents by field and counts each distinct value.
func GroupCountPipeline(field string, opts GroupOptions) mongo.Pipeline {
	pipeline := mongo.Pipeline{}
	if len(opts.Match) > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: opts.Match}})
	}

	pipeline = append(pipeline, bson.D{{Key: "$group", Value: bson.D{
		{Key: "_id", Value: "$" + field},
		{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
	}}})

	if opts.SortByCount {
		pipeline = append(pipeline, bson.D{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}})
	} else {
		pipeline = append(pipeline, bson.D{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}})
	}

	if opts.Limit > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$limit", Value: opts.Limit}})
	}
	return pipeline
}

// StatusCounts is a listing count broken out by status.
type StatusCounts struct {
	Total  int64 `json:"totalProperties" bson:"total"`
	Active int64 `json:"activeProperties" bson:"active"`
	Sold   int64 `json:"soldProperties" bson:"sold"`
	Rented int64 `json:"rentedProperties" bson:"rented"`
}

// OwnerRollup is the per-owner result of OwnerRollupPipeline.
type OwnerRollup struct {
	Owner        primitive.ObjectID `bson:"_id"`
	StatusCounts `bson:",inline"`
}

func countWhereStatus(status string) bson.D {
	return bson.D{{Key: "$sum", Value: bson.D{{Key: "$cond", Value: bson.A{
		bson.D{{Key: "$eq", Value: bson.A{"$status", status}}}, 1, 0,
	}}}}}
}

// OwnerRollupPipeline counts the listings of every owner in ownerIDs in a single pass.
// Owners without listings produce no row.
func OwnerRollupPipeline(ownerIDs []primitive.ObjectID) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "owner", Value: bson.D{{Key: "$in", Value: ownerIDs}}}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$owner"},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "active", Value: countWhereStatus(models.StatusActive)},
			{Key: "sold", Value: countWhereStatus(models.StatusSold)},
			{Key: "rented", Value: countWhereStatus(models.StatusRented)},
		}}},
	}
}

// PriceSummary describes the price spread of a set of listings.
type PriceSummary struct {
	Total    int64   `json:"totalProperties" bson:"total"`
	AvgPrice float64 `json:"avgPrice" bson:"avgPrice"`
	MinPrice float64 `json:"minPrice" bson:"minPrice"`
	MaxPrice float64 `json:"maxPrice" bson:"maxPrice"`
}

// PriceSummaryPipeline collapses all matching listings into one PriceSummary row.
func PriceSummaryPipeline(match bson.D) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "avgPrice", Value: bson.D{{Key: "$avg", Value: "$price"}}},
			{Key: "minPrice", Value: bson.D{{Key: "$min", Value: "$price"}}},
			{Key: "maxPrice", Value: bson.D{{Key: "$max", Value: "$price"}}},
		}}},
	}
}

// SumCounts adds up the buckets of a grouping.
func SumCounts(groups []GroupCount) int64 {
	var total int64
	for _, g := range groups {
		total += g.Count
	}
	return total
}

// CountOf returns the bucket count for value, or 0.
func CountOf(groups []GroupCount, value string) int64 {
	for _, g := range groups {
		if g.Value == value {
			return g.Count
		}
	}
	return 0
}

// Percent returns part as a percentage of total rounded to two decimals.
// A zero total yields 0.
func Percent(part, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(part)*10000/float64(total)) / 100
}

// GroupShare is a GroupCount with its share of the grouping total.
type GroupShare struct {
	Value   string  `json:"_id"`
	Count   int64   `json:"count"`
	Percent float64 `json:"percent"`
}

// WithPercent attaches Percent(count, total) to every bucket.
func WithPercent(groups []GroupCount, total int64) []GroupShare {
	shares := make([]GroupShare, 0, len(groups))
	for _, g := range groups {
		shares = append(shares, GroupShare{Value: g.Value, Count: g.Count, Percent: Percent(g.Count, total)})
	}
	return shares
}
