package search

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

const (
	DefaultLimit      = 12
	MyPropertiesLimit = 10
	MaxLimit          = 100
)

// Page is a 1-based offset window.
type Page struct {
	Number int
	Limit  int
}

// ParsePage reads page and limit, falling back to 1 and defaultLimit on
// missing, non-numeric or non-positive values. limit is capped at MaxLimit.
func ParsePage(values url.Values, defaultLimit int) Page {
	p := Page{Number: 1, Limit: defaultLimit}
	if n, err := strconv.Atoi(values.Get("page")); err == nil && n > 0 {
		p.Number = n
	}
	if n, err := strconv.Atoi(values.Get("limit")); err == nil && n > 0 {
		p.Limit = n
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

func (p Page) Skip() int64 {
	return int64(p.Number-1) * int64(p.Limit)
}

// Pages returns ceil(total/limit).
func Pages(total int64, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

type Sort string

const (
	SortNewest    Sort = "newest"
	SortOldest    Sort = "oldest"
	SortPriceAsc  Sort = "price-asc"
	SortPriceDesc Sort = "price-desc"
	SortAreaAsc   Sort = "area-asc"
	SortAreaDesc  Sort = "area-desc"
)

var sortKeys = map[Sort]bson.D{
	SortNewest:    {{Key: "createdAt", Value: -1}},
	SortOldest:    {{Key: "createdAt", Value: 1}},
	SortPriceAsc:  {{Key: FieldPrice, Value: 1}},
	SortPriceDesc: {{Key: FieldPrice, Value: -1}},
	SortAreaAsc:   {{Key: FieldAreaValue, Value: 1}},
	SortAreaDesc:  {{Key: FieldAreaValue, Value: -1}},
}

// ParseSort maps a sort name to a Sort; unknown names give SortNewest.
func ParseSort(s string) Sort {
	if _, ok := sortKeys[Sort(s)]; ok {
		return Sort(s)
	}
	return SortNewest
}

// BSON returns the sort document for the driver.
func (s Sort) BSON() bson.D {
	if d, ok := sortKeys[s]; ok {
		return d
	}
	return sortKeys[SortNewest]
}

// Query bundles the filter, window and order of one listing request.
type Query struct {
	Filter Filter
	Page   Page
	Sort   Sort
}

// Key renders q deterministically from its parsed form, so requests that
// run the same query share a key and requests that differ never do.
// Parameters the parser drops have no effect on it.
func (q Query) Key() string {
	var b strings.Builder
	for _, c := range q.Filter.Clauses {
		switch c.Kind {
		case KindRange:
			fmt.Fprintf(&b, "%q range %v %v;", c.Field, deref(c.Gte), deref(c.Lte))
		case KindPattern:
			fmt.Fprintf(&b, "%q pattern %q;", c.Field, c.Pattern)
		default:
			fmt.Fprintf(&b, "%q equal %#v;", c.Field, c.Value)
		}
	}
	fmt.Fprintf(&b, "page %d;limit %d;sort %q", q.Page.Number, q.Page.Limit, string(q.Sort))
	return b.String()
}
