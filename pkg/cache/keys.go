package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// Invalidation tags
const (
	TagListings = "tag:listings"
	TagCities   = "tag:cities"
)

// PropertyTag groups the cache entries that embed a single listing.
func PropertyTag(id string) string {
	return fmt.Sprintf("tag:property:%s", id)
}

// TagSetKey is the Redis set holding the keys carrying tag.
func TagSetKey(tag string) string {
	return "tagset:" + tag
}

// cache key for a listing search. canonical must come from the parsed
// query so only parameters that change the result change the key.
func PropertySearchKey(canonical string) string {
	sum := sha256.Sum256([]byte(canonical))
	return "properties:search:" + hex.EncodeToString(sum[:])
}

// cache key for the featured listings.
func FeaturedPropertiesKey(limit int) string {
	return fmt.Sprintf("properties:featured:limit:%d", limit)
}

// cache key for listings similar to a property.
func SimilarPropertiesKey(id string) string {
	return fmt.Sprintf("properties:similar:%s", id)
}

// cache key for the public market summary.
func PublicStatsKey() string {
	return "properties:stats:public"
}

// cache key for the active city list.
func CityListKey() string {
	return "cities:active"
}

// cache key for one city looked up by id or slug.
func CityKey(idOrSlug string) string {
	return fmt.Sprintf("city:%s", strings.ToLower(idOrSlug))
}
