package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropertySearchKey(t *testing.T) {
	a := PropertySearchKey(`"purpose" equal "buy";page 1;limit 12;sort "newest"`)

	assert.True(t, strings.HasPrefix(a, "properties:search:"))
	assert.Equal(t, a, PropertySearchKey(`"purpose" equal "buy";page 1;limit 12;sort "newest"`))
	assert.NotEqual(t, a, PropertySearchKey(`"purpose" equal "rent";page 1;limit 12;sort "newest"`))
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "tagset:tag:listings", TagSetKey(TagListings))
	assert.Equal(t, "tag:property:abc", PropertyTag("abc"))
	assert.Equal(t, "city:lahore", CityKey("Lahore"))
	assert.Equal(t, "properties:featured:limit:6", FeaturedPropertiesKey(6))
}

func TestNoopStore(t *testing.T) {
	var s Store = NoopStore{}
	var dest map[string]string

	err := s.Get(context.Background(), "k", &dest)
	assert.True(t, errors.Is(err, ErrCacheMiss))
	assert.NoError(t, s.Set(context.Background(), "k", "v", time.Minute, TagListings))
	assert.NoError(t, s.Invalidate(context.Background(), TagListings))
}

func TestOpError(t *testing.T) {
	inner := errors.New("dial tcp: refused")

	err := error(opError("get", "city:lahore", inner))
	assert.ErrorIs(t, err, inner)
	assert.Equal(t, "cache get city:lahore: dial tcp: refused", err.Error())

	var op *OpError
	require.True(t, errors.As(fmt.Errorf("featured: %w", opError("delete", "", inner)), &op))
	assert.Equal(t, "delete", op.Op)
	assert.Equal(t, "cache delete: dial tcp: refused", op.Error())
}
