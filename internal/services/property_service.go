package services

import (
	"context"
	"net/url"
	"strconv"
	"time"

	apperrors "propertyhub-api/internal/errors"
	"propertyhub-api/internal/models"
	"propertyhub-api/internal/repositories"
	"propertyhub-api/internal/search"
	"propertyhub-api/internal/stats"
	"propertyhub-api/internal/validators"
	"propertyhub-api/pkg/cache"
	"propertyhub-api/pkg/logger"
	"propertyhub-api/pkg/metrics"

	"go.mongodb.org/mongo-driver/bson"
)

const (
	DefaultFeaturedLimit = 6
	SimilarLimit         = 6
	// similar listings are priced within this fraction of the original
	SimilarPriceSpread = 0.3
)

type PropertyService struct {
	properties repositories.PropertyRepository
	users      repositories.UserRepository
	aggregator *stats.Aggregator
	cache      cache.Store
	searchTTL  time.Duration
	statsTTL   time.Duration
}

func NewPropertyService(
	properties repositories.PropertyRepository,
	users repositories.UserRepository,
	aggregator *stats.Aggregator,
	store cache.Store,
	searchTTL, statsTTL time.Duration,
) *PropertyService {
	return &PropertyService{
		properties: properties,
		users:      users,
		aggregator: aggregator,
		cache:      store,
		searchTTL:  searchTTL,
		statsTTL:   statsTTL,
	}
}

// Search runs the public listing search. Results are cached per parsed
// query until a listing changes or the TTL expires.
func (s *PropertyService) Search(ctx context.Context, values url.Values) (*models.ListResponse, error) {
	q := searchQuery(values)
	key := cache.PropertySearchKey(q.Key())

	var cached struct {
		models.ListResponse
		Data []models.Property `json:"data"`
	}
	if fromCache(ctx, s.cache, key, &cached) {
		cached.ListResponse.Data = cached.Data
		return &cached.ListResponse, nil
	}

	properties, total, err := s.properties.Find(ctx, q)
	if err != nil {
		return nil, err
	}
	if err := attachOwners(ctx, s.users, properties); err != nil {
		return nil, err
	}

	resp := listResponse(properties, len(properties), total, q.Page.Number, search.Pages(total, q.Page.Limit))
	toCache(ctx, s.cache, key, resp, s.searchTTL, listingTags(properties)...)
	return resp, nil
}

func searchQuery(values url.Values) search.Query {
	params := search.ParseParams(values)
	if len(params.Ignored) > 0 {
		logger.GlobalLogger.Debugf("ignoring unparseable search parameters: %v", params.Ignored)
	}
	return search.Query{
		Filter: search.Build(params),
		Page:   search.ParsePage(values, search.DefaultLimit),
		Sort:   search.ParseSort(values.Get("sort")),
	}
}

// Get returns one listing and counts the view.
func (s *PropertyService) Get(ctx context.Context, rawID string) (*models.Property, error) {
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}

	property, err := s.properties.IncrementViews(ctx, id)
	if err != nil {
		return nil, err
	}
	if property == nil {
		return nil, apperrors.NewNotFound("Property")
	}
	metrics.PropertyViewsTotal.Inc()

	one := []models.Property{*property}
	if err := attachOwners(ctx, s.users, one); err != nil {
		return nil, err
	}
	return &one[0], nil
}

// Featured lists featured active listings, newest first.
func (s *PropertyService) Featured(ctx context.Context, values url.Values) ([]models.Property, error) {
	limit := DefaultFeaturedLimit
	if n, err := strconv.Atoi(values.Get("limit")); err == nil && n > 0 {
		limit = n
	}
	if limit > search.MaxLimit {
		limit = search.MaxLimit
	}

	key := cache.FeaturedPropertiesKey(limit)
	var properties []models.Property
	if fromCache(ctx, s.cache, key, &properties) {
		return properties, nil
	}

	filter := search.Filter{}.
		With(search.Equal(search.FieldFeatured, true)).
		With(search.Equal(search.FieldStatus, models.StatusActive))
	properties, err := s.properties.FindAll(ctx, filter.BSON(), search.SortNewest.BSON(), int64(limit))
	if err != nil {
		return nil, err
	}
	if err := attachOwners(ctx, s.users, properties); err != nil {
		return nil, err
	}

	toCache(ctx, s.cache, key, properties, s.searchTTL, cache.TagListings)
	return properties, nil
}

// SimilarFilter matches active listings of the same type and city priced
// within SimilarPriceSpread of p, excluding p itself.
func SimilarFilter(p *models.Property) bson.D {
	spread := p.Price * SimilarPriceSpread
	low, high := p.Price-spread, p.Price+spread

	f := search.Filter{}.
		With(search.Equal(search.FieldPropertyType, p.PropertyType)).
		With(search.Equal(search.FieldCity, p.Location.City)).
		With(search.Range(search.FieldPrice, &low, &high)).
		With(search.Equal(search.FieldStatus, models.StatusActive))

	return append(f.BSON(), bson.E{Key: "_id", Value: bson.D{{Key: "$ne", Value: p.ID}}})
}

func (s *PropertyService) Similar(ctx context.Context, rawID string) ([]models.Property, error) {
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}

	key := cache.SimilarPropertiesKey(id.Hex())
	var similar []models.Property
	if fromCache(ctx, s.cache, key, &similar) {
		return similar, nil
	}

	property, err := s.properties.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if property == nil {
		return nil, apperrors.NewNotFound("Property")
	}

	similar, err = s.properties.FindAll(ctx, SimilarFilter(property), nil, SimilarLimit)
	if err != nil {
		return nil, err
	}
	if err := attachOwners(ctx, s.users, similar); err != nil {
		return nil, err
	}

	toCache(ctx, s.cache, key, similar, s.searchTTL, cache.TagListings, cache.PropertyTag(id.Hex()))
	return similar, nil
}

// Mine lists the caller's own listings, any status unless one is given.
func (s *PropertyService) Mine(ctx context.Context, caller *models.User, values url.Values) (*models.ListResponse, error) {
	return ownedListings(ctx, s.properties, caller.ID, values, search.MyPropertiesLimit)
}

func (s *PropertyService) Create(ctx context.Context, caller *models.User, in *validators.PropertyInput) (*models.Property, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	property := in.ToProperty(caller.ID)
	if err := s.properties.Create(ctx, property); err != nil {
		return nil, err
	}
	invalidate(ctx, s.cache, cache.TagListings)

	logger.GlobalLogger.Printf("property %s created by %s", property.ID.Hex(), caller.ID.Hex())
	return property, nil
}

// loadManaged fetches a listing the caller is allowed to change.
func (s *PropertyService) loadManaged(ctx context.Context, caller *models.User, rawID string) (*models.Property, error) {
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}
	property, err := s.properties.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if property == nil {
		return nil, apperrors.NewNotFound("Property")
	}
	if !canManage(caller, property.Owner) {
		return nil, apperrors.NewForbidden(apperrors.MsgNotOwner)
	}
	return property, nil
}

// Update replaces the editable fields of a listing owned by the caller
// (or any listing for an admin). The owner never changes.
func (s *PropertyService) Update(ctx context.Context, caller *models.User, rawID string, in *validators.PropertyInput) (*models.Property, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	property, err := s.loadManaged(ctx, caller, rawID)
	if err != nil {
		return nil, err
	}

	in.ApplyTo(property)
	if err := s.properties.Update(ctx, property); err != nil {
		return nil, err
	}
	invalidate(ctx, s.cache, cache.TagListings, cache.PropertyTag(property.ID.Hex()))
	return property, nil
}

func (s *PropertyService) Delete(ctx context.Context, caller *models.User, rawID string) error {
	property, err := s.loadManaged(ctx, caller, rawID)
	if err != nil {
		return err
	}

	deleted, err := s.properties.Delete(ctx, property.ID)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.NewNotFound("Property")
	}
	invalidate(ctx, s.cache, cache.TagListings, cache.PropertyTag(property.ID.Hex()))
	return nil
}

// PublicStats summarizes active listings for the home page.
func (s *PropertyService) PublicStats(ctx context.Context) (*stats.PublicSummary, error) {
	key := cache.PublicStatsKey()
	var summary stats.PublicSummary
	if fromCache(ctx, s.cache, key, &summary) {
		return &summary, nil
	}

	result, err := s.aggregator.PublicSummary(ctx)
	if err != nil {
		return nil, err
	}
	toCache(ctx, s.cache, key, result, s.statsTTL, cache.TagListings)
	return result, nil
}

// listingTags tags a cached result with the global listing tag and every listing in it.
func listingTags(properties []models.Property) []string {
	tags := make([]string, 0, len(properties)+1)
	tags = append(tags, cache.TagListings)
	for _, p := range properties {
		tags = append(tags, cache.PropertyTag(p.ID.Hex()))
	}
	return tags
}
