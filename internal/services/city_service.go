package services

import (
	"context"
	"strings"
	"time"

	apperrors "propertyhub-api/internal/errors"
	"propertyhub-api/internal/models"
	"propertyhub-api/internal/repositories"
	"propertyhub-api/pkg/cache"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CityService struct {
	cities repositories.CityRepository
	cache  cache.Store
	ttl    time.Duration
}

func NewCityService(cities repositories.CityRepository, store cache.Store, ttl time.Duration) *CityService {
	return &CityService{cities: cities, cache: store, ttl: ttl}
}

// List returns active cities ordered by name.
func (s *CityService) List(ctx context.Context) ([]models.City, error) {
	key := cache.CityListKey()
	var cached []models.City
	if fromCache(ctx, s.cache, key, &cached) {
		return cached, nil
	}

	cities, err := s.cities.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	toCache(ctx, s.cache, key, cities, s.ttl, cache.TagCities)
	return cities, nil
}

// Get resolves identifier as an id first and then as a slug.
func (s *CityService) Get(ctx context.Context, identifier string) (*models.City, error) {
	key := cache.CityKey(identifier)
	var cached models.City
	if fromCache(ctx, s.cache, key, &cached) {
		return &cached, nil
	}

	city, err := s.resolve(ctx, identifier, false)
	if err != nil {
		return nil, err
	}
	toCache(ctx, s.cache, key, city, s.ttl, cache.TagCities)
	return city, nil
}

// Areas returns the popular areas of a city found by id, slug or name.
func (s *CityService) Areas(ctx context.Context, identifier string) ([]string, error) {
	city, err := s.resolve(ctx, identifier, true)
	if err != nil {
		return nil, err
	}
	if city.PopularAreas == nil {
		return []string{}, nil
	}
	return city.PopularAreas, nil
}

func (s *CityService) resolve(ctx context.Context, identifier string, byName bool) (*models.City, error) {
	identifier = strings.TrimSpace(identifier)
	var (
		city *models.City
		err  error
	)
	if id, idErr := primitive.ObjectIDFromHex(identifier); idErr == nil {
		if city, err = s.cities.FindByID(ctx, id); err != nil {
			return nil, err
		}
	}
	if city == nil {
		if city, err = s.cities.FindBySlug(ctx, identifier); err != nil {
			return nil, err
		}
	}
	if city == nil && byName {
		if city, err = s.cities.FindByName(ctx, identifier); err != nil {
			return nil, err
		}
	}
	if city == nil {
		return nil, apperrors.NewNotFound("City")
	}
	return city, nil
}

// Seed upserts the given cities by slug and returns how many were written.
func (s *CityService) Seed(ctx context.Context, cities []models.City) (int, error) {
	for i := range cities {
		city := cities[i]
		if city.Slug == "" {
			city.Slug = models.Slugify(city.Name)
		}
		if err := s.cities.Upsert(ctx, &city); err != nil {
			return i, err
		}
	}
	invalidate(ctx, s.cache, cache.TagCities)
	return len(cities), nil
}
