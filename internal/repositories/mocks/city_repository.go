package mocks

import (
	"context"

	"propertyhub-api/internal/models"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CityRepository is a testify mock of repositories.CityRepository.
type CityRepository struct {
	mock.Mock
}

func (_m *CityRepository) FindActive(ctx context.Context) ([]models.City, error) {
	ret := _m.Called(ctx)

	var r0 []models.City
	if v := ret.Get(0); v != nil {
		r0 = v.([]models.City)
	}

	return r0, ret.Error(1)
}

func (_m *CityRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.City, error) {
	ret := _m.Called(ctx, id)

	var r0 *models.City
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.City)
	}

	return r0, ret.Error(1)
}

func (_m *CityRepository) FindBySlug(ctx context.Context, slug string) (*models.City, error) {
	ret := _m.Called(ctx, slug)

	var r0 *models.City
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.City)
	}

	return r0, ret.Error(1)
}

func (_m *CityRepository) FindByName(ctx context.Context, name string) (*models.City, error) {
	ret := _m.Called(ctx, name)

	var r0 *models.City
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.City)
	}

	return r0, ret.Error(1)
}

func (_m *CityRepository) Upsert(ctx context.Context, city *models.City) error {
	ret := _m.Called(ctx, city)
	return ret.Error(0)
}

func (_m *CityRepository) DeleteAll(ctx context.Context) (int64, error) {
	ret := _m.Called(ctx)

	r0 := ret.Get(0).(int64)

	return r0, ret.Error(1)
}

// NewCityRepository registers a cleanup that asserts every expectation was met.
func NewCityRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *CityRepository {
	m := &CityRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
