package mocks

import (
	"context"

	"propertyhub-api/internal/models"
	"propertyhub-api/internal/search"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// PropertyRepository is a testify mock of repositories.PropertyRepository.
type PropertyRepository struct {
	mock.Mock
}

func (_m *PropertyRepository) Find(ctx context.Context, q search.Query) ([]models.Property, int64, error) {
	ret := _m.Called(ctx, q)

	var r0 []models.Property
	if v := ret.Get(0); v != nil {
		r0 = v.([]models.Property)
	}

	r1 := ret.Get(1).(int64)

	return r0, r1, ret.Error(2)
}

func (_m *PropertyRepository) FindAll(ctx context.Context, filter bson.D, sort bson.D, limit int64) ([]models.Property, error) {
	ret := _m.Called(ctx, filter, sort, limit)

	var r0 []models.Property
	if v := ret.Get(0); v != nil {
		r0 = v.([]models.Property)
	}

	return r0, ret.Error(1)
}

func (_m *PropertyRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Property, error) {
	ret := _m.Called(ctx, id)

	var r0 *models.Property
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.Property)
	}

	return r0, ret.Error(1)
}

func (_m *PropertyRepository) IDsByOwner(ctx context.Context, owner primitive.ObjectID) ([]primitive.ObjectID, error) {
	ret := _m.Called(ctx, owner)

	var r0 []primitive.ObjectID
	if v := ret.Get(0); v != nil {
		r0 = v.([]primitive.ObjectID)
	}

	return r0, ret.Error(1)
}

func (_m *PropertyRepository) IncrementViews(ctx context.Context, id primitive.ObjectID) (*models.Property, error) {
	ret := _m.Called(ctx, id)

	var r0 *models.Property
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.Property)
	}

	return r0, ret.Error(1)
}

func (_m *PropertyRepository) Create(ctx context.Context, property *models.Property) error {
	ret := _m.Called(ctx, property)
	return ret.Error(0)
}

func (_m *PropertyRepository) InsertMany(ctx context.Context, properties []models.Property) (int, error) {
	ret := _m.Called(ctx, properties)

	r0 := ret.Get(0).(int)

	return r0, ret.Error(1)
}

func (_m *PropertyRepository) Update(ctx context.Context, property *models.Property) error {
	ret := _m.Called(ctx, property)
	return ret.Error(0)
}

func (_m *PropertyRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Property, error) {
	ret := _m.Called(ctx, id, status)

	var r0 *models.Property
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.Property)
	}

	return r0, ret.Error(1)
}

func (_m *PropertyRepository) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	ret := _m.Called(ctx, id)

	r0 := ret.Get(0).(bool)

	return r0, ret.Error(1)
}

func (_m *PropertyRepository) DeleteAll(ctx context.Context) (int64, error) {
	ret := _m.Called(ctx)

	r0 := ret.Get(0).(int64)

	return r0, ret.Error(1)
}

func (_m *PropertyRepository) Count(ctx context.Context, filter bson.D) (int64, error) {
	ret := _m.Called(ctx, filter)

	r0 := ret.Get(0).(int64)

	return r0, ret.Error(1)
}

func (_m *PropertyRepository) Aggregate(ctx context.Context, pipeline mongo.Pipeline, out interface{}) error {
	ret := _m.Called(ctx, pipeline, out)
	return ret.Error(0)
}

func (_m *PropertyRepository) Recent(ctx context.Context, limit int64) ([]models.Property, error) {
	ret := _m.Called(ctx, limit)

	var r0 []models.Property
	if v := ret.Get(0); v != nil {
		r0 = v.([]models.Property)
	}

	return r0, ret.Error(1)
}

// NewPropertyRepository registers a cleanup that asserts every expectation was met.
func NewPropertyRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *PropertyRepository {
	m := &PropertyRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
