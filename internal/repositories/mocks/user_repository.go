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

// UserRepository is a testify mock of repositories.UserRepository.
type UserRepository struct {
	mock.Mock
}

func (_m *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	ret := _m.Called(ctx, id)

	var r0 *models.User
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.User)
	}

	return r0, ret.Error(1)
}

func (_m *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	ret := _m.Called(ctx, email)

	var r0 *models.User
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.User)
	}

	return r0, ret.Error(1)
}

func (_m *UserRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	ret := _m.Called(ctx, ids)

	var r0 []models.User
	if v := ret.Get(0); v != nil {
		r0 = v.([]models.User)
	}

	return r0, ret.Error(1)
}

func (_m *UserRepository) FindByRoles(ctx context.Context, roles []string) ([]models.User, error) {
	ret := _m.Called(ctx, roles)

	var r0 []models.User
	if v := ret.Get(0); v != nil {
		r0 = v.([]models.User)
	}

	return r0, ret.Error(1)
}

func (_m *UserRepository) List(ctx context.Context, filter bson.D, page search.Page) ([]models.User, int64, error) {
	ret := _m.Called(ctx, filter, page)

	var r0 []models.User
	if v := ret.Get(0); v != nil {
		r0 = v.([]models.User)
	}

	r1 := ret.Get(1).(int64)

	return r0, r1, ret.Error(2)
}

func (_m *UserRepository) Create(ctx context.Context, user *models.User) error {
	ret := _m.Called(ctx, user)
	return ret.Error(0)
}

func (_m *UserRepository) Update(ctx context.Context, id primitive.ObjectID, fields bson.D) (*models.User, error) {
	ret := _m.Called(ctx, id, fields)

	var r0 *models.User
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.User)
	}

	return r0, ret.Error(1)
}

func (_m *UserRepository) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	ret := _m.Called(ctx, id)

	r0 := ret.Get(0).(bool)

	return r0, ret.Error(1)
}

func (_m *UserRepository) AddSaved(ctx context.Context, userID primitive.ObjectID, propertyID primitive.ObjectID) (bool, error) {
	ret := _m.Called(ctx, userID, propertyID)

	r0 := ret.Get(0).(bool)

	return r0, ret.Error(1)
}

func (_m *UserRepository) RemoveSaved(ctx context.Context, userID primitive.ObjectID, propertyID primitive.ObjectID) (bool, error) {
	ret := _m.Called(ctx, userID, propertyID)

	r0 := ret.Get(0).(bool)

	return r0, ret.Error(1)
}

func (_m *UserRepository) Count(ctx context.Context, filter bson.D) (int64, error) {
	ret := _m.Called(ctx, filter)

	r0 := ret.Get(0).(int64)

	return r0, ret.Error(1)
}

func (_m *UserRepository) Aggregate(ctx context.Context, pipeline mongo.Pipeline, out interface{}) error {
	ret := _m.Called(ctx, pipeline, out)
	return ret.Error(0)
}

func (_m *UserRepository) Recent(ctx context.Context, limit int64) ([]models.User, error) {
	ret := _m.Called(ctx, limit)

	var r0 []models.User
	if v := ret.Get(0); v != nil {
		r0 = v.([]models.User)
	}

	return r0, ret.Error(1)
}

// NewUserRepository registers a cleanup that asserts every expectation was met.
func NewUserRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *UserRepository {
	m := &UserRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
