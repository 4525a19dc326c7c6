package mocks

import (
	"context"

	"propertyhub-api/internal/models"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InquiryRepository is a testify mock of repositories.InquiryRepository.
type InquiryRepository struct {
	mock.Mock
}

func (_m *InquiryRepository) Create(ctx context.Context, inquiry *models.Inquiry) error {
	ret := _m.Called(ctx, inquiry)
	return ret.Error(0)
}

func (_m *InquiryRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Inquiry, error) {
	ret := _m.Called(ctx, id)

	var r0 *models.Inquiry
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.Inquiry)
	}

	return r0, ret.Error(1)
}

func (_m *InquiryRepository) Find(ctx context.Context, filter bson.D, limit int64) ([]models.Inquiry, error) {
	ret := _m.Called(ctx, filter, limit)

	var r0 []models.Inquiry
	if v := ret.Get(0); v != nil {
		r0 = v.([]models.Inquiry)
	}

	return r0, ret.Error(1)
}

func (_m *InquiryRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Inquiry, error) {
	ret := _m.Called(ctx, id, status)

	var r0 *models.Inquiry
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.Inquiry)
	}

	return r0, ret.Error(1)
}

func (_m *InquiryRepository) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	ret := _m.Called(ctx, id)

	r0 := ret.Get(0).(bool)

	return r0, ret.Error(1)
}

func (_m *InquiryRepository) Count(ctx context.Context, filter bson.D) (int64, error) {
	ret := _m.Called(ctx, filter)

	r0 := ret.Get(0).(int64)

	return r0, ret.Error(1)
}

// NewInquiryRepository registers a cleanup that asserts every expectation was met.
func NewInquiryRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *InquiryRepository {
	m := &InquiryRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
