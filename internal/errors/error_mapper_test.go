package errors

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"propertyhub-api/internal/models"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestMapError(t *testing.T) {
	_, hexErr := primitive.ObjectIDFromHex("nope")

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"app error passes through", NewForbidden("no"), http.StatusForbidden, ErrCodeForbidden},
		{"wrapped app error", fmt.Errorf("ctx: %w", NewNotFound("Property")), http.StatusNotFound, ErrCodePropertyNotFound},
		{"no documents", fmt.Errorf("find: %w", mongo.ErrNoDocuments), http.StatusNotFound, ErrCodeNotFound},
		{"invalid hex", hexErr, http.StatusBadRequest, ErrCodeInvalidID},
		{"deadline", context.DeadlineExceeded, http.StatusServiceUnavailable, ErrCodeServiceUnavailable},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError, ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			assert.Equal(t, tt.wantStatus, got.HTTPStatus)
			assert.Equal(t, tt.wantCode, got.Code)
		})
	}

	assert.Nil(t, MapError(nil))
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError([]models.FieldError{{Field: "title", Message: "required"}})

	assert.Equal(t, http.StatusBadRequest, err.HTTPStatus)
	assert.Equal(t, MsgValidationFailed, err.Error())
	assert.Len(t, err.Fields, 1)
}
