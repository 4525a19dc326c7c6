package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "propertyhub-api/internal/errors"
	"propertyhub-api/internal/middleware"
	"propertyhub-api/internal/models"
	"propertyhub-api/internal/repositories/mocks"
	"propertyhub-api/internal/services"
	"propertyhub-api/internal/stats"
	"propertyhub-api/pkg/cache"
	"propertyhub-api/pkg/config"
	"propertyhub-api/pkg/messaging"
	"propertyhub-api/pkg/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// asUser stands in for Protect in handler tests.
func asUser(user *models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserKey, user)
		c.Next()
	}
}

func newRouter(user *models.User) *gin.Engine {
	r := gin.New()
	r.Use(middleware.ErrorHandler(true))
	if user != nil {
		r.Use(asUser(user))
	}
	return r
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func jsonRequest(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestInquiryHandler_CreateInquiry(t *testing.T) {
	owner := &models.User{ID: primitive.NewObjectID(), Role: models.RoleSeller}
	listing := &models.Property{ID: primitive.NewObjectID(), Owner: owner.ID, Title: "House in DHA Phase 6"}
	body := `{"property":"` + listing.ID.Hex() + `","name":"Owner","email":"owner@example.com","phone":"+92 300 1234567","message":"Checking my own listing"}`

	t.Run("error: own listing", func(t *testing.T) {
		inquiries := mocks.NewInquiryRepository(t)
		properties := mocks.NewPropertyRepository(t)
		properties.On("FindByID", mock.Anything, listing.ID).Return(listing, nil)

		h := NewInquiryHandler(services.NewInquiryService(inquiries, properties, messaging.NoopPublisher{}))
		r := newRouter(owner)
		r.POST("/inquiries", h.CreateInquiry)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, jsonRequest(http.MethodPost, "/inquiries", body))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeError(t, w)
		assert.False(t, resp.Success)
		assert.Equal(t, apperrors.MsgOwnPropertyInquiry, resp.Message)
		inquiries.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("error: malformed body", func(t *testing.T) {
		h := NewInquiryHandler(services.NewInquiryService(mocks.NewInquiryRepository(t), mocks.NewPropertyRepository(t), messaging.NoopPublisher{}))
		r := newRouter(owner)
		r.POST("/inquiries", h.CreateInquiry)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, jsonRequest(http.MethodPost, "/inquiries", `{"property":`))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, apperrors.MsgInvalidBody, decodeError(t, w).Message)
	})
}

func TestAdminHandler_ToggleUserStatus(t *testing.T) {
	admin := &models.User{ID: primitive.NewObjectID(), Role: models.RoleAdmin, IsActive: true}
	seller := &models.User{ID: primitive.NewObjectID(), Role: models.RoleSeller, IsActive: true}

	tests := []struct {
		name       string
		target     *models.User
		setup      func(users *mocks.UserRepository)
		wantStatus int
		wantActive bool
	}{
		{
			name:   "deactivates another user",
			target: seller,
			setup: func(users *mocks.UserRepository) {
				users.On("FindByID", mock.Anything, seller.ID).Return(seller, nil)
				users.On("Update", mock.Anything, seller.ID, mock.Anything).
					Return(&models.User{ID: seller.ID, Role: models.RoleSeller, IsActive: false}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "error: own account",
			target: admin,
			setup: func(users *mocks.UserRepository) {
				users.On("FindByID", mock.Anything, admin.ID).Return(admin, nil)
			},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := mocks.NewUserRepository(t)
			properties := mocks.NewPropertyRepository(t)
			tt.setup(users)

			svc := services.NewAdminService(users, properties, stats.NewAggregator(properties, users), cache.NoopStore{})
			r := newRouter(admin)
			r.PATCH("/admin/users/:id/toggle-status", NewAdminHandler(svc).ToggleUserStatus)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/admin/users/"+tt.target.ID.Hex()+"/toggle-status", nil))

			require.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus != http.StatusOK {
				assert.Equal(t, apperrors.MsgSelfDeactivate, decodeError(t, w).Message)
				return
			}

			var resp struct {
				Success bool   `json:"success"`
				Message string `json:"message"`
				Data    struct {
					IsActive bool `json:"isActive"`
				} `json:"data"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.True(t, resp.Success)
			assert.Equal(t, "User deactivated successfully", resp.Message)
			assert.Equal(t, tt.wantActive, resp.Data.IsActive)
		})
	}
}

func multipartBody(t *testing.T, field string, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, content := range files {
		part, err := mw.CreateFormFile(field, name)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestUploadHandler_UploadImages(t *testing.T) {
	svc := services.NewUploadService(nil, config.UploadConfig{MaxFiles: 3, MaxFileSize: 16})
	user := &models.User{ID: primitive.NewObjectID(), Role: models.RoleAgent}

	t.Run("error: oversized file", func(t *testing.T) {
		r := newRouter(user)
		r.POST("/upload/images", NewUploadHandler(svc, 0).UploadImages)

		body, contentType := multipartBody(t, ImagesField, map[string][]byte{
			"huge.jpg": bytes.Repeat([]byte{0xff}, 64),
		})
		req := httptest.NewRequest(http.MethodPost, "/upload/images", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeError(t, w)
		assert.Equal(t, apperrors.MsgInvalidImages, resp.Message)
		require.Len(t, resp.Errors, 1)
		assert.Equal(t, "huge.jpg", resp.Errors[0].Field)
	})

	t.Run("error: no files", func(t *testing.T) {
		r := newRouter(user)
		r.POST("/upload/images", NewUploadHandler(svc, 0).UploadImages)

		body, contentType := multipartBody(t, "other", map[string][]byte{"a.jpg": {0xff}})
		req := httptest.NewRequest(http.MethodPost, "/upload/images", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, apperrors.MsgNoImages, decodeError(t, w).Message)
	})
}

type stubImages struct {
	deleted []string
}

func (s *stubImages) Upload(_ context.Context, filename string, r io.Reader) (*storage.UploadedImage, error) {
	if _, err := io.Copy(io.Discard, r); err != nil {
		return nil, err
	}
	return &storage.UploadedImage{URL: "https://res.cloudinary.com/demo/" + filename, PublicID: "propertyhub/" + filename}, nil
}

func (s *stubImages) Delete(_ context.Context, publicID string) error {
	s.deleted = append(s.deleted, publicID)
	return nil
}

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

func TestUploadHandler_UploadImage(t *testing.T) {
	user := &models.User{ID: primitive.NewObjectID(), Role: models.RoleSeller}
	svc := services.NewUploadService(&stubImages{}, config.UploadConfig{MaxFiles: 20, MaxFileSize: 1 << 10})

	t.Run("single file", func(t *testing.T) {
		r := newRouter(user)
		r.POST("/upload/image", NewUploadHandler(svc, 0).UploadImage)

		body, contentType := multipartBody(t, ImageField, map[string][]byte{"front.png": pngHeader})
		req := httptest.NewRequest(http.MethodPost, "/upload/image", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var resp struct {
			Success bool                  `json:"success"`
			Message string                `json:"message"`
			Data    storage.UploadedImage `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, "Image uploaded successfully", resp.Message)
		assert.Equal(t, "propertyhub/front.png", resp.Data.PublicID)
	})

	t.Run("error: batch field is not the single field", func(t *testing.T) {
		r := newRouter(user)
		r.POST("/upload/image", NewUploadHandler(svc, 0).UploadImage)

		body, contentType := multipartBody(t, ImagesField, map[string][]byte{"front.png": pngHeader})
		req := httptest.NewRequest(http.MethodPost, "/upload/image", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, apperrors.MsgNoImage, decodeError(t, w).Message)
	})
}

func TestUploadHandler_DeleteImageByBody(t *testing.T) {
	user := &models.User{ID: primitive.NewObjectID(), Role: models.RoleSeller}

	tests := []struct {
		name        string
		body        string
		wantStatus  int
		wantMessage string
		wantDeleted []string
	}{
		{"deletes", `{"publicId":"propertyhub/abc"}`, http.StatusOK, "Image deleted successfully", []string{"propertyhub/abc"}},
		{"error: missing id", `{}`, http.StatusBadRequest, apperrors.MsgMissingPublicID, nil},
		{"error: malformed body", `{"publicId":`, http.StatusBadRequest, apperrors.MsgInvalidBody, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			images := &stubImages{}
			svc := services.NewUploadService(images, config.UploadConfig{MaxFiles: 20, MaxFileSize: 1 << 10})
			r := newRouter(user)
			r.DELETE("/upload/image", NewUploadHandler(svc, 0).DeleteImageByBody)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, jsonRequest(http.MethodDelete, "/upload/image", tt.body))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantMessage)
			assert.Equal(t, tt.wantDeleted, images.deleted)
		})
	}
}

func TestHealthHandler(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	tests := []struct {
		name       string
		checks     map[string]Pinger
		wantStatus int
	}{
		{"all up", map[string]Pinger{"mongodb": ok, "redis": ok}, http.StatusOK},
		{"redis down", map[string]Pinger{"mongodb": ok, "redis": down}, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/health", NewHealthHandler(tt.checks).Health)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
