package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "propertyhub-api/internal/errors"
	"propertyhub-api/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeAuth struct {
	users map[string]*models.User
}

func (f fakeAuth) Authenticate(_ context.Context, token string) (*models.User, error) {
	if u, ok := f.users[token]; ok {
		return u, nil
	}
	return nil, apperrors.NewUnauthorized(apperrors.MsgNotAuthorized)
}

func newRouter(production bool) *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), ErrorHandler(production))
	return r
}

func decode(t *testing.T, w *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestProtectAndRequireRoles(t *testing.T) {
	auth := fakeAuth{users: map[string]*models.User{
		"buyer-token": {Name: "Buyer", Role: models.RoleBuyer},
		"admin-token": {Name: "Admin", Role: models.RoleAdmin},
	}}
	r := newRouter(true)
	r.GET("/me", Protect(auth), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"name": CurrentUser(c).Name})
	})
	r.GET("/admin", Protect(auth), RequireRoles(models.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	tests := []struct {
		name   string
		path   string
		header string
		status int
	}{
		{name: "missing header", path: "/me", status: http.StatusUnauthorized},
		{name: "malformed header", path: "/me", header: "Token buyer-token", status: http.StatusUnauthorized},
		{name: "unknown token", path: "/me", header: "Bearer nope", status: http.StatusUnauthorized},
		{name: "valid token", path: "/me", header: "Bearer buyer-token", status: http.StatusOK},
		{name: "lowercase scheme", path: "/me", header: "bearer buyer-token", status: http.StatusOK},
		{name: "wrong role", path: "/admin", header: "Bearer buyer-token", status: http.StatusForbidden},
		{name: "admin role", path: "/admin", header: "Bearer admin-token", status: http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.status >= http.StatusBadRequest {
				assert.False(t, decode(t, w).Success)
			}
		})
	}
}

func TestErrorHandler_Envelope(t *testing.T) {
	validation := apperrors.NewValidationError([]models.FieldError{{Field: "title", Message: "title is required"}})

	t.Run("validation errors listed", func(t *testing.T) {
		r := newRouter(true)
		r.GET("/", func(c *gin.Context) { c.Error(validation) })

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		resp := decode(t, w)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, apperrors.ErrCodeValidation, resp.Code)
		require.Len(t, resp.Errors, 1)
		assert.Equal(t, "title", resp.Errors[0].Field)
		assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
	})

	t.Run("detail hidden in production", func(t *testing.T) {
		r := newRouter(true)
		r.GET("/", func(c *gin.Context) { c.Error(errors.New("socket closed")) })

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		resp := decode(t, w)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, apperrors.MsgInternalError, resp.Message)
		assert.Empty(t, resp.Error)
	})

	t.Run("detail shown in development", func(t *testing.T) {
		r := newRouter(false)
		r.GET("/", func(c *gin.Context) { c.Error(errors.New("socket closed")) })

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, "socket closed", decode(t, w).Error)
	})
}

func TestRateLimit(t *testing.T) {
	r := newRouter(true)
	r.Use(RateLimitMiddleware(NewRateLimiter(60, 2)))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRateLimit_WritesEnvelopeWithoutErrorHandler(t *testing.T) {
	for _, errorHandlerFirst := range []bool{true, false} {
		r := gin.New()
		if errorHandlerFirst {
			r.Use(ErrorHandler(true))
		}
		r.Use(RateLimitMiddleware(NewRateLimiter(60, 1)))
		if !errorHandlerFirst {
			r.Use(ErrorHandler(true))
		}
		r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

		first := httptest.NewRecorder()
		r.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusOK, first.Code)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusTooManyRequests, w.Code, "errorHandlerFirst=%v", errorHandlerFirst)

		body := decode(t, w)
		assert.False(t, body.Success)
		assert.Equal(t, apperrors.MsgRateLimited, body.Message)
		assert.Equal(t, apperrors.ErrCodeRateLimited, body.Code)
	}
}

func TestRequestID_PassThrough(t *testing.T) {
	r := newRouter(true)
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(RequestIDKey)) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Body.String())
}

func TestSecureHeaders(t *testing.T) {
	tests := []struct {
		name     string
		hsts     bool
		wantHSTS string
	}{
		{"production", true, "max-age=31536000; includeSubDomains"},
		{"development", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(SecureHeaders(tt.hsts))
			r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
			assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
			assert.Equal(t, tt.wantHSTS, w.Header().Get("Strict-Transport-Security"))
		})
	}
}
