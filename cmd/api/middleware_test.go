package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "propertyhub-api/internal/errors"
	"propertyhub-api/internal/middleware"
	"propertyhub-api/internal/models"
	"propertyhub-api/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupMiddleware_RateLimitedRequestGetsEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.Server.Env = "production"
	a := &App{
		Config:      cfg,
		Router:      gin.New(),
		RateLimiter: middleware.NewRateLimiter(60, 1),
	}
	a.setupMiddleware()
	a.Router.GET("/api/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	first := httptest.NewRecorder()
	a.Router.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/api/ping", nil))
	require.Equal(t, http.StatusOK, first.Code)

	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/ping", nil))
	require.Equal(t, http.StatusTooManyRequests, w.Code)

	var body models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, apperrors.MsgRateLimited, body.Message)
	assert.Equal(t, apperrors.ErrCodeRateLimited, body.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}
