package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"propertyhub-api/internal/middleware"
	"propertyhub-api/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// routes are registered without services behind them; only the table is inspected
func newRouteApp(t *testing.T) *App {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.Server.Env = "production"
	a := &App{
		Config:      cfg,
		Router:      gin.New(),
		RateLimiter: middleware.NewRateLimiter(6000, 100),
	}
	a.setupMiddleware()
	a.setupRoutes()
	return a
}

func TestSetupRoutes_ClientPaths(t *testing.T) {
	a := newRouteApp(t)

	registered := make(map[string]bool)
	for _, r := range a.Router.Routes() {
		registered[r.Method+" "+r.Path] = true
	}

	want := []string{
		"POST /api/auth/register",
		"POST /api/auth/login",
		"GET /api/auth/me",
		"PUT /api/auth/update-password",
		"PUT /api/auth/update-profile",
		"GET /api/properties",
		"GET /api/properties/featured",
		"GET /api/properties/stats",
		"GET /api/properties/user/my-properties",
		"GET /api/properties/:id",
		"GET /api/properties/:id/similar",
		"POST /api/properties",
		"PUT /api/properties/:id",
		"DELETE /api/properties/:id",
		"GET /api/users/profile",
		"PUT /api/users/profile",
		"GET /api/users/properties",
		"GET /api/users/favorites",
		"POST /api/users/favorites/:propertyId",
		"DELETE /api/users/favorites/:propertyId",
		"GET /api/cities",
		"GET /api/cities/:identifier",
		"GET /api/cities/:identifier/areas",
		"GET /api/agents",
		"GET /api/agents/:id",
		"GET /api/agents/:id/properties",
		"GET /api/agents/:id/stats",
		"PUT /api/agents/profile",
		"POST /api/inquiries",
		"GET /api/inquiries/sent",
		"GET /api/inquiries/received",
		"GET /api/inquiries/property/:propertyId",
		"PUT /api/inquiries/:id",
		"DELETE /api/inquiries/:id",
		"POST /api/upload/image",
		"POST /api/upload/images",
		"DELETE /api/upload/image",
		"GET /api/admin/users",
		"POST /api/admin/users",
		"GET /api/admin/users/:id",
		"PUT /api/admin/users/:id",
		"DELETE /api/admin/users/:id",
		"PATCH /api/admin/users/:id/status",
		"GET /api/admin/stats/dashboard",
		"GET /api/admin/stats/properties",
		"GET /api/admin/stats/agents",
		"GET /api/admin/stats/owners",
		"GET /api/admin/agents",
		"GET /api/admin/owners",
		"GET /api/admin/properties/:id",
		"GET /api/admin/properties",
		"PATCH /api/admin/properties/:id/status",
		"DELETE /api/admin/properties/:id",
	}
	for _, route := range want {
		assert.True(t, registered[route], "missing route %s", route)
	}
}

func TestSetupRoutes_ProtectedPathsNeedToken(t *testing.T) {
	a := newRouteApp(t)

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodPut, "/api/auth/update-password"},
		{http.MethodPut, "/api/auth/update-profile"},
		{http.MethodGet, "/api/properties/user/my-properties"},
		{http.MethodGet, "/api/users/properties"},
		{http.MethodPut, "/api/agents/profile"},
		{http.MethodPut, "/api/inquiries/64b7f0c2a1b2c3d4e5f60718"},
		{http.MethodPost, "/api/upload/image"},
		{http.MethodDelete, "/api/upload/image"},
		{http.MethodPatch, "/api/admin/users/64b7f0c2a1b2c3d4e5f60718/status"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			a.Router.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, strings.NewReader("{}")))

			require.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), `"success":false`)
		})
	}
}
