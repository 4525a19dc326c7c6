package main

import (
	"net/http"
	_ "net/http/pprof"

	_ "propertyhub-api/docs"
	"propertyhub-api/internal/middleware"
	"propertyhub-api/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// setupRoutes configures all routes
func (a *App) setupRoutes() {
	a.setupStaticRoutes()
	a.Router.GET("/health", a.HealthHandler.Health)
	a.setupAPIRoutes()
	a.Router.NoRoute(middleware.NotFound())
}

// setupStaticRoutes configures documentation, profiling and metrics
func (a *App) setupStaticRoutes() {
	// Serve Swagger UI
	a.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Expose pprof profiling endpoints (disable in production)
	if !a.Config.IsProduction() {
		a.Router.GET("/debug/pprof/*any", gin.WrapH(http.DefaultServeMux))
	}

	// Expose Prometheus metrics endpoint
	a.Router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// setupAPIRoutes configures API routes
func (a *App) setupAPIRoutes() {
	protect := middleware.Protect(a.UserService)
	adminOnly := middleware.RequireRoles(models.RoleAdmin)
	agentOnly := middleware.RequireRoles(models.RoleAgent)

	api := a.Router.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", a.UserHandler.Register)
		auth.POST("/login", a.UserHandler.Login)
		auth.GET("/me", protect, a.UserHandler.Me)
		auth.PUT("/update-password", protect, a.UserHandler.ChangePassword)
		auth.PUT("/update-profile", protect, a.UserHandler.UpdateProfile)
		auth.PUT("/password", protect, a.UserHandler.ChangePassword)
	}

	properties := api.Group("/properties")
	{
		properties.GET("", a.PropertyHandler.GetProperties)
		properties.GET("/featured", a.PropertyHandler.GetFeatured)
		properties.GET("/stats", a.PropertyHandler.GetStats)
		properties.GET("/user/my-properties", protect, a.PropertyHandler.GetMyProperties)
		properties.GET("/my-properties", protect, a.PropertyHandler.GetMyProperties)
		properties.GET("/:id", a.PropertyHandler.GetPropertyByID)
		properties.GET("/:id/similar", a.PropertyHandler.GetSimilar)
		properties.POST("", protect, a.PropertyHandler.CreateProperty)
		properties.PUT("/:id", protect, a.PropertyHandler.UpdateProperty)
		properties.DELETE("/:id", protect, a.PropertyHandler.DeleteProperty)
	}

	users := api.Group("/users", protect)
	{
		users.GET("/profile", a.UserHandler.GetProfile)
		users.PUT("/profile", a.UserHandler.UpdateProfile)
		users.GET("/properties", a.PropertyHandler.GetMyProperties)
		users.GET("/favorites", a.UserHandler.GetFavorites)
		users.POST("/favorites/:propertyId", a.UserHandler.AddFavorite)
		users.DELETE("/favorites/:propertyId", a.UserHandler.RemoveFavorite)
	}

	cities := api.Group("/cities")
	{
		cities.GET("", a.CityHandler.GetCities)
		cities.GET("/:identifier", a.CityHandler.GetCity)
		cities.GET("/:identifier/areas", a.CityHandler.GetCityAreas)
		cities.POST("/seed", protect, adminOnly, a.CityHandler.SeedCities)
	}

	agents := api.Group("/agents")
	{
		agents.GET("", a.AgentHandler.GetAgents)
		agents.PUT("/profile", protect, a.AgentHandler.UpdateProfile)
		agents.GET("/me/stats", protect, agentOnly, a.AgentHandler.GetMyStats)
		agents.PUT("/me/profile", protect, agentOnly, a.AgentHandler.UpdateProfile)
		agents.GET("/:id", a.AgentHandler.GetAgent)
		agents.GET("/:id/properties", a.AgentHandler.GetAgentProperties)
		agents.GET("/:id/stats", a.AgentHandler.GetAgentStats)
	}

	inquiries := api.Group("/inquiries", protect)
	{
		inquiries.POST("", a.InquiryHandler.CreateInquiry)
		inquiries.GET("/sent", a.InquiryHandler.GetSent)
		inquiries.GET("/received", a.InquiryHandler.GetReceived)
		inquiries.GET("/property/:propertyId", a.InquiryHandler.GetForProperty)
		inquiries.PUT("/:id", a.InquiryHandler.UpdateStatus)
		inquiries.PUT("/:id/status", a.InquiryHandler.UpdateStatus)
		inquiries.DELETE("/:id", a.InquiryHandler.DeleteInquiry)
	}

	upload := api.Group("/upload", protect)
	{
		upload.POST("/image", a.UploadHandler.UploadImage)
		upload.POST("/images", a.UploadHandler.UploadImages)
		upload.DELETE("/image", a.UploadHandler.DeleteImageByBody)
		upload.DELETE("/images/*publicId", a.UploadHandler.DeleteImage)
	}

	admin := api.Group("/admin", protect, adminOnly)
	{
		admin.GET("/stats/dashboard", a.AdminHandler.GetDashboard)
		admin.GET("/stats/properties", a.AdminHandler.GetPropertyStats)
		admin.GET("/stats/agents", a.AdminHandler.GetAgentStats)
		admin.GET("/stats/owners", a.AdminHandler.GetOwnerStats)

		admin.GET("/users", a.AdminHandler.GetUsers)
		admin.POST("/users", a.AdminHandler.CreateUser)
		admin.GET("/users/:id", a.AdminHandler.GetUser)
		admin.PUT("/users/:id", a.AdminHandler.UpdateUser)
		admin.DELETE("/users/:id", a.AdminHandler.DeleteUser)
		admin.PATCH("/users/:id/status", a.AdminHandler.ToggleUserStatus)
		admin.PATCH("/users/:id/toggle-status", a.AdminHandler.ToggleUserStatus)
		admin.GET("/users/:id/properties", a.AdminHandler.GetUserProperties)

		admin.GET("/agents", a.AdminHandler.GetAgents)
		admin.GET("/owners", a.AdminHandler.GetOwners)

		admin.GET("/properties", a.AdminHandler.GetProperties)
		admin.GET("/properties/:id", a.AdminHandler.GetUserProperties)
		admin.PATCH("/properties/:id/status", a.AdminHandler.UpdatePropertyStatus)
		admin.DELETE("/properties/:id", a.AdminHandler.DeleteProperty)
	}
}
