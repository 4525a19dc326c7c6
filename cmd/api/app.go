package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"propertyhub-api/internal/handlers"
	"propertyhub-api/internal/middleware"
	"propertyhub-api/internal/repositories"
	"propertyhub-api/internal/seed"
	"propertyhub-api/internal/services"
	"propertyhub-api/internal/stats"
	"propertyhub-api/pkg/cache"
	"propertyhub-api/pkg/config"
	"propertyhub-api/pkg/database"
	"propertyhub-api/pkg/logger"
	"propertyhub-api/pkg/messaging"
	"propertyhub-api/pkg/metrics"
	"propertyhub-api/pkg/storage"

	"github.com/gin-gonic/gin"
)

// rate limiter visitors idle this long are forgotten
const (
	visitorCleanupInterval = time.Minute
	visitorIdleTimeout     = 3 * time.Minute
)

// uploads get this much room on top of the files themselves
const multipartOverhead = 1 << 20

// App represents the application structure
type App struct {
	Config *config.Config
	Router *gin.Engine
	Server *http.Server

	Cache       cache.Store
	Images      storage.ImageStore
	Publisher   messaging.Publisher
	RateLimiter *middleware.RateLimiter

	UserService *services.UserService

	PropertyHandler *handlers.PropertyHandler
	UserHandler     *handlers.UserHandler
	CityHandler     *handlers.CityHandler
	AgentHandler    *handlers.AgentHandler
	InquiryHandler  *handlers.InquiryHandler
	UploadHandler   *handlers.UploadHandler
	AdminHandler    *handlers.AdminHandler
	HealthHandler   *handlers.HealthHandler

	// stops background workers on shutdown
	stop context.CancelFunc
}

// Create and initialize a new App instance
func NewApp(cfg *config.Config) *App {
	app := &App{Config: cfg}

	// Initialize infrastructure
	app.initializeDatabase()
	app.initializeCache()
	app.initializeMetrics()
	app.initializeStorage()
	app.initializeMessaging()
	app.initializeRateLimiter()

	// Initialize business logic
	app.initializeDependencies()

	// Initialize web layer
	app.initializeRouter()

	return app
}

// initialize the database connection and indexes
func (a *App) initializeDatabase() {
	if err := database.InitDB(a.Config); err != nil {
		logger.GlobalLogger.Errorf("Failed to initialize database: %v", err)
		os.Exit(1)
	}
	if err := database.Current().EnsureIndexes(context.Background()); err != nil {
		logger.GlobalLogger.Warnf("Index creation failed, continuing without: %v", err)
	}
}

// initialize the Redis cache; the API keeps serving from MongoDB without it
func (a *App) initializeCache() {
	if err := cache.InitRedis(a.Config.Redis); err != nil {
		logger.GlobalLogger.Warnf("Redis unavailable, caching disabled: %v", err)
		a.Cache = cache.NoopStore{}
		return
	}
	a.Cache = cache.NewRedisStore(cache.RedisClient)
}

// initialize Prometheus metrics
func (a *App) initializeMetrics() {
	metrics.Init()
}

func (a *App) initializeStorage() {
	images, err := storage.NewCloudinaryStore(a.Config.Cloudinary)
	if err != nil {
		logger.GlobalLogger.Errorf("Failed to initialize image storage: %v", err)
		os.Exit(1)
	}
	a.Images = images
}

// initialize the event publisher; without a broker URL events are dropped
func (a *App) initializeMessaging() {
	if a.Config.RabbitMQ.URL == "" {
		a.Publisher = messaging.NoopPublisher{}
		return
	}
	publisher, err := messaging.NewRabbitPublisher(a.Config.RabbitMQ)
	if err != nil {
		logger.GlobalLogger.Warnf("RabbitMQ unavailable, inquiry events disabled: %v", err)
		a.Publisher = messaging.NoopPublisher{}
		return
	}
	a.Publisher = publisher
}

// initialize the rate limiter and its cleanup worker
func (a *App) initializeRateLimiter() {
	ctx, cancel := context.WithCancel(context.Background())
	a.stop = cancel

	a.RateLimiter = middleware.NewRateLimiter(a.Config.RateLimit.RequestsPerMinute, a.Config.RateLimit.Burst)
	go a.RateLimiter.Cleanup(ctx, visitorCleanupInterval, visitorIdleTimeout)
}

// initialize all dependencies
func (a *App) initializeDependencies() {
	// repositories
	propertyRepo := repositories.NewPropertyRepository(database.DB)
	userRepo := repositories.NewUserRepository(database.DB)
	inquiryRepo := repositories.NewInquiryRepository(database.DB)
	cityRepo := repositories.NewCityRepository(database.DB)

	aggregator := stats.NewAggregator(propertyRepo, userRepo)

	// services
	propertyService := services.NewPropertyService(propertyRepo, userRepo, aggregator, a.Cache, a.Config.Redis.SearchTTL, a.Config.Redis.StatsTTL)
	a.UserService = services.NewUserService(userRepo, propertyRepo, a.Config.JWT)
	cityService := services.NewCityService(cityRepo, a.Cache, a.Config.Redis.StatsTTL)
	agentService := services.NewAgentService(userRepo, propertyRepo, inquiryRepo)
	inquiryService := services.NewInquiryService(inquiryRepo, propertyRepo, a.Publisher)
	uploadService := services.NewUploadService(a.Images, a.Config.Upload)
	adminService := services.NewAdminService(userRepo, propertyRepo, aggregator, a.Cache)

	// handlers
	a.PropertyHandler = handlers.NewPropertyHandler(propertyService)
	a.UserHandler = handlers.NewUserHandler(a.UserService)
	a.CityHandler = handlers.NewCityHandler(cityService, seed.Cities())
	a.AgentHandler = handlers.NewAgentHandler(agentService)
	a.InquiryHandler = handlers.NewInquiryHandler(inquiryService)
	a.UploadHandler = handlers.NewUploadHandler(uploadService,
		int64(a.Config.Upload.MaxFiles)*a.Config.Upload.MaxFileSize+multipartOverhead)
	a.AdminHandler = handlers.NewAdminHandler(adminService)
	a.HealthHandler = handlers.NewHealthHandler(a.healthChecks())
}

// Redis is only checked when it is actually in use
func (a *App) healthChecks() map[string]handlers.Pinger {
	checks := map[string]handlers.Pinger{"mongodb": database.Ping}
	if _, ok := a.Cache.(*cache.RedisStore); ok {
		checks["redis"] = cache.Ping
	}
	return checks
}

// set up the Gin router with middleware and routes
func (a *App) initializeRouter() {
	if a.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	a.Router = gin.New()
	a.setupMiddleware()
	a.setupRoutes()
}

// cleanup operations
func (a *App) cleanup() {
	if a.stop != nil {
		a.stop()
	}
	if err := a.Publisher.Close(); err != nil {
		logger.GlobalLogger.Errorf("Error closing publisher: %v", err)
	}
	database.CloseDB()
	cache.CloseRedis()
	_ = logger.GlobalLogger.Sync()
}
