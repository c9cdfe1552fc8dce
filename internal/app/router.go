package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"rentfleet/internal/config"
	"rentfleet/internal/domain"
	"rentfleet/internal/handler"
	"rentfleet/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	AuthHandler    *handler.AuthHandler
	UserHandler    *handler.UserHandler
	VehicleHandler *handler.VehicleHandler
	BookingHandler *handler.BookingHandler
	AuthConfig     config.AuthConfig
	RedisClient    *redis.Client
	NewRelicApp    *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	router.Use(middleware.IdempotencyMiddleware(deps.RedisClient))

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	adminOnly := middleware.Authenticate(deps.AuthConfig, domain.RoleAdmin)
	anyRole := middleware.Authenticate(deps.AuthConfig)

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// Auth routes.
		auth := v1.Group("/auth")
		{
			auth.POST("/signup", deps.AuthHandler.SignUp)
			auth.POST("/signin", deps.AuthHandler.SignIn)
		}

		// User routes.
		users := v1.Group("/users")
		{
			users.GET("", adminOnly, deps.UserHandler.GetAll)
			users.GET("/:id", anyRole, deps.UserHandler.Get)
			users.PUT("/:id", anyRole, deps.UserHandler.Update)
			users.DELETE("/:id", adminOnly, deps.UserHandler.Delete)
		}

		// Vehicle routes. Reads are public; writes are admin only.
		vehicles := v1.Group("/vehicles")
		{
			vehicles.GET("", deps.VehicleHandler.GetAll)
			vehicles.GET("/:id", deps.VehicleHandler.Get)
			vehicles.POST("", adminOnly, deps.VehicleHandler.Create)
			vehicles.PATCH("/:id", adminOnly, deps.VehicleHandler.Update)
			vehicles.DELETE("/:id", adminOnly, deps.VehicleHandler.Delete)
		}

		// Booking routes.
		bookings := v1.Group("/bookings")
		{
			bookings.POST("", anyRole, deps.BookingHandler.Create)
			bookings.GET("", anyRole, deps.BookingHandler.GetAll)
			bookings.PATCH("/:id/status", anyRole, deps.BookingHandler.UpdateStatus)
		}
	}

	return router
}
