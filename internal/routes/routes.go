// Package routes defines HTTP routes for the auth service.
package routes

import (
	"log/slog"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/wasa-portal/auth-service/internal/apperrors"
	"github.com/wasa-portal/auth-service/internal/config"
	"github.com/wasa-portal/auth-service/internal/handlers"
	"github.com/wasa-portal/auth-service/internal/middleware"
	"github.com/wasa-portal/auth-service/internal/models"
	"github.com/wasa-portal/auth-service/internal/respond"
	"github.com/wasa-portal/auth-service/internal/service"
)

// Setup configures all HTTP routes for the application.
func Setup(
	router *gin.Engine,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	jwtService service.JWTService,
	redisClient *redis.Client,
	logger *slog.Logger,
) {
	router.Use(middleware.RequestLogger(logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Content-Type", "Authorization"},
	}))

	// Health check
	router.GET("/health", healthHandler.Check)
	// Metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	requireAdmin := []gin.HandlerFunc{
		middleware.RequireAuth(jwtService, logger),
		middleware.RequireRole(models.RoleAdmin),
	}
	rateLimited := middleware.RateLimit(redisClient, cfg.RateLimitMax, cfg.RateLimitWindow, logger)

	// Auth routes
	v1 := router.Group("/v1/api")
	{
		v1.POST("/login", rateLimited, authHandler.Login)
		v1.POST("/setup-admin", rateLimited, authHandler.SetupAdmin)
		v1.POST("/register-admin", append(requireAdmin, authHandler.RegisterAdmin)...)
		v1.POST("/register-supervisor", append(requireAdmin, authHandler.RegisterSupervisor)...)
		v1.GET("/users", append(requireAdmin, authHandler.ListUsers)...)
	}

	router.NoRoute(func(c *gin.Context) {
		respond.Error(c, apperrors.NotFound("Resource not found: "+c.Request.URL.Path))
	})
}
