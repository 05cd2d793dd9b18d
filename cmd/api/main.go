// Package main is the entry point for the auth service.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/wasa-portal/auth-service/internal/config"
	"github.com/wasa-portal/auth-service/internal/database"
	"github.com/wasa-portal/auth-service/internal/handlers"
	"github.com/wasa-portal/auth-service/internal/logging"
	"github.com/wasa-portal/auth-service/internal/repository"
	"github.com/wasa-portal/auth-service/internal/routes"
	"github.com/wasa-portal/auth-service/internal/service"
	"github.com/wasa-portal/auth-service/pkg/redis"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Optional .env for local development; real deployments set the
	// environment directly.
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}

	logger := logging.Setup("auth-service", cfg.Environment, nil)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize database
	db, err := database.Connect(ctx, cfg, logger)
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	// Initialize Redis
	redisClient, err := redis.NewClient(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to connect to Redis: ", err)
	}

	// Initialize repository
	userRepo := repository.NewUserRepository(db)

	// Initialize services
	jwtService, err := service.NewJWTService(cfg.JWTSecret, cfg.JWTExpiry)
	if err != nil {
		log.Fatal("Failed to create JWT service: ", err)
	}
	hasher := service.NewPasswordHasher()
	authService := service.NewAuthService(userRepo, jwtService, hasher, logger)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, cfg.SetupKey, logger)
	healthHandler := handlers.NewHealthHandler()

	// Setup router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	// Setup routes
	routes.Setup(router, cfg, authHandler, healthHandler, jwtService, redisClient, logger)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: router,
	}

	go func() {
		logger.Info("starting auth service", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server: ", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", "error", err)
	}

	if err := database.Close(db); err != nil {
		logger.Error("database close failed", "error", err)
	}
	if err := redisClient.Close(); err != nil {
		logger.Error("redis close failed", "error", err)
	}
	logger.Info("auth service stopped")
}
