package api

import (
	"math/rand"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/vedawell/backend/internal/middleware"
	"github.com/vedawell/backend/internal/recipeapi"
	"github.com/vedawell/backend/internal/service"
)

// HealthCheck reports API, database and cache status.
func HealthCheck(db *gorm.DB, redisClient *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := gin.H{
			"status":   "healthy",
			"database": "ok",
			"cache":    "ok",
		}
		code := http.StatusOK

		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			status["database"] = "unavailable"
			status["status"] = "degraded"
			code = http.StatusServiceUnavailable
		}

		if redisClient == nil {
			status["cache"] = "disabled"
		} else if err := redisClient.Ping(c.Request.Context()).Err(); err != nil {
			status["cache"] = "unavailable"
			status["status"] = "degraded"
		}

		c.JSON(code, status)
	}
}

// RegisterRoutes wires services and handlers onto the router.
func RegisterRoutes(router *gin.Engine, db *gorm.DB, redisClient *redis.Client, recipeClient *recipeapi.Client, jwtSecret string) {
	router.GET("/health", HealthCheck(db, redisClient))

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	authService := service.NewAuthService(db, jwtSecret)
	intakeService := service.NewIntakeService(db)
	mealSearch := service.NewMealSearch(recipeClient, rng)
	chartService := service.NewDietChartService(db, redisClient, mealSearch, rng)
	consultationService := service.NewConsultationService(db)
	assistant := service.NewAssistant(recipeClient)

	authHandler := NewAuthHandler(authService)
	intakeHandler := NewIntakeHandler(intakeService)
	chartHandler := NewDietChartHandler(chartService, intakeService, db)
	consultationHandler := NewConsultationHandler(consultationService)
	assistantHandler := NewAssistantHandler(assistant, intakeService)

	v1 := router.Group("/api/v1")
	authHandler.RegisterRoutes(v1)

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authService))
	{
		intakeHandler.RegisterRoutes(protected)
		chartHandler.RegisterRoutes(protected)
		consultationHandler.RegisterRoutes(protected)
		assistantHandler.RegisterRoutes(protected)
	}
}
