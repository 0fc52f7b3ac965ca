package router

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/vedawell/backend/config"
	"github.com/vedawell/backend/internal/api"
	"github.com/vedawell/backend/internal/middleware"
	"github.com/vedawell/backend/internal/recipeapi"
)

// SetupRouter builds the gin engine with middleware and all API routes.
func SetupRouter(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *gin.Engine {
	router := gin.Default()
	router.Use(middleware.CORS(cfg.AllowedOrigins))

	recipeClient := recipeapi.NewClient(cfg.RecipeAPIURL, cfg.RecipeAPIKey)
	api.RegisterRoutes(router, db, redisClient, recipeClient, cfg.JWTSecret)

	return router
}
