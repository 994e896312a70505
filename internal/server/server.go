package server

import (
	"net/http"

	"taskhub/backend/internal/config"
	"taskhub/backend/internal/handlers"
	"taskhub/backend/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter assembles the gin engine. All dependencies arrive constructed;
// nothing here reaches for globals.
func NewRouter(cfg *config.Config, taskHandler *handlers.TaskHandler, userHandler *handlers.UserHandler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(middleware.RecoveryWithLog())

	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders: []string{"Content-Type", "Authorization"},
	}))

	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerMin:  cfg.RateLimit.RequestsPerMin,
			BurstSize:       cfg.RateLimit.BurstSize,
			CleanupInterval: cfg.RateLimit.CleanupInterval,
		}))
	}

	// A recognized path with the wrong method answers 400, matching the
	// API's published contract rather than the usual 405.
	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Unsupported HTTP method"})
	})

	authed := router.Group("/", middleware.Identity(cfg.Auth.JWTSecret))
	{
		authed.POST("/tasks", taskHandler.CreateTask)
		authed.GET("/tasks", taskHandler.ListTasks)
		authed.GET("/tasks/:id", taskHandler.GetTask)
		authed.PUT("/tasks/:id", taskHandler.UpdateTask)
		authed.DELETE("/tasks/:id", taskHandler.DeleteTask)

		authed.GET("/users", userHandler.ListUsers)
	}

	return router
}
