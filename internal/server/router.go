// Package server exposes the planner over HTTP.
package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RouterConfig wires the handlers into the router.
type RouterConfig struct {
	UserHandler     *UserHandler
	ProgressHandler *ProgressHandler
	ReviewHandler   *ReviewHandler
	AdvisorHandler  *AdvisorHandler
	Log             *zap.Logger
}

// NewRouter builds the gin engine with all API routes.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.Log != nil {
		router.Use(requestLogger(cfg.Log))
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:8501"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", HealthCheck)

	api := router.Group("/api")
	{
		api.POST("/register", cfg.UserHandler.Register)
		api.POST("/login", cfg.UserHandler.Login)
		api.GET("/rank", cfg.ReviewHandler.RankList)

		users := api.Group("/users/:id")
		{
			users.GET("", cfg.UserHandler.Get)
			users.DELETE("", cfg.UserHandler.Delete)
			users.GET("/options", cfg.UserHandler.Options)
			users.GET("/roadmap", cfg.UserHandler.Roadmap)

			users.POST("/progress", cfg.ProgressHandler.Update)
			users.GET("/warning", cfg.ProgressHandler.Warning)

			users.POST("/review", cfg.ReviewHandler.Record)
			users.POST("/like", cfg.ReviewHandler.AddLike)

			users.POST("/recommend", cfg.AdvisorHandler.Recommend)
			users.DELETE("/recommend", cfg.AdvisorHandler.ResetSession)
			users.POST("/match", cfg.AdvisorHandler.Match)
		}
	}

	return router
}
