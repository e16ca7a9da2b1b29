package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/jengzang/heart-risk-backend-go/internal/config"
	"github.com/jengzang/heart-risk-backend-go/internal/handler"
	"github.com/jengzang/heart-risk-backend-go/internal/middleware"
)

// Deps are the components the router is wired from.
// Tokens may be nil when auth is disabled and Limiter may be nil to skip rate limiting.
type Deps struct {
	Predictions *handler.PredictionHandler
	Tokens      middleware.TokenValidator
	Limiter     *middleware.RateLimiter
}

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config, deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger())
	r.Use(cors.New(corsConfig(cfg)))

	// 健康检查
	r.GET("/health", deps.Predictions.Health)

	// API 路由组
	api := r.Group("/api/v1")
	if deps.Limiter != nil {
		api.Use(deps.Limiter.Middleware())
	}
	if cfg.AuthEnabled && deps.Tokens != nil {
		api.Use(middleware.RequireAuth(deps.Tokens))
	}
	{
		api.GET("/schema", deps.Predictions.GetSchema)
		api.POST("/features/encode", deps.Predictions.Encode)

		predictions := api.Group("/predictions")
		{
			predictions.POST("", deps.Predictions.Predict)
			predictions.GET("", deps.Predictions.GetPredictions)
			predictions.GET("/stats", deps.Predictions.GetStats)
			predictions.GET("/:id", deps.Predictions.GetPredictionByID)
		}
	}

	return r
}

func corsConfig(cfg *config.Config) cors.Config {
	c := cors.DefaultConfig()
	c.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	c.AllowHeaders = []string{"Content-Type", "Authorization"}

	origins := cfg.AllowOrigins()
	for _, o := range origins {
		if o == "*" {
			origins = nil
			break
		}
	}
	if len(origins) == 0 {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
		c.AllowCredentials = true
	}
	return c
}
