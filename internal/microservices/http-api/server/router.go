package server

import (
	"net/http"
	"time"

	"foodreview/internal/config"
	"foodreview/internal/logging"
	"foodreview/internal/microservices/http-api/handler"
	"foodreview/internal/microservices/http-api/middleware"
	"foodreview/internal/monitoring"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Reviews    *handler.FoodReviewHandler
	Complaints *handler.ComplaintHandler
	Auth       *handler.AuthHandler
	Admin      *handler.AdminHandler
	Live       gin.HandlerFunc // optional websocket feed, GET /api/foodreviews/:id/live
}

// NewRouter builds the gin engine with the shared middleware chain.
func NewRouter(cfg *config.Config, h Handlers, validator middleware.TokenValidator, limiter *middleware.RateLimiter) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(logging.RequestLogger())
	r.Use(monitoring.MetricsMiddleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.UserIDHeader, middleware.RequestIDHeader},
		ExposeHeaders:    []string{"X-Total-Count", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if cfg.PrometheusEnabled {
		r.GET("/metrics", monitoring.GinHandler())
	}

	limit := limiter.Middleware()
	api := r.Group("/api")
	api.Use(middleware.Identity(validator))
	{
		reviews := api.Group("/foodreviews")
		h.Reviews.RegisterRoutes(reviews, limit)
		if h.Live != nil {
			reviews.GET("/:id/live", h.Live)
		}
		h.Complaints.RegisterRoutes(api.Group("/complaints"), limit)
		h.Auth.RegisterRoutes(api.Group("/auth"), limit)

		admin := api.Group("/admin")
		admin.Use(middleware.RequireAuth(), middleware.RequireAdmin())
		h.Admin.RegisterRoutes(admin)
	}

	return r
}
