package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"chef-finokio/internal/api/handlers/health"
	"chef-finokio/internal/api/middleware"
	"chef-finokio/internal/core/ai"
	"chef-finokio/internal/core/favorites"
	"chef-finokio/internal/core/session"
	"chef-finokio/internal/infrastructure/config"
	"chef-finokio/internal/pkg/common"

	favoritesHandler "chef-finokio/internal/api/handlers/favorites"
	generationHandler "chef-finokio/internal/api/handlers/generation"
	sessionHandler "chef-finokio/internal/api/handlers/session"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// timeoutDuration bounds a single request including the generative
// round trip.
const timeoutDuration = 120 * time.Second

// SetupRouter wires the middleware chain and the API routes.
func SetupRouter(cfg *config.Config, manager *session.Manager, gateway *ai.Gateway, favStore *favorites.Store) (*gin.Engine, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	if manager == nil || gateway == nil || favStore == nil {
		return nil, fmt.Errorf("router requires session manager, gateway and favorites store")
	}

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.BodySizeLimit(cfg.Server.MaxBodyBytes))

	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}
	router.Use(middleware.Deduplication(cfg))

	// Request timeout plus context injection for the health endpoint.
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)

		c.Set("config", cfg)
		c.Set("session_manager", manager)

		c.Next()

		if ctx.Err() == context.DeadlineExceeded {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetHeader("X-Request-ID")),
				zap.Duration("timeout", timeoutDuration),
			)
			c.AbortWithStatusJSON(http.StatusGatewayTimeout, gin.H{
				"error": "Request timeout",
				"code":  common.ErrCodeGatewayTimeout,
				"details": gin.H{
					"timeout": timeoutDuration.String(),
				},
			})
		}
	})

	router.GET("/health", health.HealthCheck)
	router.GET("/ready", health.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)

	api := router.Group("/api/v1")
	{
		sessions := sessionHandler.NewHandler(manager, favStore)
		generations := generationHandler.NewHandler(cfg, manager, gateway)
		favs := favoritesHandler.NewHandler(manager, favStore)

		api.GET("/favorites", favs.List)
		api.GET("/wizard/options", generations.Options)

		sessionGroup := api.Group("/sessions")
		{
			sessionGroup.POST("", sessions.Create)
			sessionGroup.GET("/:id", sessions.Get)
			sessionGroup.POST("/:id/meal-type", sessions.SetMealType)
			sessionGroup.POST("/:id/navigate", sessions.Navigate)
			sessionGroup.POST("/:id/back", sessions.Back)
			sessionGroup.POST("/:id/reset", sessions.Reset)
			sessionGroup.POST("/:id/select", sessions.Select)
			sessionGroup.POST("/:id/ingredients/toggle", sessions.ToggleIngredient)
			sessionGroup.POST("/:id/ingredients/hold", sessions.HoldIngredient)
			sessionGroup.GET("/:id/share-link", sessions.ShareLink)

			sessionGroup.POST("/:id/favorites/toggle", favs.Toggle)

			sessionGroup.POST("/:id/generate", generations.Generate)
			sessionGroup.POST("/:id/wizard/option", generations.WizardOption)
			sessionGroup.POST("/:id/variant", generations.Variant)
			sessionGroup.POST("/:id/remix", generations.Remix)
			sessionGroup.POST("/:id/slot/spin", generations.SlotSpin)
			sessionGroup.POST("/:id/narrate", generations.Narrate)
			sessionGroup.GET("/:id/audio", generations.Audio)
			sessionGroup.POST("/:id/sommelier", generations.Sommelier)
		}
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
		zap.Bool("rate_limit_enabled", cfg.RateLimit.Enabled),
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", cfg.Server.MaxBodyBytes),
	)

	return router, nil
}
