package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chef-finokio/internal/api"
	"chef-finokio/internal/core/ai"
	"chef-finokio/internal/core/ai/cache"
	"chef-finokio/internal/core/ai/gemini"
	"chef-finokio/internal/core/favorites"
	"chef-finokio/internal/core/session"
	"chef-finokio/internal/infrastructure/config"
	"chef-finokio/internal/pkg/common"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Logger needs the config, so it comes second.
	if err := common.InitLogger(cfg.LogLevel); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	common.LogInfo("starting application",
		zap.String("version", cfg.App.Version),
		zap.String("env", cfg.App.Env),
		zap.String("text_model", cfg.Gemini.TextModel),
		zap.String("speech_model", cfg.Gemini.SpeechModel),
	)

	cacheManager := cache.NewManager(cfg)
	if cfg.Cache.Enabled && cacheManager == nil {
		common.LogFatal("Failed to initialize cache manager")
	}
	defer cacheManager.Close()

	gateway := ai.NewGateway(cfg, gemini.NewClient(cfg), cacheManager)

	sessionManager := session.NewManager(cfg)
	defer sessionManager.Close()

	favoritesStore := favorites.NewStore(cfg)
	defer favoritesStore.Close()

	router, err := api.SetupRouter(cfg, sessionManager, gateway, favoritesStore)
	if err != nil {
		common.LogError("Failed to setup router", zap.Error(err))
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		common.LogInfo("server listening",
			zap.Int("port", cfg.Server.Port),
			zap.Bool("debug", cfg.App.Debug),
		)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			common.LogError("Failed to start server",
				zap.Error(err),
			)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	common.LogInfo("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		common.LogError("Server forced to shutdown",
			zap.Error(err),
		)
		os.Exit(1)
	}

	common.LogInfo("Server exited")
}
