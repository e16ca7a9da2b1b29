package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/jengzang/heart-risk-backend-go/internal/api"
	"github.com/jengzang/heart-risk-backend-go/internal/auth"
	"github.com/jengzang/heart-risk-backend-go/internal/config"
	"github.com/jengzang/heart-risk-backend-go/internal/database"
	"github.com/jengzang/heart-risk-backend-go/internal/handler"
	"github.com/jengzang/heart-risk-backend-go/internal/inference"
	"github.com/jengzang/heart-risk-backend-go/internal/middleware"
	"github.com/jengzang/heart-risk-backend-go/internal/repository"
	"github.com/jengzang/heart-risk-backend-go/internal/service"
	"github.com/jengzang/heart-risk-backend-go/pkg/logger"
)

func main() {
	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	logger.Init(cfg.AppName, cfg.LogLevel)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// 加载模型
	bundle, err := inference.LoadBundle(cfg.ArtifactPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load model artifacts")
	}

	// 初始化数据库
	var store service.PredictionStore
	if cfg.HistoryEnabled {
		if err := database.Init(database.Config{Path: cfg.DBPath}); err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize database")
		}
		defer database.Close()
		store = repository.NewPredictionRepository(database.GetDB())
	} else {
		log.Warn().Msg("Prediction history disabled")
	}

	deps := api.Deps{
		Predictions: handler.NewPredictionHandler(service.NewPredictionService(bundle, store)),
	}
	if cfg.RateLimitRequests > 0 {
		deps.Limiter = middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow())
		defer deps.Limiter.Stop()
	}
	if cfg.AuthEnabled {
		tokens, err := auth.NewJWTService(cfg.JWTSecret, cfg.JWTTTL())
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize auth")
		}
		deps.Tokens = tokens
	}

	// 初始化路由
	server := &http.Server{
		Addr:              cfg.Port,
		Handler:           api.SetupRouter(cfg, deps),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// 启动服务器
	if err := run(server); err != nil {
		log.Error().Err(err).Msg("Server stopped with error")
	}
}

func run(server *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", server.Addr).Msg("Server starting")
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT)

	select {
	case sig := <-stop:
		log.Info().Str("signal", sig.String()).Msg("Shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(ctx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
