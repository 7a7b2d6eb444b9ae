package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/qnaweb/qna-web-app/src/cache"
	"github.com/qnaweb/qna-web-app/src/config"
	"github.com/qnaweb/qna-web-app/src/database"
	"github.com/qnaweb/qna-web-app/src/handlers"
	"github.com/qnaweb/qna-web-app/src/logging"
	"github.com/qnaweb/qna-web-app/src/middleware"
	"github.com/qnaweb/qna-web-app/src/repositories/postgres"
	"github.com/qnaweb/qna-web-app/src/services"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logging.Setup(logging.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	log.Info().
		Int("port", cfg.Port).
		Str("log_level", cfg.LogLevel).
		Msg("starting server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	db, err := database.New(ctx, cfg.DatabaseURL, database.PoolConfig{
		MaxConns: int32(cfg.DBMaxConns),
	})
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer db.Close()

	log.Info().Msg("database connected")

	// Censor cache is optional; without Redis every call goes upstream
	var censorCache *cache.RedisStore
	if cfg.RedisURL != "" {
		client, err := cache.Connect(context.Background(), cfg.RedisURL)
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable - censor cache disabled")
		} else {
			defer client.Close()
			censorCache = cache.NewRedisStore(client, "censor:")
			log.Info().Dur("ttl", cfg.CensorCacheTTL).Msg("censor cache enabled")
		}
	}

	accountRepo := postgres.NewAccountRepository(db.GetPool())
	questionRepo := postgres.NewQuestionRepository(db.GetPool())

	authService, err := services.NewAuthService(accountRepo, services.AuthConfig{
		JWTSecret: cfg.JWTSecret,
		Argon2: services.Argon2Params{
			Memory:      cfg.Argon2Memory,
			Iterations:  cfg.Argon2Iterations,
			Parallelism: cfg.Argon2Parallelism,
			SaltLength:  32,
			KeyLength:   32,
		},
		HashConcurrency: cfg.HashConcurrency,
		StoreTimeout:    cfg.StoreTimeout,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize auth service")
	}

	censorConfig := services.CensorConfig{
		BaseURL:  cfg.CensorBaseURL,
		APIKey:   cfg.CensorAPIKey,
		Timeout:  cfg.CensorTimeout,
		CacheTTL: cfg.CensorCacheTTL,
	}
	var censorService *services.CensorService
	if censorCache != nil {
		censorService = services.NewCensorService(censorConfig, censorCache)
	} else {
		censorService = services.NewCensorService(censorConfig, nil)
	}
	if !censorService.Enabled() {
		log.Warn().Msg("BAD_WORDS_API_KEY not configured - profanity filter disabled")
	}

	questionService, err := services.NewQuestionService(questionRepo, questionRepo, censorService, cfg.StoreTimeout)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize question service")
	}

	var healthHandler *handlers.HealthHandler
	if censorCache != nil {
		healthHandler = handlers.NewHealthHandler(db, censorCache)
	} else {
		healthHandler = handlers.NewHealthHandler(db, nil)
	}

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorRenderer())
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.NoRoute(middleware.NoRouteHandler())

	handlers.RegisterRoutes(router,
		handlers.NewAuthHandler(authService),
		handlers.NewQuestionHandler(questionService),
		healthHandler,
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Port).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	sig := <-sigChan

	log.Info().Str("signal", sig.String()).Msg("received shutdown signal")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown error")
	}

	log.Info().Msg("server shut down successfully")
}
