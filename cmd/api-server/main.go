package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"foodreview/database"
	"foodreview/internal/config"
	"foodreview/internal/logging"
	"foodreview/internal/microservices/http-api/handler"
	"foodreview/internal/microservices/http-api/middleware"
	"foodreview/internal/microservices/http-api/repository"
	"foodreview/internal/microservices/http-api/server"
	"foodreview/internal/microservices/http-api/service"
	"foodreview/internal/microservices/websocket"
	"foodreview/internal/monitoring"

	"github.com/rs/zerolog/log"
)

func main() {
	// 1️⃣ Load config
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel, cfg.LogFormat, cfg.GoEnv)
	monitoring.Init()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2️⃣ Connect to the stores
	mongoClient, mongoDB, err := database.ConnectMongo(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("mongo unavailable")
	}
	defer mongoClient.Disconnect(context.Background())

	pg, err := database.ConnectPostgres(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("postgres unavailable")
	}
	defer database.ClosePostgres(pg)

	// the cache is optional, reads fall through to mongo without it
	var cache repository.ReviewCache = repository.NoopReviewCache{}
	if redisClient, err := database.ConnectRedis(ctx, cfg); err != nil {
		log.Warn().Err(err).Msg("redis unavailable, review cache disabled")
	} else {
		defer redisClient.Close()
		cache = repository.NewRedisReviewCache(redisClient, cfg.CacheExpiry())
	}

	// 3️⃣ Wire repositories, services and handlers
	reviewRepo := repository.NewReviewRepository(mongoDB)
	userRepo := repository.NewUserRepository(pg)
	complaintRepo := repository.NewComplaintRepository(pg)
	refreshTokenRepo := repository.NewRefreshTokenRepository(pg)

	authService := service.NewAuthService(userRepo, refreshTokenRepo, cfg)
	complaintService := service.NewComplaintService(complaintRepo)

	hub := websocket.NewHub()
	go hub.Run(ctx)
	events := service.WithEvents(hub)
	reviewService := service.NewReviewService(reviewRepo, cache, events)

	handlers := server.Handlers{
		Reviews: handler.NewFoodReviewHandler(
			reviewService,
			service.NewReactionService(reviewRepo, cache, events),
			service.NewReportService(reviewRepo, cache, events),
			service.NewCommentService(reviewRepo, cache, events),
		),
		Complaints: handler.NewComplaintHandler(complaintService),
		Auth:       handler.NewAuthHandler(authService),
		Admin: handler.NewAdminHandler(
			service.NewAdminService(reviewRepo, cache, userRepo, complaintRepo, events),
			complaintService,
		),
		Live: websocket.LiveHandler(hub, reviewService, websocket.NewUpgrader(cfg.CORSOrigins)),
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	go sweepLimiter(ctx, limiter)
	go purgeRefreshTokens(ctx, refreshTokenRepo)

	handler.SetRequestTimeout(cfg.RequestTimeout)
	router := server.NewRouter(cfg, handlers, authService, limiter)

	// 4️⃣ Serve until signalled
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("🚀 foodreview API listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func sweepLimiter(ctx context.Context, limiter *middleware.RateLimiter) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			limiter.Sweep(now)
		}
	}
}

// purgeRefreshTokens drops expired refresh tokens once an hour.
func purgeRefreshTokens(ctx context.Context, tokens repository.RefreshTokenRepository) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			n, err := tokens.DeleteExpired(ctx, now)
			if err != nil {
				log.Warn().Err(err).Msg("refresh token purge failed")
				continue
			}
			if n > 0 {
				log.Info().Int64("count", n).Msg("purged expired refresh tokens")
			}
		}
	}
}
