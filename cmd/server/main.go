package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/AnshRaj112/feedbackhub-backend/internal/ai"
	"github.com/AnshRaj112/feedbackhub-backend/internal/catalog"
	"github.com/AnshRaj112/feedbackhub-backend/internal/config"
	"github.com/AnshRaj112/feedbackhub-backend/internal/database"
	"github.com/AnshRaj112/feedbackhub-backend/internal/llm"
	"github.com/AnshRaj112/feedbackhub-backend/internal/logging"
	"github.com/AnshRaj112/feedbackhub-backend/internal/middleware"
	"github.com/AnshRaj112/feedbackhub-backend/internal/routes"
	"github.com/AnshRaj112/feedbackhub-backend/internal/services"
	"github.com/AnshRaj112/feedbackhub-backend/internal/store"
	"github.com/AnshRaj112/feedbackhub-backend/internal/supervisor"
	"github.com/AnshRaj112/feedbackhub-backend/internal/telemetry"
)

func main() {
	// A missing .env is normal outside local development.
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Caller: cfg.LogCaller,
	})
	if envErr != nil {
		logging.Debug().Msg("No .env file found")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.OTLPEndpoint, cfg.ServiceName)
	if err != nil {
		logging.Warn().Err(err).Msg("Tracing disabled")
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logging.Warn().Err(err).Msg("Failed to flush traces")
		}
	}()

	// Redis is optional: without it recommendations are not cached and the
	// submission limiter is skipped.
	var (
		cache         services.Cache = services.NoopCache{}
		submitLimiter *middleware.SubmissionLimiter
		redisClient   *redis.Client
	)
	if cfg.RedisURI != "" {
		redisClient, err = database.ConnectRedis(ctx, cfg.RedisURI)
		if err != nil {
			logging.Warn().Err(err).Msg("Redis unavailable, running without cache")
		} else {
			defer redisClient.Close()
			cache = services.NewRedisCache(redisClient)
			submitLimiter = middleware.NewSubmissionLimiter(redisClient, cfg.SubmitLimit)
		}
	}

	var images catalog.ImageResolver
	if cfg.CloudinaryEnabled() {
		cld, err := catalog.NewCloudinaryImages(cfg.CloudinaryName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret,
			cfg.CloudinaryFolder, catalog.DefaultPlaceholderImage)
		if err != nil {
			logging.Warn().Err(err).Msg("Cloudinary unavailable, using placeholder images")
		} else {
			images = cld
		}
	}
	cat, err := catalog.Load(cfg.CatalogFile, images)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load product catalog")
	}

	model, err := llm.NewFromConfig(ctx, cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to configure LLM provider")
	}
	if c, ok := model.(io.Closer); ok {
		defer c.Close()
	}
	if model.Name() == (llm.Disabled{}).Name() {
		logging.Warn().Str("provider", cfg.LLMProvider).Msg("No LLM configured, using keyword analysis and catalog recommendations")
	} else {
		logging.Info().Str("provider", model.Name()).Msg("LLM provider configured")
	}

	st := store.NewMemory()
	if cfg.SeedDemoData {
		if err := store.Seed(ctx, st, store.DemoFeedback(time.Now().UTC())); err != nil {
			logging.Fatal().Err(err).Msg("Failed to seed demo feedback")
		}
		logging.Info().Int("count", st.Count(ctx)).Msg("Seeded demo feedback")
	}

	bus := services.NewEventBus()
	defer bus.Close()
	hub := services.NewLiveHub(bus)

	feedback := services.NewFeedbackService(st, ai.NewService(model, cat), cache, bus, cfg.CacheTTL)

	var ipLimiter *middleware.IPLimiter
	if cfg.IsProduction() {
		ipLimiter = middleware.NewIPLimiter(ctx, cfg.RateLimitPerMinute, 20)
	}

	router := routes.NewRouter(routes.Deps{
		Config:        cfg,
		Feedback:      feedback,
		Hub:           hub,
		SubmitLimiter: submitLimiter,
		IPLimiter:     ipLimiter,
		LLMName:       model.Name(),
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		// Covers the slowest path: translate, analyse and recommend in one request.
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  10 * time.Second,
	})
	tree.AddMessagingService(hub)
	tree.AddAPIService(supervisor.NewHTTPServerService(server, 10*time.Second))

	logging.Info().
		Str("port", cfg.Port).
		Str("env", cfg.Environment).
		Bool("redis", redisClient != nil).
		Msg("FeedbackHub backend starting")

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor stopped with error")
	}
	if report, err := tree.UnstoppedServiceReport(); err == nil && len(report) > 0 {
		logging.Warn().Int("count", len(report)).Msg("Some services did not stop in time")
	}
	logging.Info().Msg("Server stopped")
}
