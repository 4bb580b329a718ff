package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"learnd/internal/adapter/repo"
	"learnd/internal/http/handlers"
	"learnd/internal/http/httpapi"
	"learnd/internal/infra"
	"learnd/internal/infra/geoip"
	"learnd/internal/infra/google"
	"learnd/internal/providers/normalize"
)

func main() {
	// .env is optional; real deployments use the environment directly.
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	pool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer pool.Close()

	runner := infra.NewSQLRunner(pool, logger)

	geoResolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip database unavailable, country tagging disabled")
	}

	app := &handlers.App{
		SQL:            runner,
		Logger:         logger,
		JWTSecret:      cfg.JWTSecret,
		GoogleVerifier: google.NewVerifier(cfg.GoogleIssuer, cfg.GoogleClientID),
		Users:          repo.NewUserRepository(runner),
		Lessons:        repo.NewLessonRepository(runner),
		Drafts:         repo.NewDraftRepository(runner),
		Usage:          repo.NewUsageRepository(runner),
		Templates:      repo.NewTemplateRepository(runner),
		Fields:         repo.NewCustomFieldRepository(runner),
		Normalizer:     buildNormalizer(cfg, logger),
	}

	router := httpapi.NewRouter(app, httpapi.RouterOptions{
		Logger:          logger,
		JWTSecret:       cfg.JWTSecret,
		CORSOrigins:     cfg.CORSOrigins,
		RateLimitPerMin: cfg.RateLimitPerMin,
		GeoResolver:     geoResolver,
	})

	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}

// buildNormalizer picks the AI provider from config, always chaining the
// deterministic matcher as the fallback.
func buildNormalizer(cfg *infra.Config, logger infra.Logger) normalize.Normalizer {
	static := normalize.NewStaticNormalizer()

	switch cfg.NormalizeProvider {
	case "gemini":
		n, err := normalize.NewGeminiNormalizer(normalize.GeminiOptions{
			APIKey:   cfg.GeminiAPIKey,
			Model:    cfg.GeminiModel,
			BaseURL:  cfg.GeminiBaseURL,
			Fallback: static,
		})
		if err != nil {
			logger.Warn().Err(err).Msg("gemini unavailable, using static normalizer")
			return static
		}
		return n
	case "openai":
		n, err := normalize.NewOpenAINormalizer(normalize.OpenAIOptions{
			APIKey:   cfg.OpenAIAPIKey,
			Model:    cfg.OpenAIModel,
			BaseURL:  cfg.OpenAIBaseURL,
			Fallback: static,
		})
		if err != nil {
			logger.Warn().Err(err).Msg("openai unavailable, using static normalizer")
			return static
		}
		return n
	default:
		return static
	}
}
