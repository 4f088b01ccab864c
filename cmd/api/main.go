package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"pubgoods/internal/http/handlers"
	"pubgoods/internal/http/httpapi"
	"pubgoods/internal/identity"
	"pubgoods/internal/infra"
	"pubgoods/internal/infra/geoip"
	"pubgoods/internal/middleware"
	"pubgoods/internal/providers/summary"
	"pubgoods/internal/storage"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()

	store, err := storage.NewFileStore(cfg.StoragePath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize file store")
	}

	idClient, err := identity.NewHTTPClient(identity.Options{
		BaseURL:    cfg.AuthBaseURL,
		ServiceKey: cfg.AuthServiceKey,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize identity client")
	}

	var lookup middleware.CountryLookup
	resolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip lookups disabled")
	} else if resolver != nil {
		defer resolver.Close()
		lookup = resolver.CountryCode
	}

	app := &handlers.App{
		SQL:        infra.NewSQLRunner(dbpool, logger),
		Logger:     logger,
		Config:     cfg,
		Identity:   idClient,
		Store:      store,
		Summarizer: buildSummarizer(cfg, logger),
	}

	router := httpapi.NewRouter(app, lookup)
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

// buildSummarizer picks the configured provider and chains the static
// summarizer behind it so the endpoint keeps answering when the provider is
// down or unconfigured.
func buildSummarizer(cfg *infra.Config, logger zerolog.Logger) summary.Summarizer {
	static := summary.NewStaticSummarizer()
	onFallback := func(reason string, err error) {
		logger.Warn().Err(err).Str("reason", reason).Msg("summary provider fell back")
	}

	switch cfg.SummaryProvider {
	case "openai":
		s, err := summary.NewOpenAISummarizer(summary.OpenAIOptions{
			APIKey:     cfg.OpenAIAPIKey,
			Model:      cfg.OpenAIModel,
			BaseURL:    cfg.OpenAIBaseURL,
			Org:        cfg.OpenAIOrg,
			Fallback:   static,
			OnFallback: onFallback,
		})
		if err != nil {
			logger.Warn().Err(err).Msg("openai summarizer unavailable, using static summaries")
			return static
		}
		return s
	case "gemini":
		s, err := summary.NewGeminiSummarizer(summary.GeminiOptions{
			APIKey:     cfg.GeminiAPIKey,
			Model:      cfg.GeminiModel,
			BaseURL:    cfg.GeminiBaseURL,
			Fallback:   static,
			OnFallback: onFallback,
		})
		if err != nil {
			logger.Warn().Err(err).Msg("gemini summarizer unavailable, using static summaries")
			return static
		}
		return s
	default:
		return static
	}
}
