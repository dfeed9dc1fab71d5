package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/medusa-io/medusa-backend/internal/config"
	"github.com/medusa-io/medusa-backend/internal/handlers"
	"github.com/medusa-io/medusa-backend/internal/llm"
	"github.com/medusa-io/medusa-backend/internal/media"
	"github.com/medusa-io/medusa-backend/internal/orchestrator"
	"github.com/medusa-io/medusa-backend/internal/search"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg := config.Load()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	log.Info().Msg("Starting Medusa API")

	// Missing credentials degrade per request rather than preventing startup;
	// /health reports the gap.
	if err := cfg.Validate(); err != nil {
		log.Warn().Err(err).Msg("Incomplete configuration, some endpoints will return degraded results")
	}

	ctx := context.Background()

	llmClient := llm.NewClient(cfg.GeminiAPIKey, cfg.GeminiModelText)

	var searchClient *search.Client
	if backend, err := search.NewGoogleSearcher(ctx, cfg.SearchAPIKey, cfg.SearchEngineID); err != nil {
		log.Warn().Err(err).Msg("Reference search disabled")
		searchClient = search.NewClient(nil, cfg.SearchCacheTTL, cfg.SearchRatePerSecond)
	} else {
		searchClient = search.NewClient(backend, cfg.SearchCacheTTL, cfg.SearchRatePerSecond)
	}

	var imageGen *media.ImageClient
	var videoGen *media.VideoClient
	if cfg.GeminiAPIKey != "" {
		imageGen, err = media.NewImageClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModelImage)
		if err != nil {
			log.Error().Err(err).Msg("Failed to initialize image generation client")
		}
		videoGen, err = media.NewVideoClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModelVideo, cfg.PollInterval, cfg.MaxPollAttempts)
		if err != nil {
			log.Error().Err(err).Msg("Failed to initialize video generation client")
		}
	}

	var coordinator *orchestrator.Coordinator
	if imageGen != nil && videoGen != nil {
		coordinator = orchestrator.New(llmClient, searchClient, imageGen, videoGen, cfg.ReferenceImageCount, cfg.MaxPromptChars)
	} else {
		log.Warn().Msg("Media generation unavailable, /api/generate will report errors")
		coordinator = orchestrator.New(llmClient, searchClient, nil, nil, cfg.ReferenceImageCount, cfg.MaxPromptChars)
	}

	h := handlers.NewHandler(coordinator, coordinator, cfg.JobTimeout, llmClient.Available())

	r := mux.NewRouter()
	r.HandleFunc("/health", h.Health).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/generate-prompt", h.GeneratePrompt).Methods("POST")
	api.HandleFunc("/generate", h.Generate).Methods("POST")
	api.HandleFunc("/status/{request_id}", h.Status).Methods("GET")

	srv := &http.Server{
		Addr:        cfg.HTTPAddr,
		Handler:     r,
		ReadTimeout: 15 * time.Second,
		// The job pipeline polls video generation inside the request, so the
		// write timeout must outlast the job deadline.
		WriteTimeout: cfg.JobTimeout + 30*time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down API...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server shutdown error")
	}
	log.Info().Msg("API exited")
}
