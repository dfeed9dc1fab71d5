package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/medusa-io/medusa-backend/internal/models"
)

// promptProcessor is the synchronous enhancement entry point.
type promptProcessor interface {
	Process(ctx context.Context, req *models.EnhancementRequest) *models.EnhancementResult
}

// jobProcessor is the media-generation pipeline entry point.
type jobProcessor interface {
	ProcessJob(ctx context.Context, prompt string) (string, error)
}

// Handler contains all HTTP handlers
type Handler struct {
	prompts       promptProcessor
	jobs          jobProcessor
	jobTimeout    time.Duration
	llmConfigured bool
}

// NewHandler creates a new handler
func NewHandler(prompts promptProcessor, jobs jobProcessor, jobTimeout time.Duration, llmConfigured bool) *Handler {
	if jobTimeout <= 0 {
		jobTimeout = 10 * time.Minute
	}
	return &Handler{
		prompts:       prompts,
		jobs:          jobs,
		jobTimeout:    jobTimeout,
		llmConfigured: llmConfigured,
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
