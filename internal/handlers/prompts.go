package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/medusa-io/medusa-backend/internal/models"
)

// GeneratePrompt handles POST /api/generate-prompt
func (h *Handler) GeneratePrompt(w http.ResponseWriter, r *http.Request) {
	var req models.GeneratePromptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	prompt := req.Prompt
	if prompt == "" {
		prompt = req.Description
	}
	if prompt == "" {
		writeJSONError(w, http.StatusBadRequest, "request must include either 'prompt' or 'description'")
		return
	}

	mode := req.Mode
	if mode == "" {
		mode = models.ModeImage
	}
	if mode != models.ModeImage && mode != models.ModeVideo {
		writeJSONError(w, http.StatusBadRequest, "mode must be 'image' or 'video'")
		return
	}

	var influences *models.Influences
	if req.Genre != "" || req.Reference != "" || req.Style != "" {
		influences = &models.Influences{
			Genre:     req.Genre,
			Reference: req.Reference,
			Style:     req.Style,
		}
	}

	log.Info().
		Str("mode", mode).
		Bool("has_influences", influences != nil).
		Msg("Processing enhancement request")

	result := h.prompts.Process(r.Context(), &models.EnhancementRequest{
		OriginalPrompt: prompt,
		Mode:           mode,
		Influences:     influences,
	})

	// Degraded results still return 200 with the error field populated so
	// clients can distinguish them from transport failures.
	writeJSON(w, http.StatusOK, result)
}

// Generate handles POST /api/generate (media-generation job pipeline)
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.New().String()[:8]

	var req models.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Prompt == "" {
		writeJSONError(w, http.StatusBadRequest, "prompt is required")
		return
	}

	log.Info().Str("request_id", requestID).Msg("Starting generation job")
	start := time.Now()

	ctx, cancel := context.WithTimeout(r.Context(), h.jobTimeout)
	defer cancel()

	url, err := h.jobs.ProcessJob(ctx, req.Prompt)
	if err != nil {
		log.Error().Err(err).Str("request_id", requestID).Msg("Generation job failed")
		writeJSON(w, http.StatusOK, models.GenerateResponse{
			Status:    "error",
			Message:   err.Error(),
			RequestID: requestID,
		})
		return
	}

	elapsed := time.Since(start).Seconds()
	log.Info().
		Str("request_id", requestID).
		Float64("processing_time", elapsed).
		Msg("Generation job complete")

	writeJSON(w, http.StatusOK, models.GenerateResponse{
		Status:         "success",
		Result:         url,
		RequestID:      requestID,
		ProcessingTime: elapsed,
	})
}

// Status handles GET /api/status/{request_id}. Jobs are processed within the
// request, so this reports a static in-progress probe for compatibility.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"request_id": vars["request_id"],
		"status":     "processing",
		"progress":   50,
	})
}

// Health handles GET /health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":         "healthy",
		"llm_configured": h.llmConfigured,
	})
}
