package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds application configuration
type Config struct {
	// Server
	HTTPAddr string
	LogLevel string

	// Gemini API (completion + media generation)
	GeminiAPIKey     string
	GeminiModelText  string // prompt enhancement, e.g. gemini-2.5-flash-lite
	GeminiModelImage string // image generation, e.g. gemini-3-pro-image-preview
	GeminiModelVideo string // video generation, e.g. veo-3.0-generate-001

	// Google Custom Search (reference images)
	SearchAPIKey   string
	SearchEngineID string

	// Enhancement
	ReferenceImageCount int           // images fetched per enhancement request
	MaxPromptChars      int           // soft output length guidance passed to the model
	SearchCacheTTL      time.Duration // reference search result cache TTL
	SearchRatePerSecond float64       // outbound search rate limit

	// Job pipeline
	JobTimeout      time.Duration // overall deadline for one /api/generate request
	PollInterval    time.Duration // video operation poll interval
	MaxPollAttempts int           // video operation poll bound
}

// Load loads configuration from environment variables. A .env file in the
// working directory is applied first when present.
func Load() *Config {
	if err := godotenv.Load(); err == nil {
		log.Info().Msg("Loaded environment from .env")
	}

	return &Config{
		HTTPAddr: getEnv("HTTP_ADDR", ":8000"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		GeminiAPIKey:     getEnv("GEMINI_API_KEY", ""),
		GeminiModelText:  getEnv("GEMINI_MODEL_TEXT", "gemini-2.5-flash-lite"),
		GeminiModelImage: getEnv("GEMINI_MODEL_IMAGE", "gemini-3-pro-image-preview"),
		GeminiModelVideo: getEnv("GEMINI_MODEL_VIDEO", "veo-3.0-generate-001"),

		SearchAPIKey:   getEnv("SEARCH_API_KEY", ""),
		SearchEngineID: getEnv("SEARCH_ENGINE_ID", ""),

		ReferenceImageCount: getEnvInt("REFERENCE_IMAGE_COUNT", 3),
		MaxPromptChars:      getEnvInt("MAX_PROMPT_CHARS", 512),
		SearchCacheTTL:      getEnvDuration("SEARCH_CACHE_TTL", 10*time.Minute),
		SearchRatePerSecond: getEnvFloat("SEARCH_RATE_PER_SECOND", 5),

		JobTimeout:      getEnvDuration("JOB_TIMEOUT", 10*time.Minute),
		PollInterval:    getEnvDuration("POLL_INTERVAL", 5*time.Second),
		MaxPollAttempts: clampMin(getEnvInt("MAX_POLL_ATTEMPTS", 60), 1),
	}
}

// Validate reports missing credentials. The process still starts without
// them (health reports the gap), but requests that need the missing service
// will fail.
func (c *Config) Validate() error {
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is not set")
	}
	if c.SearchAPIKey == "" || c.SearchEngineID == "" {
		return fmt.Errorf("SEARCH_API_KEY and SEARCH_ENGINE_ID must both be set")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// clampMin returns v if v >= min, otherwise min. Used to ensure config values are in valid range.
func clampMin(v, min int) int {
	if v < min {
		return min
	}
	return v
}
