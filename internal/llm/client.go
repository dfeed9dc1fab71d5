package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
)

// maxResponseLogBytes is the max length of a model response to log in full (to avoid huge logs).
const maxResponseLogBytes = 2048

// CompletionRequest is one text-completion call: a fixed system instruction
// plus the user instruction, with sampling knobs.
type CompletionRequest struct {
	System           string
	User             string
	Temperature      float64
	MaxTokens        int
	PresencePenalty  float64
	FrequencyPenalty float64
}

// Client wraps the Gemini API for text completion.
type Client struct {
	model     string
	llm       llms.Model
	available bool
}

// NewClient creates a completion client. When the API key is missing or the
// model fails to initialize the client stays constructible; Complete returns
// an error on use so callers can degrade per request.
func NewClient(apiKey, model string) *Client {
	c := &Client{model: model}

	if apiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY not set, completion client disabled")
		return c
	}

	llm, err := googleai.New(context.Background(),
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(model),
	)
	if err != nil {
		log.Error().Err(err).Str("model", model).Msg("Failed to initialize completion model")
		return c
	}

	c.llm = llm
	c.available = true
	log.Info().Str("model", model).Msg("Completion client initialized")
	return c
}

// Available reports whether the client can serve completions.
func (c *Client) Available() bool {
	return c.available
}

// Complete runs one completion call and returns the generated text.
func (c *Client) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	if c.llm == nil {
		return "", fmt.Errorf("completion model %s is not initialized", c.model)
	}

	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, req.System),
		llms.TextParts(llms.ChatMessageTypeHuman, req.User),
	}

	opts := []llms.CallOption{
		llms.WithTemperature(req.Temperature),
		llms.WithMaxTokens(req.MaxTokens),
	}
	if req.PresencePenalty != 0 {
		opts = append(opts, llms.WithPresencePenalty(req.PresencePenalty))
	}
	if req.FrequencyPenalty != 0 {
		opts = append(opts, llms.WithFrequencyPenalty(req.FrequencyPenalty))
	}

	resp, err := c.llm.GenerateContent(ctx, messages, opts...)
	if err != nil {
		return "", fmt.Errorf("completion call failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("completion returned no choices")
	}

	text := strings.TrimSpace(resp.Choices[0].Content)
	logResponse("Complete", text)
	return text, nil
}

// logResponse logs model response text, truncating if over maxResponseLogBytes.
func logResponse(caller, raw string) {
	if len(raw) <= maxResponseLogBytes {
		log.Debug().Str("caller", caller).Str("response", raw).Msg("Model response")
		return
	}
	log.Debug().
		Str("caller", caller).
		Str("response", raw[:maxResponseLogBytes]+"... [truncated]").
		Int("response_len", len(raw)).
		Msg("Model response")
}
