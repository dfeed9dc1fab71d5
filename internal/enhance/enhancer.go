package enhance

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/medusa-io/medusa-backend/internal/llm"
	"github.com/medusa-io/medusa-backend/internal/models"
)

// Agent identifiers reported in results.
const (
	AgentTextToImage = "text_to_image"
	AgentTextToVideo = "text_to_video"
)

const (
	baseTemperature = 0.7
	// retryTemperature is used for the single retry after the model echoes
	// the input verbatim; higher randomness breaks the echo.
	retryTemperature = 0.95
	maxOutputTokens  = 300

	// failureNote marks a prompt that could not be enhanced.
	failureNote = " (enhancement unavailable)"
)

const imageSystemPrompt = `You are a prompt engineering expert for image generation. ` +
	`Your task is to enhance the given prompt with detailed visual descriptions. ` +
	`Focus on specific details like colors, textures, lighting, composition, and artistic style. ` +
	`Never return the prompt unchanged.`

const videoSystemPrompt = `You are a prompt engineering expert for video generation. ` +
	`Your task is to enhance the given prompt with detailed descriptions suitable for video. ` +
	`Focus on movement, timing, transitions, camera angles, and pacing. ` +
	`Never return the prompt unchanged.`

var imageObjectives = []string{
	"Preserve the core concept of the original prompt",
	"Reflect the mood and genre of the provided context",
	"Draw on the reference work when one is given",
	"Specify artistic style, lighting, color palette, and composition",
	"Stay a single descriptive paragraph",
}

var videoObjectives = []string{
	"Preserve the core concept of the original prompt",
	"Reflect the mood and genre of the provided context",
	"Draw on the reference work when one is given",
	"Add movement, camera direction, transitions, and pacing",
	"Stay a single descriptive paragraph",
}

// CompletionService is the text-completion capability enhancers depend on.
type CompletionService interface {
	Complete(ctx context.Context, req llm.CompletionRequest) (string, error)
}

// Enhancer rewrites a terse prompt into a richer description for one target
// medium. Each instance keeps an append-only history of its enhancements.
type Enhancer struct {
	name       string
	system     string
	objectives []string
	maxChars   int
	completion CompletionService

	mu      sync.Mutex
	history []models.HistoryEntry
}

// NewImageEnhancer creates the text-to-image variant.
func NewImageEnhancer(completion CompletionService, maxChars int) *Enhancer {
	return newEnhancer(AgentTextToImage, imageSystemPrompt, imageObjectives, completion, maxChars)
}

// NewVideoEnhancer creates the text-to-video variant.
func NewVideoEnhancer(completion CompletionService, maxChars int) *Enhancer {
	return newEnhancer(AgentTextToVideo, videoSystemPrompt, videoObjectives, completion, maxChars)
}

func newEnhancer(name, system string, objectives []string, completion CompletionService, maxChars int) *Enhancer {
	if maxChars <= 0 {
		maxChars = 512
	}
	return &Enhancer{
		name:       name,
		system:     system,
		objectives: objectives,
		maxChars:   maxChars,
		completion: completion,
	}
}

// Name returns the agent identifier ("text_to_image" or "text_to_video").
func (e *Enhancer) Name() string {
	return e.name
}

// Enhance rewrites original using the completion service. It never returns
// an error: a completion failure yields the original prompt with a failure
// note appended. When the model echoes the input verbatim it retries exactly
// once at higher temperature and accepts whatever comes back.
func (e *Enhancer) Enhance(ctx context.Context, original string, referenceURLs []string, promptContext string) string {
	user := e.buildUserPrompt(original, referenceURLs, promptContext)

	enhanced, err := e.completion.Complete(ctx, llm.CompletionRequest{
		System:      e.system,
		User:        user,
		Temperature: baseTemperature,
		MaxTokens:   maxOutputTokens,
	})
	if err != nil {
		log.Error().Err(err).Str("agent", e.name).Msg("Prompt enhancement failed")
		return original + failureNote
	}

	if enhanced == original {
		log.Warn().Str("agent", e.name).Msg("Model echoed prompt verbatim, retrying once at higher temperature")
		enhanced, err = e.completion.Complete(ctx, llm.CompletionRequest{
			System:          e.system,
			User:            user,
			Temperature:     retryTemperature,
			MaxTokens:       maxOutputTokens,
			PresencePenalty: 0.5,
		})
		if err != nil {
			log.Error().Err(err).Str("agent", e.name).Msg("Prompt enhancement retry failed")
			return original + failureNote
		}
	}

	// Copy the reference list so the history entry does not alias the
	// caller's slice.
	refs := make([]string, len(referenceURLs))
	copy(refs, referenceURLs)

	e.mu.Lock()
	e.history = append(e.history, models.HistoryEntry{
		OriginalPrompt:  original,
		EnhancedPrompt:  enhanced,
		ReferenceImages: refs,
	})
	e.mu.Unlock()

	log.Info().
		Str("agent", e.name).
		Int("enhanced_len", len(enhanced)).
		Int("reference_images", len(referenceURLs)).
		Msg("Prompt enhancement complete")
	return enhanced
}

// History returns a snapshot of past enhancements in call order.
func (e *Enhancer) History() []models.HistoryEntry {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]models.HistoryEntry, len(e.history))
	copy(out, e.history)
	return out
}

// ClearHistory resets the enhancement history.
func (e *Enhancer) ClearHistory() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.history = nil
}

func (e *Enhancer) buildUserPrompt(original string, referenceURLs []string, promptContext string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Original prompt: %s\n", original)
	if promptContext != "" {
		fmt.Fprintf(&b, "\nCreative context: %s\n", promptContext)
	}
	if len(referenceURLs) > 0 {
		fmt.Fprintf(&b, "\n%d reference images have been analyzed for this prompt.\n", len(referenceURLs))
	}
	b.WriteString("\nGenerate a detailed prompt that:\n")
	for i, obj := range e.objectives {
		fmt.Fprintf(&b, "%d. %s\n", i+1, obj)
	}
	fmt.Fprintf(&b, "\nKeep the final prompt under %d characters.", e.maxChars)
	return b.String()
}
