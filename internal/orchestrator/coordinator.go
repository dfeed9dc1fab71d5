package orchestrator

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/medusa-io/medusa-backend/internal/enhance"
	"github.com/medusa-io/medusa-backend/internal/models"
)

// Coordinator sequences one enhancement request end to end: influence
// context, reference-image search, then the mode-appropriate enhancer. It is
// the last line of defense for the synchronous path: Process always returns
// a well-formed result, never a fault.
type Coordinator struct {
	search         referenceSearcher
	imageEnhancer  *enhance.Enhancer
	videoEnhancer  *enhance.Enhancer
	imageGenerator imageGenerator
	videoGenerator videoGenerator
	referenceCount int
}

// New creates a Coordinator owning both enhancer variants. imageGenerator
// and videoGenerator may be nil when the job pipeline is not configured;
// Process works without them, ProcessJob reports the gap.
func New(
	completion enhance.CompletionService,
	search referenceSearcher,
	imageGen imageGenerator,
	videoGen videoGenerator,
	referenceCount, maxPromptChars int,
) *Coordinator {
	if referenceCount < 1 {
		referenceCount = 3
	}
	return &Coordinator{
		search:         search,
		imageEnhancer:  enhance.NewImageEnhancer(completion, maxPromptChars),
		videoEnhancer:  enhance.NewVideoEnhancer(completion, maxPromptChars),
		imageGenerator: imageGen,
		videoGenerator: videoGen,
		referenceCount: referenceCount,
	}
}

// Process runs the synchronous enhancement pipeline. Stage failures degrade
// locally (empty reference list, annotated prompt); anything unexpected is
// converted into a fallback result with Error set.
func (c *Coordinator) Process(ctx context.Context, req *models.EnhancementRequest) (result *models.EnhancementResult) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("Enhancement pipeline fault")
			result = fallbackResult(req, fmt.Sprintf("internal fault: %v", r))
		}
	}()

	if req.OriginalPrompt == "" {
		return fallbackResult(req, "original_prompt must not be empty")
	}
	if req.Mode != models.ModeImage && req.Mode != models.ModeVideo {
		return fallbackResult(req, fmt.Sprintf("invalid mode %q", req.Mode))
	}

	promptContext := enhance.BuildContext(req.Influences)

	referenceImages := c.search.Search(ctx, req.OriginalPrompt, c.referenceCount)

	enhancer := c.imageEnhancer
	if req.Mode == models.ModeVideo {
		enhancer = c.videoEnhancer
	}
	enhanced := enhancer.Enhance(ctx, req.OriginalPrompt, referenceImages, promptContext)

	if referenceImages == nil {
		referenceImages = []string{}
	}
	return &models.EnhancementResult{
		OriginalPrompt:  req.OriginalPrompt,
		EnhancedPrompt:  enhanced,
		ReferenceImages: referenceImages,
		Mode:            req.Mode,
		AgentUsed:       enhancer.Name(),
		Influences:      req.Influences,
	}
}

// ProcessJob runs the media-generation pipeline: search, image generation,
// then video generation with submit-and-poll. There is no meaningful partial
// result here, so any stage failure propagates.
func (c *Coordinator) ProcessJob(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", fmt.Errorf("prompt must not be empty")
	}
	if c.imageGenerator == nil || c.videoGenerator == nil {
		return "", fmt.Errorf("media generation is not configured")
	}

	referenceImages := c.search.Search(ctx, prompt, c.referenceCount)
	log.Info().Int("reference_images", len(referenceImages)).Msg("Job: reference search complete")

	image, err := c.imageGenerator.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("image stage failed: %w", err)
	}

	url, err := c.videoGenerator.Generate(ctx, prompt, image)
	if err != nil {
		return "", fmt.Errorf("video stage failed: %w", err)
	}

	return url, nil
}

// ClearHistory clears history on the search client and both enhancers.
func (c *Coordinator) ClearHistory() {
	c.search.ClearHistory()
	c.imageEnhancer.ClearHistory()
	c.videoEnhancer.ClearHistory()
}

// ImageHistory returns the image enhancer's history snapshot.
func (c *Coordinator) ImageHistory() []models.HistoryEntry {
	return c.imageEnhancer.History()
}

// VideoHistory returns the video enhancer's history snapshot.
func (c *Coordinator) VideoHistory() []models.HistoryEntry {
	return c.videoEnhancer.History()
}

func fallbackResult(req *models.EnhancementRequest, errMsg string) *models.EnhancementResult {
	return &models.EnhancementResult{
		OriginalPrompt:  req.OriginalPrompt,
		EnhancedPrompt:  req.OriginalPrompt,
		ReferenceImages: []string{},
		Mode:            req.Mode,
		AgentUsed:       "",
		Influences:      req.Influences,
		Error:           errMsg,
	}
}
