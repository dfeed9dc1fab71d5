package media

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	unifiedgenai "google.golang.org/genai"
)

// videoOperations is the subset of the Veo long-running-operation API used
// by VideoClient: submit once, then poll by operation handle.
type videoOperations interface {
	GenerateVideos(ctx context.Context, model, prompt string, image *unifiedgenai.Image, config *unifiedgenai.GenerateVideosConfig) (*unifiedgenai.GenerateVideosOperation, error)
	GetVideosOperation(ctx context.Context, operation *unifiedgenai.GenerateVideosOperation, config *unifiedgenai.GetOperationConfig) (*unifiedgenai.GenerateVideosOperation, error)
}

// genaiVideoOperations adapts *unifiedgenai.Client to videoOperations.
type genaiVideoOperations struct {
	client *unifiedgenai.Client
}

func (g *genaiVideoOperations) GenerateVideos(ctx context.Context, model, prompt string, image *unifiedgenai.Image, config *unifiedgenai.GenerateVideosConfig) (*unifiedgenai.GenerateVideosOperation, error) {
	return g.client.Models.GenerateVideos(ctx, model, prompt, image, config)
}

func (g *genaiVideoOperations) GetVideosOperation(ctx context.Context, operation *unifiedgenai.GenerateVideosOperation, config *unifiedgenai.GetOperationConfig) (*unifiedgenai.GenerateVideosOperation, error) {
	return g.client.Operations.GetVideosOperation(ctx, operation, config)
}

// VideoClient generates videos through the long-running Veo operation API:
// submit once, then poll until the operation reaches a terminal state. The
// poll loop is bounded; an operation that neither completes nor fails within
// maxPollAttempts is surfaced as a timeout error rather than waited on
// forever.
type VideoClient struct {
	ops             videoOperations
	model           string
	pollInterval    time.Duration
	maxPollAttempts int
}

// NewVideoClient creates a video generation client.
func NewVideoClient(ctx context.Context, apiKey, model string, pollInterval time.Duration, maxPollAttempts int) (*VideoClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is not set")
	}

	client, err := unifiedgenai.NewClient(ctx, &unifiedgenai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize video client: %w", err)
	}

	log.Info().
		Str("model", model).
		Dur("poll_interval", pollInterval).
		Int("max_poll_attempts", maxPollAttempts).
		Msg("Video generation client initialized")
	return newVideoClient(&genaiVideoOperations{client: client}, model, pollInterval, maxPollAttempts), nil
}

func newVideoClient(ops videoOperations, model string, pollInterval time.Duration, maxPollAttempts int) *VideoClient {
	if maxPollAttempts < 1 {
		maxPollAttempts = 1
	}
	return &VideoClient{
		ops:             ops,
		model:           model,
		pollInterval:    pollInterval,
		maxPollAttempts: maxPollAttempts,
	}
}

// Generate submits a video generation job seeded with the prompt and an
// optional starting image, polls it to completion, and returns the video URL.
func (c *VideoClient) Generate(ctx context.Context, prompt string, image *GeneratedImage) (string, error) {
	var startFrame *unifiedgenai.Image
	if image != nil {
		startFrame = &unifiedgenai.Image{ImageBytes: image.Data, MIMEType: image.MimeType}
	}

	op, err := c.ops.GenerateVideos(ctx, c.model, prompt, startFrame, nil)
	if err != nil {
		return "", fmt.Errorf("video job submission failed: %w", err)
	}

	log.Info().Str("operation", op.Name).Str("model", c.model).Msg("Video job submitted")

	for attempt := 1; !op.Done; attempt++ {
		if attempt > c.maxPollAttempts {
			return "", fmt.Errorf("video job %s did not finish within %d poll attempts", op.Name, c.maxPollAttempts)
		}

		select {
		case <-ctx.Done():
			return "", fmt.Errorf("video job %s canceled: %w", op.Name, ctx.Err())
		case <-time.After(c.pollInterval):
		}

		op, err = c.ops.GetVideosOperation(ctx, op, nil)
		if err != nil {
			return "", fmt.Errorf("video job poll failed: %w", err)
		}

		log.Debug().
			Str("operation", op.Name).
			Int("attempt", attempt).
			Bool("done", op.Done).
			Msg("Video job polled")
	}

	if op.Error != nil {
		return "", fmt.Errorf("video job %s failed: %v", op.Name, op.Error)
	}
	if op.Response == nil || len(op.Response.GeneratedVideos) == 0 {
		return "", fmt.Errorf("video job %s completed with no output", op.Name)
	}

	video := op.Response.GeneratedVideos[0].Video
	if video == nil || video.URI == "" {
		return "", fmt.Errorf("video job %s completed without a result URL", op.Name)
	}

	log.Info().Str("operation", op.Name).Str("url", video.URI).Msg("Video job complete")
	return video.URI, nil
}
