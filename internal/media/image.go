package media

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// GeneratedImage is one rendered image from the image stage of the job
// pipeline, fed into video generation as the starting frame.
type GeneratedImage struct {
	Data     []byte
	MimeType string
}

// ImageClient generates images from prompts using Gemini with strict IMAGE
// modality. Unlike prompt enhancement, generation failures are hard errors:
// the job pipeline has no meaningful partial result.
type ImageClient struct {
	client *genai.Client
	model  string
}

// NewImageClient creates an image generation client.
func NewImageClient(ctx context.Context, apiKey, model string) (*ImageClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize genai client: %w", err)
	}

	log.Info().Str("model", model).Msg("Image generation client initialized")
	return &ImageClient{client: client, model: model}, nil
}

// Generate renders one image for the prompt and returns its bytes.
func (c *ImageClient) Generate(ctx context.Context, prompt string) (*GeneratedImage, error) {
	model := c.client.GenerativeModel(c.model)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("image generation failed: %w", err)
	}

	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			blob, ok := part.(genai.Blob)
			if !ok || len(blob.Data) == 0 {
				continue
			}
			mimeType := blob.MIMEType
			if mimeType == "" {
				mimeType = "image/png"
			}
			log.Info().
				Str("model", c.model).
				Int("image_size_bytes", len(blob.Data)).
				Str("mime_type", mimeType).
				Msg("Image generation complete")
			return &GeneratedImage{Data: blob.Data, MimeType: mimeType}, nil
		}
	}

	return nil, fmt.Errorf("no image blob in response from model %s", c.model)
}
