package orchestrator

import (
	"context"

	"github.com/medusa-io/medusa-backend/internal/media"
)

// referenceSearcher is the subset of the search client used by the Coordinator.
type referenceSearcher interface {
	Search(ctx context.Context, query string, count int) []string
	ClearHistory()
}

// imageGenerator is the image stage of the job pipeline.
type imageGenerator interface {
	Generate(ctx context.Context, prompt string) (*media.GeneratedImage, error)
}

// videoGenerator is the video stage of the job pipeline.
type videoGenerator interface {
	Generate(ctx context.Context, prompt string, image *media.GeneratedImage) (string, error)
}
