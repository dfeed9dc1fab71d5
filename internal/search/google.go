package search

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	customsearch "google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"
)

// GoogleSearcher is an imageSearcher backed by the Google Custom Search API.
type GoogleSearcher struct {
	service  *customsearch.Service
	engineID string
}

// NewGoogleSearcher creates a Custom Search backend.
func NewGoogleSearcher(ctx context.Context, apiKey, engineID string) (*GoogleSearcher, error) {
	if apiKey == "" || engineID == "" {
		return nil, fmt.Errorf("SEARCH_API_KEY and SEARCH_ENGINE_ID must both be set")
	}

	service, err := customsearch.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize custom search service: %w", err)
	}

	log.Info().Msg("Reference search backend initialized")
	return &GoogleSearcher{service: service, engineID: engineID}, nil
}

// ImageSearch runs one image-type search and returns result links in rank order.
func (g *GoogleSearcher) ImageSearch(ctx context.Context, query string, count int64) ([]string, error) {
	resp, err := g.service.Cse.List().
		Q(query).
		Cx(g.engineID).
		SearchType("image").
		Num(count).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("custom search request failed: %w", err)
	}

	urls := make([]string, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Link != "" {
			urls = append(urls, item.Link)
		}
	}
	return urls, nil
}
