package search

import (
	"context"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/medusa-io/medusa-backend/internal/models"
)

// maxResultsPerQuery is the Custom Search API per-request cap.
const maxResultsPerQuery = 10

// imageSearcher is the outbound image-search capability. Implementations
// return an ordered list of image URLs for a query.
type imageSearcher interface {
	ImageSearch(ctx context.Context, query string, count int64) ([]string, error)
}

// Client retrieves reference images for a prompt. Search failures never
// propagate: reference images are an enrichment, not a correctness
// requirement, so the client logs and returns an empty list instead.
type Client struct {
	searcher imageSearcher
	cache    *gocache.Cache
	limiter  *rate.Limiter

	mu      sync.Mutex
	history []models.SearchRecord
}

// NewClient creates a search client over the given backend. cacheTTL bounds
// how long query results are reused; ratePerSecond limits outbound calls.
func NewClient(searcher imageSearcher, cacheTTL time.Duration, ratePerSecond float64) *Client {
	return &Client{
		searcher: searcher,
		cache:    gocache.New(cacheTTL, 2*cacheTTL),
		limiter:  rate.NewLimiter(rate.Limit(ratePerSecond), 1),
	}
}

// Search returns up to count reference image URLs for the query. On any
// failure it returns an empty list.
func (c *Client) Search(ctx context.Context, query string, count int) []string {
	if c.searcher == nil {
		log.Warn().Msg("Search backend not configured, returning no reference images")
		return nil
	}
	if count < 1 {
		count = 1
	}
	if count > maxResultsPerQuery {
		count = maxResultsPerQuery
	}

	if cached, found := c.cache.Get(query); found {
		urls := cloneURLs(cached.([]string))
		log.Debug().Str("query", query).Int("urls", len(urls)).Msg("Reference search cache hit")
		c.record(query, urls)
		return urls
	}

	if err := c.limiter.Wait(ctx); err != nil {
		log.Error().Err(err).Str("query", query).Msg("Reference search canceled while rate limited")
		return nil
	}

	urls, err := c.searcher.ImageSearch(ctx, query, int64(count))
	if err != nil {
		log.Error().Err(err).Str("query", query).Msg("Reference image search failed")
		return nil
	}

	log.Info().Str("query", query).Int("urls", len(urls)).Msg("Reference image search complete")
	c.cache.Set(query, cloneURLs(urls), gocache.DefaultExpiration)
	c.record(query, urls)
	return urls
}

// History returns a snapshot of past searches in call order.
func (c *Client) History() []models.SearchRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.SearchRecord, len(c.history))
	copy(out, c.history)
	return out
}

// ClearHistory resets the search history.
func (c *Client) ClearHistory() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.history = nil
}

func (c *Client) record(query string, urls []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.history = append(c.history, models.SearchRecord{Query: query, URLs: cloneURLs(urls)})
}

// cloneURLs copies a URL slice so callers, cache, and history never share a
// backing array.
func cloneURLs(urls []string) []string {
	if urls == nil {
		return nil
	}
	out := make([]string, len(urls))
	copy(out, urls)
	return out
}
