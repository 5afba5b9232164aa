package hackernews

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"catchup/internal/httpcache"
	"catchup/internal/model"

	"github.com/go-resty/resty/v2"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultBaseAPI = "https://hacker-news.firebaseio.com/v0"
	DefaultWebURL  = "https://news.ycombinator.com"
	// DefaultMaxAge is how long responses are cached; the API is slow.
	DefaultMaxAge = 5 * time.Minute
	// DefaultLimit is the fixed page size of the top stories screen.
	DefaultLimit = 50
)

// Config configures a Client. Zero values fall back to the defaults above.
type Config struct {
	BaseAPI     string
	MaxAge      time.Duration
	Timeout     time.Duration
	Concurrency int
	Store       httpcache.Cache   // optional response cache
	Transport   http.RoundTripper // network transport, defaults to http.DefaultTransport
}

// Client is a minimal Hacker News API client.
// Docs: https://github.com/HackerNews/API
//
// Requests are issued without the ".json" suffix; the cache interceptor adds
// it so that cache keys stay suffix-free.
type Client struct {
	http        *resty.Client
	concurrency int
}

// NewClient creates a new Hacker News client.
func NewClient(cfg Config) *Client {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseAPI), "/")
	if base == "" {
		base = DefaultBaseAPI
	}
	if cfg.MaxAge <= 0 {
		cfg.MaxAge = DefaultMaxAge
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultLimit
	}
	rt := httpcache.NewTransport(httpcache.NewInterceptor(cfg.Transport, ".json", cfg.MaxAge), cfg.Store)
	rc := resty.New().
		SetBaseURL(base).
		SetTimeout(cfg.Timeout).
		SetTransport(rt).
		SetHeader("Accept", "application/json")
	return &Client{http: rc, concurrency: cfg.Concurrency}
}

// TopStories returns the ordered ids of the current top stories.
func (c *Client) TopStories(ctx context.Context) ([]int, error) {
	var ids []int
	if err := c.get(ctx, "/topstories", &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// Item fetches a single item by id.
func (c *Client) Item(ctx context.Context, id int) (model.Story, error) {
	var it *model.Story
	if err := c.get(ctx, fmt.Sprintf("/item/%d", id), &it); err != nil {
		return model.Story{}, err
	}
	if it == nil {
		return model.Story{}, fmt.Errorf("hackernews: item %d not found", id)
	}
	return *it, nil
}

// TopStoryItems resolves the first limit top stories. It fails if the index
// or any single item fails.
func (c *Client) TopStoryItems(ctx context.Context, limit int) ([]model.Story, error) {
	ids, err := c.TopStories(ctx)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	slog.Info("hackernews: fetching items", "list", "topstories", "count", len(ids))
	return c.Items(ctx, ids)
}

// Items resolves ids concurrently with at most c.concurrency requests in
// flight. The result keeps the order of ids. The first failure cancels the
// remaining requests and is returned; no partial result is delivered.
func (c *Client) Items(ctx context.Context, ids []int) ([]model.Story, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	out := make([]model.Story, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			it, err := c.Item(gctx, id)
			if err != nil {
				return err
			}
			out[i] = it
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, path string, v any) error {
	resp, err := c.http.R().SetContext(ctx).Get(path)
	if err != nil {
		return fmt.Errorf("hackernews: get %s: %w", path, err)
	}
	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return fmt.Errorf("hackernews: %s status %d", path, resp.StatusCode())
	}
	if err := json.Unmarshal(resp.Body(), v); err != nil {
		return fmt.Errorf("hackernews: decode %s: %w", path, err)
	}
	return nil
}
