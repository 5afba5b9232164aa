package slashdot

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"strings"
	"time"

	"catchup/internal/httpcache"
	"catchup/internal/model"

	"github.com/go-resty/resty/v2"
	"golang.org/x/net/html/charset"
)

const (
	DefaultFeedURL = "https://rss.slashdot.org/Slashdot/slashdotMainatom"
	// DefaultMaxAge follows the refresh limit Slashdot asks feed readers for.
	DefaultMaxAge = 30 * time.Minute
)

// Config configures a Client. Zero values fall back to the defaults above.
type Config struct {
	FeedURL   string
	MaxAge    time.Duration
	Timeout   time.Duration
	Store     httpcache.Cache
	Transport http.RoundTripper
}

// Client reads the Slashdot main Atom feed.
type Client struct {
	http    *resty.Client
	feedURL string
}

func NewClient(cfg Config) *Client {
	feedURL := strings.TrimSpace(cfg.FeedURL)
	if feedURL == "" {
		feedURL = DefaultFeedURL
	}
	if cfg.MaxAge <= 0 {
		cfg.MaxAge = DefaultMaxAge
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 20 * time.Second
	}
	rt := httpcache.NewTransport(httpcache.NewInterceptor(cfg.Transport, "", cfg.MaxAge), cfg.Store)
	rc := resty.New().
		SetTimeout(cfg.Timeout).
		SetTransport(rt).
		SetHeader("Accept", "application/atom+xml, application/xml;q=0.9, */*;q=0.8")
	return &Client{http: rc, feedURL: feedURL}
}

// Main fetches the main feed document.
func (c *Client) Main(ctx context.Context) (model.Feed, error) {
	resp, err := c.http.R().SetContext(ctx).Get(c.feedURL)
	if err != nil {
		return model.Feed{}, fmt.Errorf("slashdot: get feed: %w", err)
	}
	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return model.Feed{}, fmt.Errorf("slashdot: feed status %d body: %s", resp.StatusCode(), snippet(resp.Body()))
	}
	return Parse(resp.Body())
}

// Parse decodes a feed leniently: unknown elements are ignored, HTML entities
// and unclosed HTML tags are tolerated, non-UTF-8 charsets are converted and
// namespaced elements match by local name.
func Parse(data []byte) (model.Feed, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Strict = false
	dec.AutoClose = xml.HTMLAutoClose
	dec.Entity = xml.HTMLEntity
	dec.CharsetReader = charset.NewReaderLabel

	var feed model.Feed
	if err := dec.Decode(&feed); err != nil {
		return model.Feed{}, fmt.Errorf("slashdot: decode feed: %w", err)
	}
	return feed, nil
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses the ISO-8601 variants seen in Atom feeds.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("slashdot: not an ISO-8601 timestamp: %q", s)
}

func snippet(body []byte) string {
	const maxLen = 256
	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	if s == "" {
		return "<empty>"
	}
	return s
}
