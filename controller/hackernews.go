package controller

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"catchup/internal/hackernews"
	"catchup/internal/linkmanager"
	"catchup/internal/model"
)

const hackerNewsSource = "Hacker News"

var _ Controller[model.Story] = (*HackerNews)(nil)

// StorySource resolves the top stories of Hacker News.
type StorySource interface {
	TopStoryItems(ctx context.Context, limit int) ([]model.Story, error)
}

// HackerNews is the controller for the Hacker News top stories screen.
type HackerNews struct {
	client  StorySource
	links   linkmanager.Dispatcher
	summary SummaryFlow
	webURL  string
	limit   int
}

// NewHackerNews builds the controller. summary may be nil, which disables
// long-press summaries; an empty webURL and a non-positive limit use the
// defaults.
func NewHackerNews(client StorySource, links linkmanager.Dispatcher, summary SummaryFlow, webURL string, limit int) *HackerNews {
	webURL = strings.TrimRight(strings.TrimSpace(webURL), "/")
	if webURL == "" {
		webURL = hackernews.DefaultWebURL
	}
	if limit <= 0 {
		limit = hackernews.DefaultLimit
	}
	return &HackerNews{client: client, links: links, summary: summary, webURL: webURL, limit: limit}
}

func (h *HackerNews) FetchItems(ctx context.Context) ([]model.Story, error) {
	return h.client.TopStoryItems(ctx, h.limit)
}

func (h *HackerNews) BindItem(ctx context.Context, s model.Story, slot Slot) {
	slot.Title(s.Title)
	slot.Score(&Score{Glyph: "+", Value: s.Score})
	slot.Timestamp(s.Time.Time)
	slot.Author(s.By)
	slot.Source(hostOf(s.URL))
	slot.Comments(s.CommentsCount())
	slot.Tag("")

	if s.URL != "" && h.summary != nil {
		subscribe(ctx, slot, slot.LongClicks(), func(ctx context.Context) {
			if err := h.summary.Show(ctx, s.URL); err != nil {
				slog.Debug("controller: summary failed", "url", s.URL, "error", err)
			}
		})
	}

	comments := h.CommentsURL(s.ID)
	target := s.URL
	if target == "" {
		// text posts link to their own discussion
		target = comments
	}
	openOnEvent(ctx, slot, slot.Clicks(), h.links, linkmanager.Meta(target, s.Title, hackerNewsSource))
	openOnEvent(ctx, slot, slot.CommentClicks(), h.links, linkmanager.Meta(comments, s.Title, hackerNewsSource))
}

// CommentsURL is the discussion page of a story.
func (h *HackerNews) CommentsURL(id int) string {
	return fmt.Sprintf("%s/item?id=%d", h.webURL, id)
}

// hostOf returns the lowercased host of raw, or "" when raw is empty or has
// no host.
func hostOf(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}
