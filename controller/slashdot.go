package controller

import (
	"context"
	"log/slog"

	"catchup/internal/linkmanager"
	"catchup/internal/model"
	"catchup/internal/slashdot"
)

const slashdotSource = "Slashdot"

var _ Controller[model.Entry] = (*Slashdot)(nil)

// FeedSource fetches the Slashdot main feed.
type FeedSource interface {
	Main(ctx context.Context) (model.Feed, error)
}

// Slashdot is the controller for the Slashdot main feed screen.
type Slashdot struct {
	client FeedSource
	links  linkmanager.Dispatcher
}

func NewSlashdot(client FeedSource, links linkmanager.Dispatcher) *Slashdot {
	return &Slashdot{client: client, links: links}
}

func (c *Slashdot) FetchItems(ctx context.Context) ([]model.Entry, error) {
	feed, err := c.client.Main(ctx)
	if err != nil {
		return nil, err
	}
	return feed.Entries, nil
}

func (c *Slashdot) BindItem(ctx context.Context, e model.Entry, slot Slot) {
	slot.Title(e.Title)
	slot.Score(nil)
	ts, err := slashdot.ParseTimestamp(e.Updated)
	if err != nil {
		slog.Warn("controller: bad entry timestamp", "id", e.ID, "error", err)
	}
	slot.Timestamp(ts)
	slot.Author(e.Author.Name)
	slot.Source(e.Department)
	slot.Comments(e.Comments)
	slot.Tag(e.Section)

	openOnEvent(ctx, slot, slot.Clicks(), c.links, linkmanager.Meta(e.ID, e.Title, slashdotSource))
	openOnEvent(ctx, slot, slot.CommentClicks(), c.links, linkmanager.Meta(e.ID+"#comments", e.Title, slashdotSource))
}
