// Package controller binds fetched stories to view slots and wires their
// interactions to the link dispatcher.
package controller

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"catchup/internal/linkmanager"
)

// ErrUnknownFeed is returned when a feed name is not registered.
var ErrUnknownFeed = errors.New("unknown feed")

// Score is a displayed score: a glyph paired with its value.
type Score struct {
	Glyph string `json:"glyph" yaml:"glyph"`
	Value int    `json:"value" yaml:"value"`
}

// Slot is one reusable row on screen. Setters are called synchronously while
// binding; the event channels deliver interactions until Done is closed.
// Empty strings mean "not shown".
type Slot interface {
	Title(string)
	Score(*Score)
	Timestamp(time.Time)
	Author(string)
	Source(string)
	Comments(int)
	Tag(string)

	Clicks() <-chan struct{}
	CommentClicks() <-chan struct{}
	LongClicks() <-chan struct{}
	// Done is closed when the slot is recycled or destroyed.
	Done() <-chan struct{}
}

// Controller fetches one screen of items and binds each to a slot.
type Controller[T any] interface {
	FetchItems(ctx context.Context) ([]T, error)
	BindItem(ctx context.Context, item T, slot Slot)
}

// SummaryFlow is opened by a long press on an item with a URL.
type SummaryFlow interface {
	Show(ctx context.Context, url string) error
}

// subscribe runs fn for every event on events until the slot is done or ctx
// ends. fn runs on the subscription goroutine, so events are handled in order.
func subscribe(ctx context.Context, slot Slot, events <-chan struct{}, fn func(context.Context)) {
	if events == nil {
		return
	}
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-slot.Done():
				return
			case _, ok := <-events:
				if !ok {
					return
				}
				fn(ctx)
			}
		}
	}()
}

// openOnEvent forwards each event as an open request. The outcome belongs to
// the dispatcher; failures are only logged.
func openOnEvent(ctx context.Context, slot Slot, events <-chan struct{}, links linkmanager.Dispatcher, req linkmanager.Request) {
	subscribe(ctx, slot, events, func(ctx context.Context) {
		if err := links.Open(ctx, req); err != nil {
			slog.Debug("controller: open link failed", "url", req.URL, "error", err)
		}
	})
}
