package controller

import (
	"context"
	"errors"
	"testing"
	"time"

	"catchup/internal/linkmanager"
	"catchup/internal/model"

	"github.com/stretchr/testify/require"
)

const waitFor = time.Second

// recorder is a Dispatcher that hands every request to the test.
type recorder struct {
	reqs chan linkmanager.Request
	err  error
}

func newRecorder() *recorder {
	return &recorder{reqs: make(chan linkmanager.Request, 16)}
}

func (r *recorder) Open(_ context.Context, req linkmanager.Request) error {
	r.reqs <- req
	return r.err
}

func (r *recorder) next(t *testing.T) linkmanager.Request {
	t.Helper()
	select {
	case req := <-r.reqs:
		return req
	case <-time.After(waitFor):
		t.Fatal("no open request forwarded")
		return linkmanager.Request{}
	}
}

func (r *recorder) none(t *testing.T) {
	t.Helper()
	select {
	case req := <-r.reqs:
		t.Fatalf("unexpected open request: %+v", req)
	case <-time.After(50 * time.Millisecond):
	}
}

type summaryRecorder struct {
	urls chan string
}

func (s *summaryRecorder) Show(_ context.Context, url string) error {
	s.urls <- url
	return nil
}

type stubStories struct {
	stories []model.Story
	err     error
	limit   int
}

func (s *stubStories) TopStoryItems(_ context.Context, limit int) ([]model.Story, error) {
	s.limit = limit
	return s.stories, s.err
}

type stubFeed struct {
	feed model.Feed
	err  error
}

func (s stubFeed) Main(context.Context) (model.Feed, error) { return s.feed, s.err }

var errFetch = errors.New("fetch failed")

func bind[T any](t *testing.T, c Controller[T], item T) *RowSlot {
	t.Helper()
	slot := NewRowSlot()
	t.Cleanup(slot.Close)
	c.BindItem(context.Background(), item, slot)
	return slot
}

func click(t *testing.T, ok bool) {
	t.Helper()
	require.True(t, ok, "no subscriber received the event")
}
