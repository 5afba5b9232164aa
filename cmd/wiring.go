package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"catchup/controller"
	"catchup/internal/ai"
	"catchup/internal/config"
	"catchup/internal/hackernews"
	"catchup/internal/httpcache"
	"catchup/internal/linkmanager"
	"catchup/internal/model"
	"catchup/internal/redisclient"
	"catchup/internal/scrape"
	"catchup/internal/slashdot"
	"catchup/internal/storage"
	"catchup/internal/summary"
)

// app holds the collaborators shared by commands.
type app struct {
	feeds   *controller.Registry
	hn      *hackernews.Client
	closeFn func() error
	// handled receives one value per finished open or summary, dropped when full.
	handled chan struct{}
}

func (a *app) Close() error {
	if a.closeFn == nil {
		return nil
	}
	return a.closeFn()
}

// newApp builds clients, controllers and the feed registry from cfg. Opened
// links and summaries are written to out.
func newApp(cfg config.Config, out io.Writer) (*app, error) {
	a := &app{handled: make(chan struct{}, 16)}
	hnMaxAge, err := parseDuration("sources.hackernews.max_age", cfg.Sources.HN.MaxAge)
	if err != nil {
		return nil, err
	}
	hnTimeout, err := parseDuration("sources.hackernews.timeout", cfg.Sources.HN.Timeout)
	if err != nil {
		return nil, err
	}
	sdMaxAge, err := parseDuration("sources.slashdot.max_age", cfg.Sources.Slashdot.MaxAge)
	if err != nil {
		return nil, err
	}
	sdTimeout, err := parseDuration("sources.slashdot.timeout", cfg.Sources.Slashdot.Timeout)
	if err != nil {
		return nil, err
	}

	var store httpcache.Cache
	switch cfg.Cache.Driver {
	case "memory":
		store = httpcache.NewMemoryCache()
	case "redis":
		rdb := redisclient.New(cfg.Redis)
		a.closeFn = rdb.Close
		// stale entries are useless past the longest max-age
		store = storage.NewRedisStore(rdb, max(hnMaxAge, sdMaxAge))
	case "none":
	default:
		return nil, fmt.Errorf("unknown cache driver %q", cfg.Cache.Driver)
	}

	links, err := linkmanager.New(cfg.Links.Mode, out)
	if err != nil {
		a.Close()
		return nil, err
	}

	var summarizer ai.Summarizer
	if cfg.OpenAI.APIKey != "" {
		oc, err := ai.NewOpenAI(ai.Config{APIKey: cfg.OpenAI.APIKey, Model: cfg.OpenAI.Model, BaseURL: cfg.OpenAI.BaseURL})
		if err != nil {
			slog.Warn("cmd: summarizer unavailable, using page text", "error", err)
		} else {
			summarizer = oc
		}
	}
	flow := &trackedFlow{SummaryFlow: summary.NewFlow(scrape.New(20*time.Second), summarizer, out), done: a.handled}
	links = &trackedLinks{Dispatcher: links, done: a.handled}

	a.hn = hackernews.NewClient(hackernews.Config{
		BaseAPI:     cfg.Sources.HN.BaseAPI,
		MaxAge:      hnMaxAge,
		Timeout:     hnTimeout,
		Concurrency: cfg.Sources.HN.Concurrency,
		Store:       store,
	})
	sd := slashdot.NewClient(slashdot.Config{
		FeedURL: cfg.Sources.Slashdot.FeedURL,
		MaxAge:  sdMaxAge,
		Timeout: sdTimeout,
		Store:   store,
	})

	a.feeds = controller.NewRegistry(
		controller.NewFeed[model.Story]("hackernews", controller.NewHackerNews(a.hn, links, flow, cfg.Sources.HN.WebURL, cfg.Sources.HN.Limit)),
		controller.NewFeed[model.Entry]("slashdot", controller.NewSlashdot(sd, links)),
	)
	return a, nil
}

func parseDuration(key, s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

type trackedLinks struct {
	linkmanager.Dispatcher
	done chan<- struct{}
}

func (t *trackedLinks) Open(ctx context.Context, req linkmanager.Request) error {
	defer notify(t.done)
	return t.Dispatcher.Open(ctx, req)
}

type trackedFlow struct {
	controller.SummaryFlow
	done chan<- struct{}
}

func (t *trackedFlow) Show(ctx context.Context, url string) error {
	defer notify(t.done)
	return t.SummaryFlow.Show(ctx, url)
}

func notify(ch chan<- struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}
