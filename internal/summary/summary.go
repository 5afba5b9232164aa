package summary

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"catchup/internal/ai"
	"catchup/internal/scrape"
)

// PageScraper fetches the readable content of a page.
type PageScraper interface {
	Scrape(ctx context.Context, url string) (scrape.Page, error)
}

// Flow shows a summary of the page behind a URL. It is what a long press on
// a story opens.
type Flow struct {
	Scraper    PageScraper
	Summarizer ai.Summarizer // optional; without it the opening text is shown
	Language   string

	mu  sync.Mutex
	out io.Writer
}

func NewFlow(scraper PageScraper, summarizer ai.Summarizer, out io.Writer) *Flow {
	return &Flow{Scraper: scraper, Summarizer: summarizer, out: out}
}

// Show scrapes url, summarizes it and writes the result.
func (f *Flow) Show(ctx context.Context, url string) error {
	url = strings.TrimSpace(url)
	if url == "" {
		return errors.New("summary: empty url")
	}
	page, err := f.Scraper.Scrape(ctx, url)
	if err != nil {
		return fmt.Errorf("summary: %w", err)
	}
	text := ""
	if f.Summarizer != nil {
		if s, err := f.Summarizer.Summarize(ctx, page.Title, page.Text, f.Language); err == nil {
			text = s
		} else {
			slog.Warn("summary: summarizer failed, using page text", "url", url, "error", err)
		}
	}
	if text == "" {
		text = lead(page.Text, 3)
	}
	if text == "" {
		return fmt.Errorf("summary: nothing to summarize at %s", url)
	}

	title := page.Title
	if title == "" {
		title = url
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	_, err = fmt.Fprintf(f.out, "%s\n%s\n\n", title, text)
	return err
}

// lead returns the first n sentences of text.
func lead(text string, n int) string {
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return ""
	}
	count := 0
	for i, r := range text {
		if r == '.' || r == '!' || r == '?' {
			if i+1 == len(text) || text[i+1] == ' ' {
				count++
				if count == n {
					return text[:i+1]
				}
			}
		}
	}
	return text
}
