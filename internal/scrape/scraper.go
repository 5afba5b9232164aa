package scrape

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

const maxTextRunes = 4000

// Page is the readable part of a fetched HTML page.
type Page struct {
	Title string
	Text  string
}

// Scraper fetches article pages and extracts their title and body text.
type Scraper struct {
	http *resty.Client
}

// New creates a Scraper with the given timeout (20s when zero).
func New(timeout time.Duration) *Scraper {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	rc := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", "catchup/1.0").
		SetHeader("Accept", "text/html,application/xhtml+xml")
	return &Scraper{http: rc}
}

// Scrape fetches u and extracts its readable content.
func (s *Scraper) Scrape(ctx context.Context, u string) (Page, error) {
	if s == nil {
		return Page{}, errors.New("nil scraper")
	}
	if _, err := url.ParseRequestURI(u); err != nil {
		return Page{}, fmt.Errorf("invalid url: %w", err)
	}
	resp, err := s.http.R().SetContext(ctx).Get(u)
	if err != nil {
		return Page{}, fmt.Errorf("scrape %s: %w", u, err)
	}
	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return Page{}, fmt.Errorf("scrape %s: status %d", u, resp.StatusCode())
	}
	return Extract(resp.Body())
}

// Extract pulls the title and paragraph text out of an HTML document.
// Paragraphs inside <article> or <main> win over the rest of the body.
func Extract(html []byte) (Page, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return Page{}, fmt.Errorf("parse html: %w", err)
	}
	doc.Find("script, style, noscript, nav, header, footer").Remove()

	title := strings.TrimSpace(doc.Find(`meta[property="og:title"]`).AttrOr("content", ""))
	if title == "" {
		title = strings.TrimSpace(doc.Find("title").First().Text())
	}
	if title == "" {
		title = strings.TrimSpace(doc.Find("h1").First().Text())
	}

	paragraphs := doc.Find("article p, main p")
	if paragraphs.Length() == 0 {
		paragraphs = doc.Find("body p")
	}
	parts := make([]string, 0, paragraphs.Length())
	paragraphs.Each(func(_ int, sel *goquery.Selection) {
		if t := strings.Join(strings.Fields(sel.Text()), " "); t != "" {
			parts = append(parts, t)
		}
	})
	text := strings.Join(parts, "\n\n")
	if r := []rune(text); len(r) > maxTextRunes {
		text = string(r[:maxTextRunes])
	}
	return Page{Title: title, Text: text}, nil
}
