package linkmanager

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/pkg/browser"
)

// Request asks a Dispatcher to open a URL. Title and Source are display
// metadata and may be empty.
type Request struct {
	URL    string `json:"url"`
	Title  string `json:"title,omitempty"`
	Source string `json:"source,omitempty"`
}

// Dispatcher decides how a clicked link is opened.
type Dispatcher interface {
	Open(ctx context.Context, req Request) error
}

// DispatcherFunc adapts a function to Dispatcher.
type DispatcherFunc func(ctx context.Context, req Request) error

func (f DispatcherFunc) Open(ctx context.Context, req Request) error { return f(ctx, req) }

// Meta normalizes a target URL into an open request.
func Meta(url, title, source string) Request {
	return Request{
		URL:    strings.TrimSpace(url),
		Title:  strings.TrimSpace(title),
		Source: strings.TrimSpace(source),
	}
}

// Printer writes each request to w, one per line.
type Printer struct {
	mu sync.Mutex
	w  io.Writer
}

func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

func (p *Printer) Open(_ context.Context, req Request) error {
	if req.URL == "" {
		return errors.New("linkmanager: empty url")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if req.Title != "" {
		_, err := fmt.Fprintf(p.w, "open %s (%s)\n", req.URL, req.Title)
		return err
	}
	_, err := fmt.Fprintf(p.w, "open %s\n", req.URL)
	return err
}

// Browser hands the URL to the desktop's default handler.
type Browser struct {
	// command overrides the platform opener; used by tests.
	command func(url string) error
}

func NewBrowser() *Browser {
	return &Browser{command: browser.OpenURL}
}

func (b *Browser) Open(_ context.Context, req Request) error {
	if req.URL == "" {
		return errors.New("linkmanager: empty url")
	}
	if err := b.command(req.URL); err != nil {
		return fmt.Errorf("linkmanager: open %s: %w", req.URL, err)
	}
	return nil
}

// New returns the dispatcher for mode ("print" or "browser").
func New(mode string, w io.Writer) (Dispatcher, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "print":
		return NewPrinter(w), nil
	case "browser":
		return NewBrowser(), nil
	default:
		return nil, fmt.Errorf("linkmanager: unknown mode %q", mode)
	}
}
