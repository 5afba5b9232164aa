package controller

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Feed is a type-erased controller that renders into RowSlots.
type Feed interface {
	Name() string
	Load(ctx context.Context) ([]*RowSlot, error)
}

type feed[T any] struct {
	name string
	c    Controller[T]
}

// NewFeed wraps c under name.
func NewFeed[T any](name string, c Controller[T]) Feed {
	return &feed[T]{name: name, c: c}
}

func (f *feed[T]) Name() string { return f.name }

func (f *feed[T]) Load(ctx context.Context) ([]*RowSlot, error) {
	return Load(ctx, f.c)
}

// Load fetches items and binds each to a fresh RowSlot. On failure nothing is
// bound. Callers Close the slots when they leave the screen.
func Load[T any](ctx context.Context, c Controller[T]) ([]*RowSlot, error) {
	items, err := c.FetchItems(ctx)
	if err != nil {
		return nil, err
	}
	slots := make([]*RowSlot, len(items))
	for i, it := range items {
		slots[i] = NewRowSlot()
		c.BindItem(ctx, it, slots[i])
	}
	return slots, nil
}

// Registry maps feed names to feeds.
type Registry struct {
	mu    sync.RWMutex
	feeds map[string]Feed
}

func NewRegistry(feeds ...Feed) *Registry {
	r := &Registry{feeds: make(map[string]Feed, len(feeds))}
	for _, f := range feeds {
		r.Register(f)
	}
	return r
}

func (r *Registry) Register(f Feed) {
	if f == nil {
		return
	}
	r.mu.Lock()
	r.feeds[strings.ToLower(f.Name())] = f
	r.mu.Unlock()
}

// Get looks a feed up by case-insensitive name.
func (r *Registry) Get(name string) (Feed, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if f, ok := r.feeds[strings.ToLower(strings.TrimSpace(name))]; ok {
		return f, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFeed, name)
}

// Names returns the registered feed names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.feeds))
	for n := range r.feeds {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// All returns the registered feeds in name order.
func (r *Registry) All() []Feed {
	names := r.Names()
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Feed, 0, len(names))
	for _, n := range names {
		out = append(out, r.feeds[n])
	}
	return out
}
