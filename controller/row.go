package controller

import (
	"sync"
	"time"
)

// Row is the displayed state of a RowSlot.
type Row struct {
	Title     string    `json:"title" yaml:"title"`
	Score     *Score    `json:"score,omitempty" yaml:"score,omitempty"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Author    string    `json:"author,omitempty" yaml:"author,omitempty"`
	Source    string    `json:"source,omitempty" yaml:"source,omitempty"`
	Comments  int       `json:"comments" yaml:"comments"`
	Tag       string    `json:"tag,omitempty" yaml:"tag,omitempty"`
}

// RowSlot is a Slot that records what was bound to it and lets callers
// trigger its interactions.
type RowSlot struct {
	mu  sync.Mutex
	row Row

	clicks        chan struct{}
	commentClicks chan struct{}
	longClicks    chan struct{}
	done          chan struct{}
	closeOnce     sync.Once
}

func NewRowSlot() *RowSlot {
	return &RowSlot{
		clicks:        make(chan struct{}),
		commentClicks: make(chan struct{}),
		longClicks:    make(chan struct{}),
		done:          make(chan struct{}),
	}
}

func (s *RowSlot) Title(v string) { s.set(func(r *Row) { r.Title = v }) }
func (s *RowSlot) Score(v *Score) { s.set(func(r *Row) { r.Score = v }) }
func (s *RowSlot) Timestamp(v time.Time) { s.set(func(r *Row) { r.Timestamp = v }) }
func (s *RowSlot) Author(v string) { s.set(func(r *Row) { r.Author = v }) }
func (s *RowSlot) Source(v string) { s.set(func(r *Row) { r.Source = v }) }
func (s *RowSlot) Comments(v int) { s.set(func(r *Row) { r.Comments = v }) }
func (s *RowSlot) Tag(v string) { s.set(func(r *Row) { r.Tag = v }) }

func (s *RowSlot) Clicks() <-chan struct{} { return s.clicks }
func (s *RowSlot) CommentClicks() <-chan struct{} { return s.commentClicks }
func (s *RowSlot) LongClicks() <-chan struct{} { return s.longClicks }
func (s *RowSlot) Done() <-chan struct{} { return s.done }

func (s *RowSlot) set(fn func(*Row)) {
	s.mu.Lock()
	fn(&s.row)
	s.mu.Unlock()
}

// Row returns a snapshot of the bound fields.
func (s *RowSlot) Row() Row {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.row
}

// Click delivers a primary click. It reports false if the slot is closed or
// nothing is subscribed before the timeout.
func (s *RowSlot) Click(timeout time.Duration) bool { return s.emit(s.clicks, timeout) }

// CommentClick delivers a click on the comment area.
func (s *RowSlot) CommentClick(timeout time.Duration) bool {
	return s.emit(s.commentClicks, timeout)
}

// LongClick delivers a long press.
func (s *RowSlot) LongClick(timeout time.Duration) bool { return s.emit(s.longClicks, timeout) }

func (s *RowSlot) emit(ch chan struct{}, timeout time.Duration) bool {
	t := time.NewTimer(timeout)
	defer t.Stop()
	select {
	case <-s.done:
		return false
	case ch <- struct{}{}:
		return true
	case <-t.C:
		return false
	}
}

// Close recycles the slot, ending its subscriptions.
func (s *RowSlot) Close() {
	s.closeOnce.Do(func() { close(s.done) })
}

// CloseAll closes every slot.
func CloseAll(slots []*RowSlot) {
	for _, s := range slots {
		s.Close()
	}
}
