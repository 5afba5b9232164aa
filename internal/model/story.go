package model

import (
	"bytes"
	"encoding/json"
	"time"
)

// Story is a Hacker News item as returned by /v0/item/{id}.json.
type Story struct {
	ID    int       `json:"id"`
	Type  string    `json:"type"`
	By    string    `json:"by"`
	Title string    `json:"title"`
	URL   string    `json:"url,omitempty"`
	Score int       `json:"score"`
	Time  EpochTime `json:"time"`
	Kids  []int     `json:"kids,omitempty"`
}

// CommentsCount is the number of direct child comments, zero when absent.
func (s Story) CommentsCount() int {
	return len(s.Kids)
}

// EpochTime decodes a numeric epoch-seconds JSON value into a time.Time.
type EpochTime struct {
	time.Time
}

// UnmarshalJSON accepts a number of seconds since the Unix epoch or null.
func (t *EpochTime) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	var secs int64
	if err := json.Unmarshal(b, &secs); err != nil {
		return err
	}
	t.Time = time.Unix(secs, 0).UTC()
	return nil
}

// MarshalJSON writes the time back as epoch seconds.
func (t EpochTime) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Unix())
}
