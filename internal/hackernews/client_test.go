package hackernews

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"catchup/internal/httpcache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	ids      []int
	failID   int
	delay    func(id int) time.Duration
	mu       sync.Mutex
	paths    []string
	inFlight int32
	peak     int32
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.paths = append(f.paths, r.URL.Path)
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.URL.Path == "/v0/topstories.json":
		parts := make([]string, len(f.ids))
		for i, id := range f.ids {
			parts[i] = strconv.Itoa(id)
		}
		fmt.Fprintf(w, "[%s]", strings.Join(parts, ","))
	case strings.HasPrefix(r.URL.Path, "/v0/item/") && strings.HasSuffix(r.URL.Path, ".json"):
		n := atomic.AddInt32(&f.inFlight, 1)
		defer atomic.AddInt32(&f.inFlight, -1)
		for {
			p := atomic.LoadInt32(&f.peak)
			if n <= p || atomic.CompareAndSwapInt32(&f.peak, p, n) {
				break
			}
		}
		id, _ := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/v0/item/"), ".json"))
		if f.delay != nil {
			time.Sleep(f.delay(id))
		}
		if id == f.failID {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		fmt.Fprintf(w, `{"id":%d,"type":"story","by":"user%d","title":"Story %d","score":%d,"time":1700000000,"url":"https://example.com/%d"}`, id, id, id, id, id)
	default:
		http.NotFound(w, r)
	}
}

func seq(n int) []int {
	ids := make([]int, n)
	for i := range ids {
		ids[i] = 1000 + i
	}
	return ids
}

func newTestClient(srv *httptest.Server, concurrency int) *Client {
	return NewClient(Config{BaseAPI: srv.URL + "/v0", Concurrency: concurrency})
}

func TestTopStoryItemsResolvesAllInRequestOrder(t *testing.T) {
	api := &fakeAPI{
		ids: seq(10),
		// earlier ids answer later, so completion order is reversed
		delay: func(id int) time.Duration { return time.Duration(1010-id) * 3 * time.Millisecond },
	}
	srv := httptest.NewServer(api)
	defer srv.Close()

	items, err := newTestClient(srv, 10).TopStoryItems(context.Background(), DefaultLimit)
	require.NoError(t, err)
	require.Len(t, items, 10)
	for i, it := range items {
		assert.Equal(t, api.ids[i], it.ID)
	}
	assert.Equal(t, "user1000", items[0].By)
	assert.Equal(t, time.Unix(1700000000, 0).UTC(), items[0].Time.Time)
}

func TestTopStoryItemsCapsAtLimit(t *testing.T) {
	api := &fakeAPI{ids: seq(75)}
	srv := httptest.NewServer(api)
	defer srv.Close()

	items, err := newTestClient(srv, 0).TopStoryItems(context.Background(), DefaultLimit)
	require.NoError(t, err)
	assert.Len(t, items, 50)
	assert.Equal(t, 1049, items[49].ID)
}

func TestTopStoryItemsFailsWhenAnyItemFails(t *testing.T) {
	api := &fakeAPI{ids: seq(20), failID: 1013}
	srv := httptest.NewServer(api)
	defer srv.Close()

	items, err := newTestClient(srv, 4).TopStoryItems(context.Background(), DefaultLimit)
	require.Error(t, err)
	assert.Nil(t, items)
	assert.Contains(t, err.Error(), "status 500")
}

func TestTopStoriesFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := newTestClient(srv, 1).TopStoryItems(context.Background(), DefaultLimit)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/topstories status 503")
}

func TestItemsRespectsConcurrencyBound(t *testing.T) {
	api := &fakeAPI{ids: seq(30), delay: func(int) time.Duration { return 10 * time.Millisecond }}
	srv := httptest.NewServer(api)
	defer srv.Close()

	items, err := newTestClient(srv, 3).Items(context.Background(), api.ids)
	require.NoError(t, err)
	assert.Len(t, items, 30)
	assert.LessOrEqual(t, atomic.LoadInt32(&api.peak), int32(3))
}

func TestItemNullIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("null"))
	}))
	defer srv.Close()

	_, err := newTestClient(srv, 1).Item(context.Background(), 7)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "item 7 not found")
}

func TestClientCachesThroughStore(t *testing.T) {
	api := &fakeAPI{ids: seq(2)}
	srv := httptest.NewServer(api)
	defer srv.Close()

	c := NewClient(Config{BaseAPI: srv.URL + "/v0", Store: httpcache.NewMemoryCache()})
	for i := 0; i < 3; i++ {
		_, err := c.TopStoryItems(context.Background(), DefaultLimit)
		require.NoError(t, err)
	}
	api.mu.Lock()
	defer api.mu.Unlock()
	assert.Len(t, api.paths, 3, "index plus two items, fetched once")
}
