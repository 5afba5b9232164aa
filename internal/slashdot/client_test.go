package slashdot

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const atomFeed = `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom" xmlns:slash="http://purl.org/rss/1.0/modules/slash/">
  <title>Slashdot</title>
  <id>https://slashdot.org/</id>
  <entry>
    <id>https://tech.slashdot.org/story/24/01/02/1234/first</id>
    <title>First &amp; Foremost</title>
    <updated>2024-01-02T15:04:05+00:00</updated>
    <author><name>msmash</name></author>
    <slash:department>from-the-first-dept</slash:department>
    <slash:section>technology</slash:section>
    <slash:comments>42</slash:comments>
    <summary type="html">Some text&nbsp;<br>with html</summary>
  </entry>
  <entry>
    <id>https://news.slashdot.org/story/24/01/02/2345/second</id>
    <title>Second</title>
    <updated>2024-01-02T16:00:00Z</updated>
    <author><name>BeauHD</name></author>
    <slash:department>second-dept</slash:department>
    <slash:section>news</slash:section>
    <slash:comments> 7 </slash:comments>
  </entry>
</feed>`

func TestParseAtomFeed(t *testing.T) {
	feed, err := Parse([]byte(atomFeed))
	require.NoError(t, err)
	require.Len(t, feed.Entries, 2)

	e := feed.Entries[0]
	assert.Equal(t, "https://tech.slashdot.org/story/24/01/02/1234/first", e.ID)
	assert.Equal(t, "First & Foremost", e.Title)
	assert.Equal(t, "msmash", e.Author.Name)
	assert.Equal(t, "from-the-first-dept", e.Department)
	assert.Equal(t, "technology", e.Section)
	assert.Equal(t, 42, e.Comments)
	assert.Equal(t, 7, feed.Entries[1].Comments)
}

func TestParseLatin1Feed(t *testing.T) {
	doc := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?><feed><entry><id>x</id><title>Caf\xe9</title></entry></feed>"
	feed, err := Parse([]byte(doc))
	require.NoError(t, err)
	require.Len(t, feed.Entries, 1)
	assert.Equal(t, "Café", feed.Entries[0].Title)
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse([]byte("not xml at all"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode feed")
}

func TestMainFetchesFeed(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/atom+xml")
		w.Write([]byte(atomFeed))
	}))
	defer srv.Close()

	c := NewClient(Config{FeedURL: srv.URL + "/Slashdot/slashdotMainatom"})
	feed, err := c.Main(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/Slashdot/slashdotMainatom", gotPath)
	assert.Len(t, feed.Entries, 2)
}

func TestMainStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "slow down", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := NewClient(Config{FeedURL: srv.URL}).Main(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
	assert.Contains(t, err.Error(), "slow down")
}

func TestParseTimestamp(t *testing.T) {
	want := time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC)
	for _, in := range []string{"2024-01-02T15:04:05Z", "2024-01-02T15:04:05+00:00", "2024-01-02T15:04:05.000Z", "2024-01-02T15:04:05+0000"} {
		got, err := ParseTimestamp(in)
		require.NoError(t, err, in)
		assert.True(t, want.Equal(got), in)
	}
	_, err := ParseTimestamp("yesterday")
	assert.Error(t, err)
}
