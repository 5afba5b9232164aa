package scrape

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const articleHTML = `<html><head><title>Site | Big News</title>
<meta property="og:title" content="Big News">
<script>var x = 1;</script></head>
<body>
<nav><p>Home</p></nav>
<article><h1>Big News</h1><p>First   paragraph.</p><p></p><p>Second
paragraph.</p></article>
<footer><p>Copyright</p></footer>
</body></html>`

func TestExtractPrefersArticle(t *testing.T) {
	p, err := Extract([]byte(articleHTML))
	require.NoError(t, err)
	assert.Equal(t, "Big News", p.Title)
	assert.Equal(t, "First paragraph.\n\nSecond paragraph.", p.Text)
}

func TestExtractFallsBackToBody(t *testing.T) {
	p, err := Extract([]byte(`<html><head><title> Plain </title></head><body><p>Only text.</p></body></html>`))
	require.NoError(t, err)
	assert.Equal(t, "Plain", p.Title)
	assert.Equal(t, "Only text.", p.Text)
}

func TestScrape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/story" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(articleHTML))
	}))
	defer srv.Close()

	s := New(5 * time.Second)
	p, err := s.Scrape(context.Background(), srv.URL+"/story")
	require.NoError(t, err)
	assert.Equal(t, "Big News", p.Title)

	_, err = s.Scrape(context.Background(), srv.URL+"/missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")

	_, err = s.Scrape(context.Background(), "not a url")
	assert.Error(t, err)
}
