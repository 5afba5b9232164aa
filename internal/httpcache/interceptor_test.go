package httpcache

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterceptorAppendsSuffixAndStampsMaxAge(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Cache-Control", "no-cache")
		w.Write([]byte(`{"id":42}`))
	}))
	defer srv.Close()

	client := &http.Client{Transport: NewInterceptor(nil, ".json", 5*time.Minute)}
	resp, err := client.Get(srv.URL + "/v0/item/42")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "/v0/item/42.json", gotPath)
	assert.Equal(t, "public, max-age=300", resp.Header.Get("Cache-Control"))
}

func TestInterceptorWithoutSuffixKeepsPath(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte("<feed/>"))
	}))
	defer srv.Close()

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/Slashdot/slashdotMainatom", nil)
	require.NoError(t, err)
	resp, err := NewInterceptor(nil, "", 30*time.Minute).RoundTrip(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "/Slashdot/slashdotMainatom", gotPath)
	assert.Equal(t, "/Slashdot/slashdotMainatom", req.URL.Path)
	assert.Equal(t, "public, max-age=1800", resp.Header.Get("Cache-Control"))
}

func TestInterceptorDoesNotMutateCallerRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "[]")
	}))
	defer srv.Close()

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/v0/topstories", nil)
	require.NoError(t, err)
	resp, err := NewInterceptor(nil, ".json", time.Minute).RoundTrip(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "/v0/topstories", req.URL.Path)
}
