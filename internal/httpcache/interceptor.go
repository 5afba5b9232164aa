package httpcache

import (
	"fmt"
	"net/http"
	"time"
)

// Interceptor sits between the cache and the network. It optionally appends a
// fixed suffix to the request path and force-stamps a public max-age
// Cache-Control directive onto every response, whatever the upstream sent.
type Interceptor struct {
	Next       http.RoundTripper
	PathSuffix string
	MaxAge     time.Duration
}

// NewInterceptor wraps next (http.DefaultTransport when nil).
func NewInterceptor(next http.RoundTripper, pathSuffix string, maxAge time.Duration) *Interceptor {
	if next == nil {
		next = http.DefaultTransport
	}
	return &Interceptor{Next: next, PathSuffix: pathSuffix, MaxAge: maxAge}
}

func (i *Interceptor) RoundTrip(req *http.Request) (*http.Response, error) {
	if i.PathSuffix != "" {
		req = req.Clone(req.Context())
		req.URL.Path += i.PathSuffix
		if req.URL.RawPath != "" {
			req.URL.RawPath += i.PathSuffix
		}
	}
	resp, err := i.Next.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	resp.Header.Set("Cache-Control", CacheControl(i.MaxAge))
	return resp, nil
}

// CacheControl renders the directive stamped by the interceptor.
func CacheControl(maxAge time.Duration) string {
	return fmt.Sprintf("public, max-age=%d", int64(maxAge/time.Second))
}
