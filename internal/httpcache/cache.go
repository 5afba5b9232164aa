package httpcache

import (
	"bytes"
	"net/http"

	ghcache "github.com/gregjones/httpcache"
)

// HeaderFromCache is set to "1" on responses served from the cache.
const HeaderFromCache = ghcache.XFromCache

// Cache stores serialized responses keyed by request URL.
type Cache = ghcache.Cache

// NewMemoryCache returns a process-local Cache.
func NewMemoryCache() Cache {
	return ghcache.NewMemoryCache()
}

// NewTransport serves fresh responses of next from cache, using the max-age
// next reports. The cache key is the URL as seen by the returned transport,
// before any rewrite below it. Only 200 responses are kept. A nil cache
// disables caching.
func NewTransport(next http.RoundTripper, cache Cache) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	if cache == nil {
		return next
	}
	t := ghcache.NewTransport(okOnly{cache})
	t.Transport = next
	return t
}

// okOnly drops non-200 responses; the interceptor stamps a max-age onto
// errors too.
type okOnly struct {
	Cache
}

func (c okOnly) Set(key string, resp []byte) {
	if !statusOK(resp) {
		c.Cache.Delete(key)
		return
	}
	c.Cache.Set(key, resp)
}

// statusOK reports whether a dumped response has status 200.
func statusOK(dump []byte) bool {
	line, _, _ := bytes.Cut(dump, []byte("\n"))
	f := bytes.Fields(line)
	return len(f) >= 2 && string(f[1]) == "200"
}
