package middleware

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
)

// ResponseCache caches roster-derived GET responses. Cache keys include the
// roster version, so every committed roster mutation implicitly invalidates
// stale entries without coordination. Resources that change outside the
// roster version (drafts, tags, the timestamped export) must be listed in
// skipPaths or a hit would replay stale state until the TTL expires.
type ResponseCache struct {
	cache     *cache.Cache
	version   func() uint64
	skipPaths []string
}

type cachedResponse struct {
	status      int
	contentType string
	body        []byte
}

type captureWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func NewResponseCache(ttl, cleanupInterval time.Duration, version func() uint64, skipPaths ...string) *ResponseCache {
	return &ResponseCache{
		cache:     cache.New(ttl, cleanupInterval),
		version:   version,
		skipPaths: skipPaths,
	}
}

func (rc *ResponseCache) Cache() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet || rc.skipped(c.Request.URL.Path) {
			c.Next()
			return
		}

		key := fmt.Sprintf("%d:%s?%s", rc.version(), c.Request.URL.Path, c.Request.URL.RawQuery)
		if entry, ok := rc.cache.Get(key); ok {
			resp := entry.(cachedResponse)
			c.Data(resp.status, resp.contentType, resp.body)
			c.Abort()
			return
		}

		w := &captureWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = w
		c.Next()

		if w.Status() == http.StatusOK {
			rc.cache.SetDefault(key, cachedResponse{
				status:      w.Status(),
				contentType: w.Header().Get("Content-Type"),
				body:        w.body.Bytes(),
			})
		}
	}
}

func (rc *ResponseCache) skipped(path string) bool {
	for _, p := range rc.skipPaths {
		if strings.Contains(path, p) {
			return true
		}
	}
	return false
}
