package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cacheTestRouter(version *uint64, skipPaths ...string) (*gin.Engine, *int) {
	gin.SetMode(gin.TestMode)
	rc := NewResponseCache(time.Minute, 2*time.Minute, func() uint64 { return *version }, skipPaths...)

	hits := 0
	r := gin.New()
	r.Use(rc.Cache())
	r.GET("/api/v1/patients", func(c *gin.Context) {
		hits++
		c.JSON(http.StatusOK, gin.H{"hits": hits})
	})
	r.GET("/api/v1/drafts/d1", func(c *gin.Context) {
		hits++
		c.JSON(http.StatusOK, gin.H{"canSave": hits > 1})
	})
	r.GET("/api/v1/export", func(c *gin.Context) {
		hits++
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("chartpro-lite-%d.json", hits)))
		c.Data(http.StatusOK, "application/json", []byte("[]"))
	})
	return r, &hits
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestCacheServesRepeatRosterReads(t *testing.T) {
	version := uint64(1)
	r, hits := cacheTestRouter(&version)

	first := get(r, "/api/v1/patients")
	second := get(r, "/api/v1/patients")

	assert.Equal(t, 1, *hits, "second read is served from cache")
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, http.StatusOK, second.Code)
}

func TestCacheInvalidatedByVersionBump(t *testing.T) {
	version := uint64(1)
	r, hits := cacheTestRouter(&version)

	get(r, "/api/v1/patients")
	version++
	get(r, "/api/v1/patients")

	assert.Equal(t, 2, *hits, "a committed mutation invalidates cached reads")
}

func TestCacheSkipsDraftReads(t *testing.T) {
	version := uint64(1)
	r, _ := cacheTestRouter(&version, "/drafts", "/export")

	first := get(r, "/api/v1/drafts/d1")
	assert.Contains(t, first.Body.String(), `"canSave":false`)

	// Draft state changes without a roster version bump; the gate must be
	// re-evaluated on every read, never replayed from cache.
	second := get(r, "/api/v1/drafts/d1")
	assert.Contains(t, second.Body.String(), `"canSave":true`)
}

func TestCacheSkipsExport(t *testing.T) {
	version := uint64(1)
	r, hits := cacheTestRouter(&version, "/drafts", "/export")

	first := get(r, "/api/v1/export")
	second := get(r, "/api/v1/export")

	assert.Equal(t, 2, *hits)
	assert.NotEmpty(t, second.Header().Get("Content-Disposition"),
		"every export carries its own attachment filename")
	assert.NotEqual(t, first.Header().Get("Content-Disposition"), second.Header().Get("Content-Disposition"))
}

func TestCacheIgnoresNonGET(t *testing.T) {
	version := uint64(1)
	gin.SetMode(gin.TestMode)
	rc := NewResponseCache(time.Minute, 2*time.Minute, func() uint64 { return version })

	hits := 0
	r := gin.New()
	r.Use(rc.Cache())
	r.POST("/api/v1/patients", func(c *gin.Context) {
		hits++
		c.JSON(http.StatusCreated, gin.H{"hits": hits})
	})

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/patients", nil))
		require.Equal(t, http.StatusCreated, w.Code)
	}
	assert.Equal(t, 2, hits)
}
