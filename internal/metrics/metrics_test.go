package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/booknotes/internal/catalog"
)

func sampleValue(t *testing.T, c *Collector, name string, labels map[string]string) float64 {
	t.Helper()

	families, err := c.Registry().Gather()
	require.NoError(t, err)

	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
	next:
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if want, ok := labels[lp.GetName()]; ok && want != lp.GetValue() {
					continue next
				}
			}
			if m.GetCounter() != nil {
				return m.GetCounter().GetValue()
			}
			if m.GetHistogram() != nil {
				return float64(m.GetHistogram().GetSampleCount())
			}
			return m.GetGauge().GetValue()
		}
	}
	return 0
}

func TestResult(t *testing.T) {
	assert.Equal(t, ResultOK, Result(nil))
	assert.Equal(t, ResultNotFound, Result(catalog.ErrNotFound))
	assert.Equal(t, ResultInvalid, Result(&catalog.ValidationError{Fields: map[string]string{"title": "is required"}}))
	assert.Equal(t, ResultError, Result(catalog.Failed("create book")))
	assert.Equal(t, ResultError, Result(errors.New("boom")))
}

func TestCollector_ObserveOperation(t *testing.T) {
	c := New()

	c.ObserveOperation("create book", 3*time.Millisecond, nil)
	c.ObserveOperation("create book", time.Millisecond, nil)
	c.ObserveOperation("delete book", time.Millisecond, catalog.ErrNotFound)

	assert.Equal(t, 2.0, sampleValue(t, c, "booknotes_catalog_operations_total",
		map[string]string{"operation": "create book", "result": ResultOK}))
	assert.Equal(t, 1.0, sampleValue(t, c, "booknotes_catalog_operations_total",
		map[string]string{"operation": "delete book", "result": ResultNotFound}))
	assert.Equal(t, 2.0, sampleValue(t, c, "booknotes_catalog_operation_duration_seconds",
		map[string]string{"operation": "create book"}))
}

func TestCollector_ObserveTask(t *testing.T) {
	c := New()

	c.ObserveTask("cleanup_orphan_content", nil)
	c.ObserveTask("cleanup_orphan_content", errors.New("boom"))

	assert.Equal(t, 1.0, sampleValue(t, c, "booknotes_tasks_processed_total",
		map[string]string{"queue": "cleanup_orphan_content", "result": ResultOK}))
	assert.Equal(t, 1.0, sampleValue(t, c, "booknotes_tasks_processed_total",
		map[string]string{"queue": "cleanup_orphan_content", "result": ResultError}))
}

func TestCollector_MiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c := New()

	router := gin.New()
	router.Use(c.Middleware())
	router.GET("/api/books/:id", func(ctx *gin.Context) {
		ctx.Status(http.StatusNotFound)
	})
	router.GET("/metrics", gin.WrapH(c.Handler()))

	for _, path := range []string{"/api/books/1", "/api/books/2", "/nowhere"} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", path, nil)
		router.ServeHTTP(w, req)
	}

	assert.Equal(t, 2.0, sampleValue(t, c, "booknotes_http_requests_total",
		map[string]string{"method": "GET", "path": "/api/books/:id", "status": "404"}))
	assert.Equal(t, 1.0, sampleValue(t, c, "booknotes_http_requests_total",
		map[string]string{"path": "unmatched"}))
	assert.Equal(t, 0.0, sampleValue(t, c, "booknotes_http_requests_in_progress", nil))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/metrics", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "booknotes_http_requests_total")
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestNew_IndependentRegistries(t *testing.T) {
	a, b := New(), New()
	a.ObserveOperation("count books", time.Millisecond, nil)

	assert.Equal(t, 1.0, sampleValue(t, a, "booknotes_catalog_operations_total", map[string]string{"operation": "count books"}))
	assert.Equal(t, 0.0, sampleValue(t, b, "booknotes_catalog_operations_total", map[string]string{"operation": "count books"}))
}
