package demo

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(m *Middleware) *gin.Engine {
	router := gin.New()
	router.Use(m.InjectContext())
	router.Use(m.Handler())
	handler := func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	}
	router.GET("/api/books", handler)
	router.HEAD("/api/books", handler)
	router.OPTIONS("/api/books", handler)
	router.POST("/api/books", handler)
	router.PUT("/api/books/:id", handler)
	router.PATCH("/api/books/:id", handler)
	router.DELETE("/api/books/:id", handler)
	return router
}

func TestNewMiddleware(t *testing.T) {
	m := NewMiddleware(true)
	if !m.IsEnabled() {
		t.Error("Expected middleware to be enabled")
	}

	m = NewMiddleware(false)
	if m.IsEnabled() {
		t.Error("Expected middleware to be disabled")
	}

	var nilMiddleware *Middleware
	if nilMiddleware.IsEnabled() {
		t.Error("Expected nil middleware to be disabled")
	}
}

func TestMiddleware_AllowsReadOnlyMethods(t *testing.T) {
	router := newTestRouter(NewMiddleware(true))

	for _, method := range []string{http.MethodGet, http.MethodHead, http.MethodOptions} {
		req := httptest.NewRequest(method, "/api/books", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("%s: expected status 200, got %d", method, w.Code)
		}
	}
}

func TestMiddleware_BlocksWrites(t *testing.T) {
	router := newTestRouter(NewMiddleware(true))

	requests := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/books"},
		{http.MethodPut, "/api/books/1"},
		{http.MethodPatch, "/api/books/1"},
		{http.MethodDelete, "/api/books/1"},
	}

	for _, r := range requests {
		req := httptest.NewRequest(r.method, r.path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusForbidden {
			t.Errorf("%s %s: expected status 403, got %d", r.method, r.path, w.Code)
			continue
		}

		var body map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if body["error"] != BlockedMessage {
			t.Errorf("unexpected error message: %v", body["error"])
		}
		if body["demo_mode"] != true {
			t.Errorf("expected demo_mode flag in response")
		}
	}
}

func TestMiddleware_DisabledAllowsAllRequests(t *testing.T) {
	router := newTestRouter(NewMiddleware(false))

	req := httptest.NewRequest(http.MethodDelete, "/api/books/1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
}

func TestMiddleware_InjectContext(t *testing.T) {
	for _, enabled := range []bool{true, false} {
		m := NewMiddleware(enabled)
		router := gin.New()
		router.Use(m.InjectContext())

		var got any
		router.GET("/", func(c *gin.Context) {
			got, _ = c.Get(ContextKeyDemoMode)
			c.Status(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		router.ServeHTTP(httptest.NewRecorder(), req)

		if got != enabled {
			t.Errorf("expected demo mode %v in context, got %v", enabled, got)
		}
	}
}
