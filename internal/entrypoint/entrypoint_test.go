package entrypoint

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/booknotes/internal/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.NewConfig()
	cfg.Database.Path = filepath.Join(t.TempDir(), "booknotes.db")
	cfg.Database.LogLevel = "silent"
	return cfg
}

func serve(app *App, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	app.Router.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func TestBuild_FullStack(t *testing.T) {
	app, err := Build(testConfig(t), "test")
	require.NoError(t, err)
	defer app.Close()

	require.NotNil(t, app.Metrics)
	require.NotNil(t, app.Tasks)
	require.NotNil(t, app.Scheduler)

	require.NoError(t, app.Start())
	assert.True(t, app.Tasks.IsRunning())
	assert.True(t, app.Scheduler.IsRunning())

	w := serve(app, http.MethodGet, "/health")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"tasks": "running"`)

	w = serve(app, http.MethodPost, "/api/admin/content/cleanup")
	assert.Equal(t, http.StatusAccepted, w.Code)

	w = serve(app, http.MethodGet, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "booknotes_http_requests_total")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	app.Shutdown(ctx)
	assert.False(t, app.Tasks.IsRunning())
	assert.False(t, app.Scheduler.IsRunning())
}

func TestBuild_MinimalStack(t *testing.T) {
	cfg := testConfig(t)
	cfg.Tasks.Enabled = false
	cfg.Metrics.Enabled = false
	cfg.Demo.Enabled = true

	app, err := Build(cfg, "test")
	require.NoError(t, err)
	defer app.Close()

	assert.Nil(t, app.Metrics)
	assert.Nil(t, app.Tasks)
	assert.Nil(t, app.Scheduler)
	require.NoError(t, app.Start())

	assert.Equal(t, http.StatusNotFound, serve(app, http.MethodGet, "/metrics").Code)
	assert.Equal(t, http.StatusForbidden, serve(app, http.MethodPost, "/api/admin/content/cleanup").Code)

	w := serve(app, http.MethodGet, "/health")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"tasks": "disabled"`)

	app.Shutdown(context.Background())
}

func TestBuild_InvalidConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.Catalog.SearchMode = "fuzzy"

	_, err := Build(cfg, "test")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "SEARCH_MODE"))
}
