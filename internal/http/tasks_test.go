package http

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/mikestefanello/backlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/booknotes/internal/entities"
)

type fakeCleanupQueue struct {
	reasons []string
	status  backlite.TaskStatus
	err     error
}

func (q *fakeCleanupQueue) EnqueueOrphanContentCleanup(_ context.Context, reason string) (string, error) {
	if q.err != nil {
		return "", q.err
	}
	q.reasons = append(q.reasons, reason)
	return "task-1", nil
}

func (q *fakeCleanupQueue) Status(_ context.Context, taskID string) (backlite.TaskStatus, error) {
	if q.err != nil {
		return 0, q.err
	}
	if taskID != "task-1" {
		return backlite.TaskStatusNotFound, nil
	}
	return q.status, nil
}

func TestTasksController_CleanupContent(t *testing.T) {
	t.Run("enqueues when a queue is configured", func(t *testing.T) {
		queue := &fakeCleanupQueue{}
		router, _ := setupBooksRouter(t, func(cfg *RouterConfig) {
			cfg.CleanupQueue = queue
		})

		w := doRequest(router, http.MethodPost, "/api/admin/content/cleanup", nil)

		assert.Equal(t, http.StatusAccepted, w.Code)
		assert.Contains(t, w.Body.String(), `"task_id":"task-1"`)
		assert.Equal(t, []string{"api"}, queue.reasons)
	})

	t.Run("runs inline without a queue", func(t *testing.T) {
		db, repo := setupCatalog(t)
		router := NewRouter(RouterConfig{Catalog: repo, Database: db, Cleaner: repo})

		// Insert an orphan row directly, bypassing the repository.
		require.NoError(t, db.DB.Create(&entities.Content{ID: "orphan", BookID: "TEMP"}).Error)

		w := doRequest(router, http.MethodPost, "/api/admin/content/cleanup", nil)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Contains(t, w.Body.String(), `"removed":1`)
	})

	t.Run("reports enqueue failures", func(t *testing.T) {
		router, _ := setupBooksRouter(t, func(cfg *RouterConfig) {
			cfg.CleanupQueue = &fakeCleanupQueue{err: errors.New("queue closed")}
		})

		w := doRequest(router, http.MethodPost, "/api/admin/content/cleanup", nil)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "queue closed")
	})
}

func TestTasksController_GetTaskStatus(t *testing.T) {
	queue := &fakeCleanupQueue{status: backlite.TaskStatusSuccess}
	router, _ := setupBooksRouter(t, func(cfg *RouterConfig) {
		cfg.CleanupQueue = queue
	})

	w := doRequest(router, http.MethodGet, "/api/tasks/task-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id": "task-1", "status": "success"}`, w.Body.String())

	w = doRequest(router, http.MethodGet, "/api/tasks/other", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "not_found")

	withoutQueue, _ := setupBooksRouter(t, nil)
	assert.Equal(t, http.StatusNotFound, doRequest(withoutQueue, http.MethodGet, "/api/tasks/task-1", nil).Code)
}

func TestTaskStatusToString(t *testing.T) {
	assert.Equal(t, "pending", taskStatusToString(backlite.TaskStatusPending))
	assert.Equal(t, "running", taskStatusToString(backlite.TaskStatusRunning))
	assert.Equal(t, "failure", taskStatusToString(backlite.TaskStatusFailure))
	assert.Equal(t, "unknown", taskStatusToString(backlite.TaskStatus(99)))
}
