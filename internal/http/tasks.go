package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"
)

// TasksController handles background cleanup endpoints.
type TasksController struct {
	queue   CleanupQueue
	cleaner ContentCleaner
}

// NewTasksController creates a new TasksController. With a nil queue cleanup
// requests run inline against cleaner.
func NewTasksController(queue CleanupQueue, cleaner ContentCleaner) *TasksController {
	return &TasksController{queue: queue, cleaner: cleaner}
}

// CleanupContent handles POST /api/admin/content/cleanup
// Enqueues an orphan content cleanup, or runs it immediately when no task
// queue is configured.
func (tc *TasksController) CleanupContent(c *gin.Context) {
	ctx := c.Request.Context()

	if tc.queue != nil {
		taskID, err := tc.queue.EnqueueOrphanContentCleanup(ctx, "api")
		if err != nil {
			respondInternalError(c, err, "enqueue content cleanup")
			return
		}
		respondAccepted(c, "content cleanup enqueued", gin.H{"task_id": taskID})
		return
	}

	if tc.cleaner == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "content cleanup is not available", Code: "unavailable"})
		return
	}

	removed, err := tc.cleaner.DeleteOrphanContent(ctx)
	if err != nil {
		respondCatalogError(c, err, "content cleanup")
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "content cleanup finished", Data: gin.H{"removed": removed}})
}

// GetTaskStatus handles GET /api/tasks/:id
// Returns the status of a specific task.
func (tc *TasksController) GetTaskStatus(c *gin.Context) {
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if tc.queue == nil {
		respondNotFound(c, "task")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	status, err := tc.queue.Status(ctx, taskID)
	if err != nil {
		respondInternalError(c, err, "task status")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":     taskID,
		"status": taskStatusToString(status),
	})
}

func taskStatusToString(status backlite.TaskStatus) string {
	switch status {
	case backlite.TaskStatusPending:
		return "pending"
	case backlite.TaskStatusRunning:
		return "running"
	case backlite.TaskStatusSuccess:
		return "success"
	case backlite.TaskStatusFailure:
		return "failure"
	case backlite.TaskStatusNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}
