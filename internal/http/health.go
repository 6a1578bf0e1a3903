package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthResponse struct {
	Status  string            `json:"status"`
	Time    string            `json:"time"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks"`
}

// TaskRunner reports whether the background workers are running.
type TaskRunner interface {
	IsRunning() bool
}

type HealthController struct {
	db      Pinger
	tasks   TaskRunner
	version string
}

func NewHealthController(db Pinger, tasks TaskRunner, version string) *HealthController {
	return &HealthController{
		db:      db,
		tasks:   tasks,
		version: version,
	}
}

func (h *HealthController) Status(c *gin.Context) {
	checks := make(map[string]string)
	status := "healthy"

	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			checks["database"] = "error: " + err.Error()
			status = "unhealthy"
		} else {
			checks["database"] = "ok"
		}
	} else {
		checks["database"] = "not configured"
	}

	// A stopped worker pool degrades cleanup only, so it never fails the check.
	switch {
	case h.tasks == nil:
		checks["tasks"] = "disabled"
	case h.tasks.IsRunning():
		checks["tasks"] = "running"
	default:
		checks["tasks"] = "stopped"
	}

	health := HealthResponse{
		Status:  status,
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Checks:  checks,
	}

	statusCode := http.StatusOK
	if status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.IndentedJSON(statusCode, health)
}
