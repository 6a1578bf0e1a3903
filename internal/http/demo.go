package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/booknotes/internal/demo"
)

// DemoController reports whether the catalog is in read-only demo mode.
type DemoController struct {
	middleware *demo.Middleware
}

func NewDemoController(middleware *demo.Middleware) *DemoController {
	return &DemoController{middleware: middleware}
}

// DemoStatusResponse describes what the catalog accepts in the current mode.
type DemoStatusResponse struct {
	Enabled        bool     `json:"enabled"`
	ReadOnly       bool     `json:"read_only"`
	AllowedMethods []string `json:"allowed_methods,omitempty"`
	Message        string   `json:"message"`
}

// GetStatus handles GET /api/demo/status
func (dc *DemoController) GetStatus(c *gin.Context) {
	if !dc.middleware.IsEnabled() {
		c.JSON(http.StatusOK, DemoStatusResponse{
			Message: "Demo mode is not active",
		})
		return
	}

	c.JSON(http.StatusOK, DemoStatusResponse{
		Enabled:        true,
		ReadOnly:       true,
		AllowedMethods: demo.ReadOnlyMethods(),
		Message:        "The catalog is read-only. " + demo.BlockedMessage,
	})
}
