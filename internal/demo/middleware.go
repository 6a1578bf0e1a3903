package demo

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// BlockedMessage is returned for every write attempted in demo mode.
const BlockedMessage = "This action is disabled in demo mode"

// Middleware blocks write operations in demo mode.
// Read-only operations (GET, HEAD, OPTIONS) are always allowed.
type Middleware struct {
	enabled bool
}

// NewMiddleware creates a demo mode middleware.
func NewMiddleware(enabled bool) *Middleware {
	return &Middleware{enabled: enabled}
}

// IsEnabled returns whether demo mode is active.
func (m *Middleware) IsEnabled() bool {
	return m != nil && m.enabled
}

// Handler returns a Gin middleware that blocks write operations.
func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.IsEnabled() || isReadOnly(c.Request.Method) {
			c.Next()
			return
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error":     BlockedMessage,
			"demo_mode": true,
		})
	}
}

// ReadOnlyMethods lists the HTTP methods that pass through in demo mode.
func ReadOnlyMethods() []string {
	return []string{http.MethodGet, http.MethodHead, http.MethodOptions}
}

func isReadOnly(method string) bool {
	for _, m := range ReadOnlyMethods() {
		if m == method {
			return true
		}
	}
	return false
}

// ContextKey for storing demo mode state in request context.
const ContextKeyDemoMode = "demo_mode"

// InjectContext middleware adds the demo mode flag to the request context.
func (m *Middleware) InjectContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextKeyDemoMode, m.IsEnabled())
		c.Next()
	}
}
