package http

import (
	"github.com/mrlokans/booknotes/internal/demo"
	"github.com/mrlokans/booknotes/internal/metrics"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router. Optional dependencies are left nil.
type RouterConfig struct {
	// Core dependencies
	Catalog  CatalogStore
	Database Pinger

	// Orphan content cleanup. Cleaner is used inline when CleanupQueue is nil.
	Cleaner      ContentCleaner
	CleanupQueue CleanupQueue
	Tasks        TaskRunner

	// Metrics exposes /metrics and instruments requests when set
	Metrics *metrics.Collector

	// Demo mode
	DemoMiddleware *demo.Middleware

	// Application info
	Version string
}
