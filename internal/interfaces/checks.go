package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/booknotes/internal/database"
	"github.com/mrlokans/booknotes/internal/database/books"
	"github.com/mrlokans/booknotes/internal/exporters"
	"github.com/mrlokans/booknotes/internal/http"
	"github.com/mrlokans/booknotes/internal/metrics"
	"github.com/mrlokans/booknotes/internal/scheduler"
	"github.com/mrlokans/booknotes/internal/tasks"
)

// =============================================================================
// Data Access Layer
// =============================================================================

// Catalog Repository implementations
var _ http.CatalogStore = (*books.Repository)(nil)
var _ http.ContentCleaner = (*books.Repository)(nil)
var _ exporters.CatalogReader = (*books.Repository)(nil)
var _ database.Seeder = (*books.Repository)(nil)
var _ tasks.OrphanContentCleaner = (*books.Repository)(nil)

// Health checks
var _ http.Pinger = (*database.Database)(nil)

// =============================================================================
// Background Processing
// =============================================================================

var _ http.CleanupQueue = (*tasks.Client)(nil)
var _ http.TaskRunner = (*tasks.Client)(nil)
var _ scheduler.CleanupEnqueuer = (*tasks.Client)(nil)

// =============================================================================
// Observability
// =============================================================================

var _ books.Observer = (*metrics.Collector)(nil)
var _ tasks.Observer = (*metrics.Collector)(nil)

// =============================================================================
// Export
// =============================================================================

var _ exporters.BookExporter = (*exporters.MarkdownExporter)(nil)
