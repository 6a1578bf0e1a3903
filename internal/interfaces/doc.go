// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - CatalogReader / CatalogWriter / CatalogStore: the catalog operations the
//     HTTP API needs (internal/http/stores.go)
//   - ContentCleaner / OrphanContentCleaner: orphan content removal
//     (internal/http/stores.go, internal/tasks/cleanup_content.go)
//   - exporters.CatalogReader: books and content for Markdown export
//     (internal/exporters/catalog_markdown.go)
//   - database.Seeder: sample data loading (internal/database/seed.go)
//
// All of them are implemented by books.Repository.
//
// ## Background Processing Interfaces
//
//   - CleanupQueue: enqueue cleanup and read task status (internal/http/stores.go)
//   - CleanupEnqueuer: used by the cron scheduler (internal/scheduler/content_cleanup.go)
//
// Both are implemented by tasks.Client.
//
// ## Observability Interfaces
//
//   - books.Observer: repository operation outcomes
//   - tasks.Observer: processed task outcomes
//
// Both are implemented by metrics.Collector.
//
// # Adding a New Background Task
//
//  1. Define the task and its queue config in internal/tasks/
//
//     type ReindexTask struct{}
//
//     func (t ReindexTask) Config() backlite.QueueConfig {
//         return backlite.QueueConfig{Name: "reindex", MaxAttempts: 1, Timeout: time.Minute}
//     }
//
//  2. Write a processor and a queue constructor
//
//     func NewReindexQueue(store Reindexer) backlite.Queue {
//         return backlite.NewQueue(func(ctx context.Context, task ReindexTask) error {
//             return store.Reindex(ctx)
//         })
//     }
//
//  3. Register the queue in entrypoint.Build
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// This pattern is used throughout the codebase. See checks.go for examples.
package interfaces
