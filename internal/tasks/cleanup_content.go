package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"
)

// CleanupOrphanContentQueue is the backlite queue name of the cleanup task.
const CleanupOrphanContentQueue = "cleanup_orphan_content"

// OrphanContentCleaner provides the ability to delete content records that
// no book refers to.
type OrphanContentCleaner interface {
	DeleteOrphanContent(ctx context.Context) (int64, error)
}

// Observer receives the outcome of processed tasks.
type Observer interface {
	ObserveTask(queue string, err error)
}

// CleanupOrphanContentTask removes content left behind by interrupted writes.
type CleanupOrphanContentTask struct {
	// Reason records what enqueued the task, e.g. "schedule" or "api".
	Reason string `json:"reason"`
}

// Config returns the queue configuration for cleanup tasks.
func (t CleanupOrphanContentTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        CleanupOrphanContentQueue,
		MaxAttempts: 3,
		Backoff:     time.Minute,
		Timeout:     time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// CleanupOrphanContentProcessor creates a processor function for CleanupOrphanContentTask.
// observer may be nil.
func CleanupOrphanContentProcessor(cleaner OrphanContentCleaner, observer Observer) backlite.QueueProcessor[CleanupOrphanContentTask] {
	return func(ctx context.Context, task CleanupOrphanContentTask) (err error) {
		if observer != nil {
			defer func() { observer.ObserveTask(CleanupOrphanContentQueue, err) }()
		}

		if cleaner == nil {
			return fmt.Errorf("orphan content cleaner not configured")
		}

		deleted, err := cleaner.DeleteOrphanContent(ctx)
		if err != nil {
			return fmt.Errorf("cleanup orphan content: %w", err)
		}

		log.Printf("[TASK] Cleaned up %d orphan content records (reason: %s)", deleted, task.Reason)
		return nil
	}
}

// NewCleanupOrphanContentQueue creates a backlite queue for content cleanup tasks.
func NewCleanupOrphanContentQueue(cleaner OrphanContentCleaner, observer Observer) backlite.Queue {
	return backlite.NewQueue(CleanupOrphanContentProcessor(cleaner, observer))
}
