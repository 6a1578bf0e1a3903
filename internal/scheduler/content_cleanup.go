// Package scheduler runs periodic catalog maintenance on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultCleanupSchedule runs the orphan content cleanup daily at 03:00.
const DefaultCleanupSchedule = "0 3 * * *"

// CleanupEnqueuer adds an orphan content cleanup task to the background queue.
type CleanupEnqueuer interface {
	EnqueueOrphanContentCleanup(ctx context.Context, reason string) (string, error)
}

var scheduleParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ValidateSchedule checks a standard five-field cron expression.
func ValidateSchedule(schedule string) error {
	if _, err := scheduleParser.Parse(schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", schedule, err)
	}
	return nil
}

// ContentCleanupScheduler enqueues an orphan content cleanup on every tick
// of its schedule. The work itself runs on the task queue workers.
type ContentCleanupScheduler struct {
	queue    CleanupEnqueuer
	schedule string

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewContentCleanupScheduler creates a scheduler. An empty schedule selects
// DefaultCleanupSchedule.
func NewContentCleanupScheduler(queue CleanupEnqueuer, schedule string) *ContentCleanupScheduler {
	if schedule == "" {
		schedule = DefaultCleanupSchedule
	}
	return &ContentCleanupScheduler{
		queue:    queue,
		schedule: schedule,
		cron:     cron.New(cron.WithParser(scheduleParser)),
	}
}

// Start begins the scheduler. Cancelling ctx stops it.
func (s *ContentCleanupScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if err := ValidateSchedule(s.schedule); err != nil {
		return err
	}

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		s.enqueue(context.Background(), "schedule")
	})
	if err != nil {
		return fmt.Errorf("failed to schedule content cleanup: %w", err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	log.Printf("Content cleanup scheduler: started with schedule '%s'. Next run: %v", s.schedule, s.nextRunLocked())

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler, waiting for a running enqueue to finish.
func (s *ContentCleanupScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.cron.Remove(s.entryID)
	if s.cancelFunc != nil {
		s.cancelFunc()
		s.cancelFunc = nil
	}
	s.isRunning = false

	log.Printf("Content cleanup scheduler: stopped")
}

// RunNow enqueues a cleanup immediately and returns the task id.
func (s *ContentCleanupScheduler) RunNow(ctx context.Context) (string, error) {
	return s.queue.EnqueueOrphanContentCleanup(ctx, "manual")
}

// IsRunning returns whether the scheduler is active
func (s *ContentCleanupScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// Schedule returns the cron expression in use.
func (s *ContentCleanupScheduler) Schedule() string {
	return s.schedule
}

// GetNextRunTime returns when the next cleanup will be enqueued, or nil when
// the scheduler is stopped.
func (s *ContentCleanupScheduler) GetNextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}
	return s.nextRunLocked()
}

func (s *ContentCleanupScheduler) nextRunLocked() *time.Time {
	schedule, err := scheduleParser.Parse(s.schedule)
	if err != nil {
		return nil
	}
	t := schedule.Next(time.Now())
	return &t
}

func (s *ContentCleanupScheduler) enqueue(ctx context.Context, reason string) {
	taskID, err := s.queue.EnqueueOrphanContentCleanup(ctx, reason)
	if err != nil {
		log.Printf("Content cleanup scheduler: failed to enqueue cleanup: %v", err)
		return
	}
	log.Printf("Content cleanup scheduler: enqueued cleanup task %s", taskID)
}
