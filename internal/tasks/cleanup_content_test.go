package tasks

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCleaner struct {
	calls   int
	removed int64
	err     error
}

func (f *fakeCleaner) DeleteOrphanContent(context.Context) (int64, error) {
	f.calls++
	return f.removed, f.err
}

type taskRecord struct {
	queue string
	err   error
}

type recordingObserver struct {
	mu      sync.Mutex
	records []taskRecord
	done    chan struct{}
}

func newRecordingObserver() *recordingObserver {
	return &recordingObserver{done: make(chan struct{}, 10)}
}

func (o *recordingObserver) ObserveTask(queue string, err error) {
	o.mu.Lock()
	o.records = append(o.records, taskRecord{queue: queue, err: err})
	o.mu.Unlock()
	o.done <- struct{}{}
}

func TestCleanupOrphanContentTaskConfig(t *testing.T) {
	cfg := CleanupOrphanContentTask{Reason: "test"}.Config()

	assert.Equal(t, "cleanup_orphan_content", cfg.Name)
	assert.Equal(t, 3, cfg.MaxAttempts)
	assert.Equal(t, time.Minute, cfg.Backoff)
	assert.Equal(t, time.Minute, cfg.Timeout)
	require.NotNil(t, cfg.Retention)
	assert.Equal(t, 24*time.Hour, cfg.Retention.Duration)
}

func TestCleanupOrphanContentProcessor(t *testing.T) {
	t.Run("removes orphans", func(t *testing.T) {
		cleaner := &fakeCleaner{removed: 2}
		observer := newRecordingObserver()

		err := CleanupOrphanContentProcessor(cleaner, observer)(context.Background(), CleanupOrphanContentTask{Reason: "test"})

		require.NoError(t, err)
		assert.Equal(t, 1, cleaner.calls)
		require.Len(t, observer.records, 1)
		assert.Equal(t, CleanupOrphanContentQueue, observer.records[0].queue)
		assert.NoError(t, observer.records[0].err)
	})

	t.Run("propagates cleaner failures", func(t *testing.T) {
		cleaner := &fakeCleaner{err: errors.New("locked")}
		observer := newRecordingObserver()

		err := CleanupOrphanContentProcessor(cleaner, observer)(context.Background(), CleanupOrphanContentTask{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "locked")
		require.Len(t, observer.records, 1)
		assert.Error(t, observer.records[0].err)
	})

	t.Run("fails without a cleaner", func(t *testing.T) {
		err := CleanupOrphanContentProcessor(nil, nil)(context.Background(), CleanupOrphanContentTask{})
		assert.Error(t, err)
	})
}

func TestEnqueueOrphanContentCleanup(t *testing.T) {
	client, err := NewClient(filepath.Join(t.TempDir(), "test.db"), DefaultConfig())
	require.NoError(t, err)
	defer client.Close()

	cleaner := &fakeCleaner{removed: 1}
	observer := newRecordingObserver()
	client.Register(NewCleanupOrphanContentQueue(cleaner, observer))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	id, err := client.EnqueueOrphanContentCleanup(ctx, "test")
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	status, err := client.Status(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, backlite.TaskStatusPending, status)

	client.Start(ctx)
	defer func() {
		stopCtx, stopCancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer stopCancel()
		client.Stop(stopCtx)
	}()

	select {
	case <-observer.done:
	case <-time.After(5 * time.Second):
		t.Fatal("cleanup task was not executed within timeout")
	}
	assert.Equal(t, 1, cleaner.calls)

	assert.Eventually(t, func() bool {
		status, err := client.Status(ctx, id)
		return err == nil && status == backlite.TaskStatusSuccess
	}, 5*time.Second, 50*time.Millisecond)
}
