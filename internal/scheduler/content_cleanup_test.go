package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingQueue struct {
	mu      sync.Mutex
	reasons []string
	err     error
}

func (q *recordingQueue) EnqueueOrphanContentCleanup(_ context.Context, reason string) (string, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return "", q.err
	}
	q.reasons = append(q.reasons, reason)
	return "task-" + reason, nil
}

func (q *recordingQueue) calls() []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]string(nil), q.reasons...)
}

func TestValidateSchedule(t *testing.T) {
	tests := []struct {
		schedule string
		wantErr  bool
	}{
		{"0 3 * * *", false},
		{"*/5 * * * *", false},
		{"@daily", true},
		{"0 0 3 * * *", true},
		{"", true},
		{"not a schedule", true},
	}

	for _, tt := range tests {
		t.Run(tt.schedule, func(t *testing.T) {
			err := ValidateSchedule(tt.schedule)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestContentCleanupScheduler_StartStop(t *testing.T) {
	s := NewContentCleanupScheduler(&recordingQueue{}, "")
	assert.Equal(t, DefaultCleanupSchedule, s.Schedule())
	assert.False(t, s.IsRunning())
	assert.Nil(t, s.GetNextRunTime())

	require.NoError(t, s.Start(context.Background()))
	assert.True(t, s.IsRunning())

	// Starting twice is a no-op
	require.NoError(t, s.Start(context.Background()))

	next := s.GetNextRunTime()
	require.NotNil(t, next)
	assert.True(t, next.After(time.Now()))
	assert.Equal(t, 3, next.Hour())
	assert.Equal(t, 0, next.Minute())

	s.Stop()
	assert.False(t, s.IsRunning())
	assert.Nil(t, s.GetNextRunTime())

	// Stopping twice is safe and the scheduler can be restarted
	s.Stop()
	require.NoError(t, s.Start(context.Background()))
	assert.True(t, s.IsRunning())
	s.Stop()
}

func TestContentCleanupScheduler_InvalidSchedule(t *testing.T) {
	s := NewContentCleanupScheduler(&recordingQueue{}, "every day")

	err := s.Start(context.Background())
	assert.Error(t, err)
	assert.False(t, s.IsRunning())
}

func TestContentCleanupScheduler_StopsWithContext(t *testing.T) {
	s := NewContentCleanupScheduler(&recordingQueue{}, "0 3 * * *")
	ctx, cancel := context.WithCancel(context.Background())

	require.NoError(t, s.Start(ctx))
	cancel()

	assert.Eventually(t, func() bool { return !s.IsRunning() }, 2*time.Second, 10*time.Millisecond)
}

func TestContentCleanupScheduler_RunNow(t *testing.T) {
	queue := &recordingQueue{}
	s := NewContentCleanupScheduler(queue, "")

	id, err := s.RunNow(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "task-manual", id)
	assert.Equal(t, []string{"manual"}, queue.calls())

	queue.err = errors.New("queue closed")
	_, err = s.RunNow(context.Background())
	assert.Error(t, err)
}

func TestContentCleanupScheduler_Enqueue(t *testing.T) {
	queue := &recordingQueue{}
	s := NewContentCleanupScheduler(queue, "")

	s.enqueue(context.Background(), "schedule")
	assert.Equal(t, []string{"schedule"}, queue.calls())

	// Failures are logged, not propagated
	queue.err = errors.New("queue closed")
	s.enqueue(context.Background(), "schedule")
	assert.Equal(t, []string{"schedule"}, queue.calls())
}
