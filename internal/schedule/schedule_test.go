package schedule

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/scanarr/internal/refresh"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeSubmitter struct {
	mu       sync.Mutex
	triggers []string
}

func (f *fakeSubmitter) TriggerOnEvent(trigger string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.triggers = append(f.triggers, trigger)
	return true
}

func (f *fakeSubmitter) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.triggers...)
}

func TestNewScheduler_InvalidExpression(t *testing.T) {
	_, err := NewScheduler("not a cron", &fakeSubmitter{}, testLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse cron expression")
}

func TestNewScheduler_ValidExpressions(t *testing.T) {
	for _, expr := range []string{"0 3 * * *", "*/15 * * * *", "@daily", "@every 1h"} {
		_, err := NewScheduler(expr, &fakeSubmitter{}, testLogger())
		assert.NoError(t, err, expr)
	}
}

func TestScheduler_Name(t *testing.T) {
	s, err := NewScheduler("@daily", &fakeSubmitter{}, testLogger())
	require.NoError(t, err)
	assert.Equal(t, "scheduler", s.Name())
}

func TestScheduler_TickSubmitsScheduleTrigger(t *testing.T) {
	target := &fakeSubmitter{}
	s, err := NewScheduler("0 3 * * *", target, testLogger())
	require.NoError(t, err)

	s.tick()

	calls := target.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, refresh.TriggerSchedule, calls[0])
}

func TestScheduler_StopsOnContextCancel(t *testing.T) {
	s, err := NewScheduler("0 3 * * *", &fakeSubmitter{}, testLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
}

func TestScheduler_FiresOnSchedule(t *testing.T) {
	target := &fakeSubmitter{}
	s, err := NewScheduler("@every 100ms", target, testLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = s.Start(ctx) }()

	assert.Eventually(t, func() bool {
		return len(target.calls()) >= 1
	}, 2*time.Second, 20*time.Millisecond)
}
