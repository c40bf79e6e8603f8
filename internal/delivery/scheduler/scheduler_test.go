package scheduler

import (
	"context"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingMatcher struct {
	runs atomic.Int32
	err  error
}

func (m *countingMatcher) RunOnce(_ context.Context) (int, error) {
	m.runs.Add(1)

	return 3, m.err
}

func newTestScheduler(matcher *countingMatcher, interval time.Duration) *matcherScheduler {
	return &matcherScheduler{
		interval: interval,
		logger:   slog.New(slog.DiscardHandler),
		matcher:  matcher,
		stop:     make(chan struct{}),
	}
}

func TestScheduler_RunsImmediatelyAndOnTicks(t *testing.T) {
	matcher := &countingMatcher{}
	sched := newTestScheduler(matcher, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- sched.Serve(ctx)
	}()

	require.Eventually(t, func() bool {
		return matcher.runs.Load() >= 2
	}, time.Second, 5*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}

func TestScheduler_SurvivesRoundErrors(t *testing.T) {
	matcher := &countingMatcher{err: assert.AnError}
	sched := newTestScheduler(matcher, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- sched.Serve(ctx)
	}()

	require.Eventually(t, func() bool {
		return matcher.runs.Load() >= 3
	}, time.Second, 5*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}

func TestScheduler_StopChannelTerminatesServe(t *testing.T) {
	matcher := &countingMatcher{}
	sched := newTestScheduler(matcher, time.Hour)

	done := make(chan error, 1)
	go func() {
		done <- sched.Serve(context.Background())
	}()

	require.Eventually(t, func() bool {
		return matcher.runs.Load() >= 1
	}, time.Second, 5*time.Millisecond)

	close(sched.stop)

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Serve did not return after stop")
	}
}
