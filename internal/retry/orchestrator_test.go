package retry

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingTracker logs every call the orchestrator makes
type recordingTracker struct {
	events   []string
	warnings []string
	next     int
	startErr error
}

func (r *recordingTracker) StartJob(title string) (string, error) {
	if r.startErr != nil {
		return "", r.startErr
	}
	id := fmt.Sprint(r.next)
	r.next++
	r.events = append(r.events, "start "+title)
	return id, nil
}

func (r *recordingTracker) CompleteJob(id string) error {
	r.events = append(r.events, "complete "+id)
	return nil
}

func (r *recordingTracker) FailJob(id string) error {
	r.events = append(r.events, "fail "+id)
	return nil
}

func (r *recordingTracker) SetWaiting(id string, delay time.Duration) error {
	r.events = append(r.events, fmt.Sprintf("waiting %s %dms", id, delay.Milliseconds()))
	return nil
}

func (r *recordingTracker) SetRunning(id string) error {
	r.events = append(r.events, "running "+id)
	return nil
}

func (r *recordingTracker) LogWarning(message string) {
	r.events = append(r.events, "warn")
	r.warnings = append(r.warnings, message)
}

func newTestOrchestrator(limit int, base time.Duration) (*Orchestrator, *recordingTracker, *[]time.Duration) {
	tracker := &recordingTracker{}
	o := New(tracker, limit, base)
	var slept []time.Duration
	o.sleep = func(ctx context.Context, d time.Duration) error {
		slept = append(slept, d)
		return ctx.Err()
	}
	return o, tracker, &slept
}

// flaky fails the first k calls then returns value
func flaky(k int, value string) (func(context.Context) (string, error), *int) {
	calls := 0
	return func(context.Context) (string, error) {
		calls++
		if calls <= k {
			return "", fmt.Errorf("boom %d", calls)
		}
		return value, nil
	}, &calls
}

func TestNew_Defaults(t *testing.T) {
	o := New(&recordingTracker{}, 0, 0)
	assert.Equal(t, DefaultLimit, o.Limit())
	assert.Equal(t, DefaultBaseDelay, o.BaseDelay())
}

func TestRun_SucceedsFirstTry(t *testing.T) {
	o, tracker, slept := newTestOrchestrator(3, time.Second)
	work, calls := flaky(0, "ok")

	got, err := Run(context.Background(), o, "build", work)

	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, 1, *calls)
	assert.Empty(t, *slept)
	assert.Equal(t, []string{"start build", "complete 0"}, tracker.events)
}

func TestRun_RecoversAfterFailures(t *testing.T) {
	for k := 1; k < 4; k++ {
		t.Run(fmt.Sprintf("fails %d times", k), func(t *testing.T) {
			o, tracker, slept := newTestOrchestrator(4, time.Second)
			work, calls := flaky(k, "value")

			got, err := Run(context.Background(), o, "fetch", work)

			require.NoError(t, err)
			assert.Equal(t, "value", got)
			assert.Equal(t, k+1, *calls)
			require.Len(t, *slept, k)
			for i, d := range *slept {
				assert.Equal(t, Delay(time.Second, i+1), d)
			}
			assert.Equal(t, "complete 0", tracker.events[len(tracker.events)-1])
			assert.Len(t, tracker.warnings, k)
		})
	}
}

func TestRun_ExhaustsAfterLimitAttempts(t *testing.T) {
	o, tracker, slept := newTestOrchestrator(3, time.Second)
	sentinel := errors.New("permanent")
	calls := 0

	_, err := Run(context.Background(), o, "deploy", func(context.Context) (int, error) {
		calls++
		return 0, sentinel
	})

	assert.Same(t, sentinel, err, "final failure must propagate unchanged")
	assert.Equal(t, 3, calls, "limit counts total attempts")
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, *slept)
	assert.Equal(t, []string{
		"start deploy",
		"warn", "waiting 0 1000ms", "running 0",
		"warn", "waiting 0 2000ms", "running 0",
		"fail 0",
	}, tracker.events)
}

func TestRun_LimitOfOneNeverRetries(t *testing.T) {
	o, tracker, slept := newTestOrchestrator(1, time.Second)
	_, err := Run(context.Background(), o, "once", func(context.Context) (string, error) {
		return "", errors.New("nope")
	})

	require.Error(t, err)
	assert.Empty(t, *slept)
	assert.Equal(t, []string{"start once", "fail 0"}, tracker.events)
}

func TestRun_WarningText(t *testing.T) {
	o, tracker, _ := newTestOrchestrator(2, time.Millisecond)
	work, _ := flaky(1, "x")

	_, err := Run(context.Background(), o, "sync", work)
	require.NoError(t, err)

	require.Len(t, tracker.warnings, 1)
	assert.Equal(t, "Job sync failed attempt 1: boom 1. Retrying after delay ...", tracker.warnings[0])
}

func TestRun_CancelledDuringBackoff(t *testing.T) {
	o, tracker, _ := newTestOrchestrator(5, time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, o, "stop", func(context.Context) (string, error) {
		return "", errors.New("transient")
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, "fail 0", tracker.events[len(tracker.events)-1])
}

func TestRun_StartJobError(t *testing.T) {
	tracker := &recordingTracker{startErr: errors.New("closed")}
	o := New(tracker, 3, time.Second)
	called := false

	_, err := Run(context.Background(), o, "x", func(context.Context) (string, error) {
		called = true
		return "", nil
	})

	assert.EqualError(t, err, "closed")
	assert.False(t, called)
}

func TestOrchestrator_Do(t *testing.T) {
	o, tracker, _ := newTestOrchestrator(2, time.Millisecond)
	calls := 0
	err := o.Do(context.Background(), "void", func(context.Context) error {
		calls++
		if calls == 1 {
			return errors.New("first")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.True(t, strings.HasPrefix(tracker.events[len(tracker.events)-1], "complete"))
}

func TestSleepContext(t *testing.T) {
	start := time.Now()
	require.NoError(t, sleepContext(context.Background(), 10*time.Millisecond))
	assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, sleepContext(ctx, time.Hour), context.Canceled)
}
