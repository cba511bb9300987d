package retry

import (
	"context"
	"fmt"
	"time"
)

// Tracker is the job surface the orchestrator drives. Every mutating call is
// expected to redraw the jobs panel before returning.
type Tracker interface {
	StartJob(title string) (string, error)
	CompleteJob(id string) error
	FailJob(id string) error
	SetWaiting(id string, delay time.Duration) error
	SetRunning(id string) error
	LogWarning(message string)
}

// Orchestrator retries work inside a tracked job.
//
// Limit is the total number of attempts, including the first. Attempt n
// fails the job once n >= Limit; otherwise the job waits Delay(base, n) and
// attempt n+1 starts.
type Orchestrator struct {
	tracker   Tracker
	limit     int
	baseDelay time.Duration
	sleep     func(ctx context.Context, d time.Duration) error
}

// New creates an Orchestrator. Non-positive limit or baseDelay select the
// package defaults.
func New(tracker Tracker, limit int, baseDelay time.Duration) *Orchestrator {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if baseDelay <= 0 {
		baseDelay = DefaultBaseDelay
	}
	return &Orchestrator{
		tracker:   tracker,
		limit:     limit,
		baseDelay: baseDelay,
		sleep:     sleepContext,
	}
}

// Limit returns the total number of attempts
func (o *Orchestrator) Limit() int {
	return o.limit
}

// BaseDelay returns the delay after the first failed attempt
func (o *Orchestrator) BaseDelay() time.Duration {
	return o.baseDelay
}

// Run starts a job titled title and calls work until it succeeds or the
// attempt limit is reached. The last work error is returned unchanged.
// If ctx is cancelled during a backoff wait the job fails with ctx.Err().
func Run[T any](ctx context.Context, o *Orchestrator, title string, work func(context.Context) (T, error)) (T, error) {
	var zero T

	id, err := o.tracker.StartJob(title)
	if err != nil {
		return zero, err
	}

	for attempt := 1; ; attempt++ {
		result, workErr := work(ctx)
		if workErr == nil {
			if err := o.tracker.CompleteJob(id); err != nil {
				return zero, err
			}
			return result, nil
		}

		if attempt >= o.limit {
			if err := o.tracker.FailJob(id); err != nil {
				return zero, err
			}
			return zero, workErr
		}

		delay := Delay(o.baseDelay, attempt)
		o.tracker.LogWarning(fmt.Sprintf("Job %s failed attempt %d: %v. Retrying after delay ...", title, attempt, workErr))
		if err := o.tracker.SetWaiting(id, delay); err != nil {
			return zero, err
		}

		if err := o.sleep(ctx, delay); err != nil {
			if failErr := o.tracker.FailJob(id); failErr != nil {
				return zero, failErr
			}
			return zero, err
		}

		if err := o.tracker.SetRunning(id); err != nil {
			return zero, err
		}
	}
}

// Do is Run for work that produces no value
func (o *Orchestrator) Do(ctx context.Context, title string, work func(context.Context) error) error {
	_, err := Run(ctx, o, title, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, work(ctx)
	})
	return err
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
