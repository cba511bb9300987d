// Package flame prints timestamped, color-coded log lines and keeps a live
// "active jobs" panel in the terminal for long-running command-line
// processes.
//
//	log := flame.New(flame.Options{})
//	defer log.Close()
//
//	log.Log("starting")
//	id := log.StartJob("compile")
//	// ...
//	log.CompleteJob(id)
//
//	body, err := flame.RunWithRetries(ctx, log, "download", func(ctx context.Context) ([]byte, error) {
//	    return fetch(ctx, url)
//	})
//
// Output is plain text without escape sequences when LAMBDA_TASK_ROOT or
// FLAME_PLAIN is set, or when the output is not a terminal.
//
// A Logger is safe for concurrent use. All terminal writes and job state
// changes run one at a time on an internal loop, in the order they were
// issued.
package flame

import (
	"context"
	"errors"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/harrison/flame/internal/display"
	"github.com/harrison/flame/internal/jobs"
	"github.com/harrison/flame/internal/logger"
	"github.com/harrison/flame/internal/palette"
	"github.com/harrison/flame/internal/retry"
	"github.com/harrison/flame/internal/scheduler"
	"github.com/harrison/flame/internal/terminal"
)

// ErrUnknownJob is returned for job ids that are not active
var ErrUnknownJob = jobs.ErrUnknownJob

// ErrClosed is returned by operations on a closed Logger
var ErrClosed = errors.New("flame: logger closed")

// JobInfo is a snapshot of an active job
type JobInfo struct {
	ID      string
	Title   string
	Started time.Time
	Waiting bool
	Delay   time.Duration
}

// Logger is a console status reporter with an active jobs panel
type Logger struct {
	id   string
	mode OutputMode

	loop     *scheduler.Loop
	cursor   *terminal.Cursor
	console  *logger.ConsoleLogger
	registry *jobs.Registry
	panel    *display.Engine
	retrier  *retry.Orchestrator

	closeOnce sync.Once
}

// New creates a Logger and starts its output loop. Call Close when done.
func New(opts Options) *Logger {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	mode := terminal.Resolve(opts.Mode, out)

	var id string
	if opts.UUID {
		id = uuid.NewString()
	}

	l := &Logger{
		id:       id,
		mode:     mode,
		loop:     scheduler.New(),
		cursor:   terminal.NewCursor(out, mode),
		registry: jobs.NewRegistry(),
	}

	composer := logger.NewComposer(palette.Merge(opts.Pallet), mode != terminal.ModeInteractive, id)
	l.console = logger.NewConsoleLogger(l.cursor, composer, time.Now(), opts.Disabled)
	l.panel = display.NewEngine(l.cursor, composer, l.registry, l.loop, opts.RefreshInterval, opts.Disabled)
	l.retrier = retry.New(tracker{l}, opts.RetryLimit, opts.BaseRetryDelay)

	if opts.Clear && !opts.Disabled {
		l.cursor.Clear()
	}
	return l
}

// ID returns the per-logger UUID, or "" when Options.UUID was not set
func (l *Logger) ID() string {
	return l.id
}

// Mode returns the resolved output mode
func (l *Logger) Mode() OutputMode {
	return l.mode
}

// RetryLimit returns the total number of attempts RunWithRetries makes
func (l *Logger) RetryLimit() int {
	return l.retrier.Limit()
}

// Log prints an info line
func (l *Logger) Log(message string) {
	l.print(func() { l.console.LogInfo(message) })
}

// LogWarning prints a warning line
func (l *Logger) LogWarning(message string) {
	l.print(func() { l.console.LogWarning(message) })
}

// LogError prints an error line
func (l *Logger) LogError(message string) {
	l.print(func() { l.console.LogError(message) })
}

// LogComplete prints a completion line
func (l *Logger) LogComplete(message string) {
	l.print(func() { l.console.LogComplete(message) })
}

// Debug prints a debug line
func (l *Logger) Debug(message string) {
	l.print(func() { l.console.LogDebug(message) })
}

// StartJob adds a running job to the panel and returns its id.
//
// After Close no job is created and the id is "". Callers that may race
// with Close should check for it:
//
//	id := log.StartJob("compile")
//	if id == "" {
//	    return flame.ErrClosed
//	}
func (l *Logger) StartJob(title string) string {
	id, _ := l.startJob(title)
	return id
}

// CompleteJob removes the job and prints a completion line
func (l *Logger) CompleteJob(id string) error {
	return l.finishJob(id, func(title string) { l.console.LogComplete(title) })
}

// FailJob removes the job and prints an error line
func (l *Logger) FailJob(id string) error {
	return l.finishJob(id, func(title string) { l.console.LogError("Job failed: " + title) })
}

// ActiveJobs returns the jobs currently shown, in start order
func (l *Logger) ActiveJobs() []JobInfo {
	var out []JobInfo
	l.loop.Do(func() {
		for _, job := range l.registry.List() {
			out = append(out, JobInfo{
				ID:      job.ID,
				Title:   job.Title,
				Started: job.Start,
				Waiting: job.IsWaiting(),
				Delay:   job.DelayTime,
			})
		}
	})
	return out
}

// Retry runs work as a job, retrying with exponential backoff.
// See RunWithRetries.
func (l *Logger) Retry(ctx context.Context, title string, work func(context.Context) error) error {
	return l.retrier.Do(ctx, title, work)
}

// RunWithRetries runs work as a job titled title. Failed attempts are
// logged as warnings and retried after BaseRetryDelay * 2^(attempt-1) until
// RetryLimit attempts have been made in total. The result of the first
// successful attempt is returned; otherwise the job is marked failed and the
// last error is returned unchanged.
func RunWithRetries[T any](ctx context.Context, l *Logger, title string, work func(context.Context) (T, error)) (T, error) {
	return retry.Run(ctx, l.retrier, title, work)
}

// Close erases the jobs panel, stops pending refreshes and waits for queued
// output to be written. Jobs still active are abandoned.
func (l *Logger) Close() {
	l.closeOnce.Do(func() {
		l.loop.Do(l.panel.Shutdown)
		l.loop.Close()
	})
}

func (l *Logger) print(fn func()) {
	l.loop.Do(func() { l.panel.Around(fn) })
}

func (l *Logger) startJob(title string) (string, error) {
	var id string
	err := l.loop.Do(func() {
		id = l.registry.Create(title)
		l.panel.Around(func() { l.console.LogInfo("Job started: " + title) })
	})
	if err != nil {
		return "", ErrClosed
	}
	return id, nil
}

func (l *Logger) finishJob(id string, announce func(title string)) error {
	var opErr error
	err := l.loop.Do(func() {
		job, err := l.registry.Remove(id)
		if err != nil {
			opErr = err
			return
		}
		l.panel.Around(func() { announce(job.Title) })
	})
	if err != nil {
		return ErrClosed
	}
	return opErr
}

func (l *Logger) mutate(fn func() error) error {
	var opErr error
	err := l.loop.Do(func() {
		if opErr = fn(); opErr == nil {
			l.panel.Render()
		}
	})
	if err != nil {
		return ErrClosed
	}
	return opErr
}

// tracker adapts Logger to the retry orchestrator
type tracker struct {
	l *Logger
}

func (t tracker) StartJob(title string) (string, error) {
	return t.l.startJob(title)
}

func (t tracker) CompleteJob(id string) error {
	return t.l.CompleteJob(id)
}

func (t tracker) FailJob(id string) error {
	return t.l.FailJob(id)
}

func (t tracker) SetWaiting(id string, delay time.Duration) error {
	return t.l.mutate(func() error { return t.l.registry.SetWaiting(id, delay) })
}

func (t tracker) SetRunning(id string) error {
	return t.l.mutate(func() error { return t.l.registry.SetRunning(id) })
}

func (t tracker) LogWarning(message string) {
	t.l.LogWarning(message)
}
