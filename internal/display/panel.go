package display

import (
	"fmt"
	"time"

	"github.com/harrison/flame/internal/logger"
	"github.com/harrison/flame/internal/models"
	"github.com/harrison/flame/internal/terminal"
)

// Panel geometry
const (
	MaxVisibleJobs = 10 // Jobs drawn before the summary line takes over
	chromeLines    = 4  // Two blank lines, header, blank line
	overflowHeight = 16 // Fixed height once the summary line is shown
)

// DefaultRefreshInterval is how often an active panel redraws itself
const DefaultRefreshInterval = 300 * time.Millisecond

// JobLister provides the jobs to draw, in display order
type JobLister interface {
	List() []models.Job
}

// Scheduler runs a task on the owning loop after a delay
type Scheduler interface {
	After(d time.Duration, task func())
}

// Height returns the number of lines a panel showing jobCount jobs occupies.
// An empty registry draws nothing.
func Height(jobCount int) int {
	switch {
	case jobCount <= 0:
		return 0
	case jobCount > MaxVisibleJobs:
		return overflowHeight
	default:
		return jobCount + chromeLines
	}
}

// Engine owns the on-screen jobs panel
type Engine struct {
	cursor   *terminal.Cursor
	composer *logger.Composer
	jobs     JobLister
	sched    Scheduler
	interval time.Duration
	disabled bool

	active           bool
	lineCount        int
	refreshScheduled bool
}

// NewEngine creates a panel engine. A non-positive interval selects
// DefaultRefreshInterval.
func NewEngine(cursor *terminal.Cursor, composer *logger.Composer, jobs JobLister, sched Scheduler, interval time.Duration, disabled bool) *Engine {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	return &Engine{
		cursor:   cursor,
		composer: composer,
		jobs:     jobs,
		sched:    sched,
		interval: interval,
		disabled: disabled,
	}
}

// Enabled returns true if the panel can draw at all
func (e *Engine) Enabled() bool {
	return !e.disabled && e.cursor.Interactive()
}

// Active returns true if a panel is currently drawn
func (e *Engine) Active() bool {
	return e.active
}

// LineCount returns the height of the last drawn panel
func (e *Engine) LineCount() int {
	return e.lineCount
}

// RefreshScheduled returns true if a self-refresh is pending
func (e *Engine) RefreshScheduled() bool {
	return e.refreshScheduled
}

// Render erases the current panel and draws it again from the registry
func (e *Engine) Render() {
	e.Erase()
	e.Draw()
}

// Around erases the panel, runs print, then redraws. Ordinary log lines are
// printed this way so they land above the panel instead of through it.
func (e *Engine) Around(print func()) {
	e.Erase()
	print()
	e.Draw()
}

// Shutdown erases the panel and disables the engine for good. Refreshes
// that are already queued become no-ops.
func (e *Engine) Shutdown() {
	e.Erase()
	e.disabled = true
}

// Erase clears the drawn panel plus one line of slack and returns the cursor
// to where the panel started.
func (e *Engine) Erase() {
	if !e.Enabled() || !e.active {
		return
	}

	span := e.lineCount + 1
	for i := 0; i < span; i++ {
		e.cursor.EraseLine()
		e.cursor.Down(1)
	}
	e.cursor.Up(span)

	e.active = false
}

// Draw prints the panel below the cursor and moves the cursor back to the
// panel's first line. It does nothing if a panel is already drawn or there
// are no jobs.
func (e *Engine) Draw() {
	if !e.Enabled() || e.active {
		return
	}
	jobs := e.jobs.List()
	if len(jobs) == 0 {
		return
	}

	e.scheduleRefresh()

	e.cursor.Print("\n\n" + e.composer.Paint(models.PartFormat, "Active Jobs:") + "\n\n")

	for i, job := range jobs {
		if i >= MaxVisibleJobs {
			break
		}
		e.cursor.Println(e.jobLine(job))
	}

	if len(jobs) > MaxVisibleJobs {
		more := fmt.Sprintf(" ... and %d more", len(jobs)-MaxVisibleJobs)
		e.cursor.Print("\n" + e.composer.Paint(models.PartFormat, more) + "\n")
	}

	e.lineCount = Height(len(jobs))
	e.active = true
	e.cursor.Up(e.lineCount)
}

func (e *Engine) jobLine(job models.Job) string {
	if job.IsWaiting() {
		return e.composer.Compose(job.Start,
			models.Section(models.PartWaiting, fmt.Sprintf("waiting (%dms)", job.DelayMillis())),
			models.Section(models.PartMessage, job.Title),
		)
	}
	return e.composer.Compose(job.Start,
		models.Section(models.PartRunning, "running"),
		models.Section(models.PartMessage, job.Title),
	)
}

func (e *Engine) scheduleRefresh() {
	if e.refreshScheduled {
		return
	}
	e.refreshScheduled = true
	e.sched.After(e.interval, func() {
		e.refreshScheduled = false
		e.Render()
	})
}
