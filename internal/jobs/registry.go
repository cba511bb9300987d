// Package jobs holds the set of active jobs shown in the jobs panel.
package jobs

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/harrison/flame/internal/models"
)

// ErrUnknownJob is matched by every error about a job id that is not active
var ErrUnknownJob = errors.New("unknown job")

// UnknownJobError reports an operation on a job id that was never created or
// has already been completed or failed.
type UnknownJobError struct {
	ID string
}

func (e *UnknownJobError) Error() string {
	return fmt.Sprintf("unknown job %q", e.ID)
}

// Is reports whether target is ErrUnknownJob
func (e *UnknownJobError) Is(target error) bool {
	return target == ErrUnknownJob
}

// Registry is an insertion-ordered mapping from job id to Job.
// Ids come from a counter and are never reused once removed.
// Registry is not safe for concurrent use.
type Registry struct {
	jobs    map[string]*models.Job
	order   []string
	counter uint64
	now     func() time.Time
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		jobs: make(map[string]*models.Job),
		now:  time.Now,
	}
}

// Create stores a new running job and returns its id
func (r *Registry) Create(title string) string {
	id := strconv.FormatUint(r.counter, 10)
	r.counter++

	r.jobs[id] = &models.Job{
		ID:     id,
		Title:  title,
		Start:  r.now(),
		Status: models.JobRunning,
	}
	r.order = append(r.order, id)
	return id
}

// Get returns a copy of the job with the given id
func (r *Registry) Get(id string) (models.Job, error) {
	job, ok := r.jobs[id]
	if !ok {
		return models.Job{}, &UnknownJobError{ID: id}
	}
	return *job, nil
}

// Remove deletes the job and returns its final state
func (r *Registry) Remove(id string) (models.Job, error) {
	job, ok := r.jobs[id]
	if !ok {
		return models.Job{}, &UnknownJobError{ID: id}
	}
	delete(r.jobs, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return *job, nil
}

// SetWaiting marks the job as sleeping for delay before its next attempt
func (r *Registry) SetWaiting(id string, delay time.Duration) error {
	job, ok := r.jobs[id]
	if !ok {
		return &UnknownJobError{ID: id}
	}
	job.Status = models.JobWaiting
	job.DelayTime = delay
	return nil
}

// SetRunning marks the job as executing
func (r *Registry) SetRunning(id string) error {
	job, ok := r.jobs[id]
	if !ok {
		return &UnknownJobError{ID: id}
	}
	job.Status = models.JobRunning
	return nil
}

// List returns copies of all jobs in insertion order
func (r *Registry) List() []models.Job {
	out := make([]models.Job, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.jobs[id])
	}
	return out
}

// Len returns the number of active jobs
func (r *Registry) Len() int {
	return len(r.order)
}
