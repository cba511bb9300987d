package models

import "time"

// JobStatus is the display state of an active job
type JobStatus string

// Job status constants
const (
	JobRunning JobStatus = "running" // Work is executing
	JobWaiting JobStatus = "waiting" // Sleeping before the next retry attempt
)

// Job represents one tracked unit of work shown in the active jobs panel
type Job struct {
	ID        string        // Counter-assigned identifier, never reused
	Title     string        // Caller-supplied label
	Start     time.Time     // Creation instant, drives the job's own elapsed time
	Status    JobStatus     // Running or Waiting
	DelayTime time.Duration // Scheduled backoff sleep, meaningful only while Waiting
}

// IsWaiting returns true if the job is sleeping between retry attempts
func (j *Job) IsWaiting() bool {
	return j.Status == JobWaiting
}

// DelayMillis returns the scheduled backoff in whole milliseconds
func (j *Job) DelayMillis() int64 {
	return j.DelayTime.Milliseconds()
}
