// Package report records the outcome of every job in a CLI run and writes it
// as YAML.
package report

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/harrison/flame/internal/filelock"
	"gopkg.in/yaml.v3"
)

// Job outcome constants
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Entry is the outcome of one job
type Entry struct {
	Title    string        `yaml:"title"`
	Command  []string      `yaml:"command,omitempty"`
	Status   string        `yaml:"status"`
	Attempts int           `yaml:"attempts"`
	Duration time.Duration `yaml:"duration"`
	Error    string        `yaml:"error,omitempty"`
}

// Report collects entries from concurrently finishing jobs
type Report struct {
	mu       sync.Mutex
	Started  time.Time `yaml:"started"`
	Finished time.Time `yaml:"finished"`
	Jobs     []Entry   `yaml:"jobs"`
}

// New creates a report starting now
func New() *Report {
	return &Report{Started: time.Now().UTC()}
}

// Add records an entry
func (r *Report) Add(e Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Jobs = append(r.Jobs, e)
}

// Counts returns the number of completed and failed jobs
func (r *Report) Counts() (completed, failed int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.Jobs {
		if e.Status == StatusCompleted {
			completed++
		} else {
			failed++
		}
	}
	return completed, failed
}

// Write stamps the finish time and atomically writes the report to path
func (r *Report) Write(path string) error {
	r.mu.Lock()
	r.Finished = time.Now().UTC()
	data, err := yaml.Marshal(r)
	r.mu.Unlock()
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	return filelock.AtomicWrite(path, data)
}

// Load reads a report written by Write
func Load(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}
	var r Report
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse report: %w", err)
	}
	return &r, nil
}
