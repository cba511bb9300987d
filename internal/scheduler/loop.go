// Package scheduler runs tasks one at a time on a single goroutine.
//
// A Loop is the serialization point for all terminal and registry state:
// tasks posted from any goroutine execute strictly in arrival order and never
// overlap, so the code they run needs no locks. Delayed tasks are posted to
// the same queue when their timer fires and are ordered with everything else
// by firing time.
package scheduler

import (
	"errors"
	"sync"
	"time"
)

// ErrClosed is returned when posting to a loop that has been closed
var ErrClosed = errors.New("scheduler closed")

// Loop executes posted tasks sequentially on one goroutine
type Loop struct {
	mu     sync.Mutex
	cond   *sync.Cond
	queue  []func()
	closed bool
	timers map[*time.Timer]struct{}
	done   chan struct{}
}

// New creates a Loop and starts its goroutine
func New() *Loop {
	l := &Loop{
		timers: make(map[*time.Timer]struct{}),
		done:   make(chan struct{}),
	}
	l.cond = sync.NewCond(&l.mu)
	go l.run()
	return l
}

func (l *Loop) run() {
	defer close(l.done)
	for {
		l.mu.Lock()
		for len(l.queue) == 0 && !l.closed {
			l.cond.Wait()
		}
		if len(l.queue) == 0 {
			l.mu.Unlock()
			return
		}
		task := l.queue[0]
		l.queue[0] = nil
		l.queue = l.queue[1:]
		l.mu.Unlock()

		task()
	}
}

// Post enqueues task. Tasks may post further tasks but must not call Do.
func (l *Loop) Post(task func()) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return ErrClosed
	}
	l.queue = append(l.queue, task)
	l.cond.Signal()
	return nil
}

// Do enqueues task and blocks until it has run
func (l *Loop) Do(task func()) error {
	finished := make(chan struct{})
	err := l.Post(func() {
		defer close(finished)
		task()
	})
	if err != nil {
		return err
	}
	<-finished
	return nil
}

// After posts task once d has elapsed. Timers still pending at Close are
// stopped and their tasks never run.
func (l *Loop) After(d time.Duration, task func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}

	var timer *time.Timer
	timer = time.AfterFunc(d, func() {
		l.mu.Lock()
		delete(l.timers, timer)
		l.mu.Unlock()
		l.Post(task)
	})
	l.timers[timer] = struct{}{}
}

// Pending returns the number of armed timers
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.timers)
}

// Close stops pending timers, runs tasks already queued, and waits for the
// loop goroutine to exit. Calling Close more than once is safe.
func (l *Loop) Close() {
	l.mu.Lock()
	if !l.closed {
		l.closed = true
		for timer := range l.timers {
			timer.Stop()
		}
		l.timers = make(map[*time.Timer]struct{})
		l.cond.Broadcast()
	}
	l.mu.Unlock()
	<-l.done
}
