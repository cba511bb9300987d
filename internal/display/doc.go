// Package display renders the live "active jobs" panel below ordinary log
// output.
//
// The panel is redrawn in place: every change to the job registry erases the
// previously drawn region and draws a fresh one from the registry contents.
// Exact bookkeeping of how many lines the last panel occupied is what keeps
// the cursor where the caller's next log line expects it.
//
// # Layout
//
//	(blank)
//	(blank)
//	Active Jobs:
//	(blank)
//	00:00:03 running build
//	00:00:01 waiting (2000ms) fetch
//	...up to 10 jobs...
//	(blank)
//	 ... and 4 more
//
// With at most 10 jobs the panel is jobCount+4 lines tall. With more than 10
// the summary line is added and the height is fixed at 16.
//
// # Refresh
//
// While any job is active the engine keeps exactly one refresh scheduled.
// A refresh is a full erase and draw, so elapsed times and backoff
// annotations advance even when no job changes state.
//
// The panel draws nothing when disabled or when the cursor is in plain mode.
// Engine is not safe for concurrent use; it must only be driven from the
// scheduler loop that also owns the registry.
package display
