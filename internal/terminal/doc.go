// Package terminal owns the process-wide terminal cursor.
//
// All output that participates in the active jobs panel is written through a
// single Cursor so the vertical offset between the cursor and the line where
// drawing started can be tracked exactly. The control surface is deliberately
// small:
//   - Cursor up N lines (ESC[NA)
//   - Cursor down N lines (ESC[NB)
//   - Erase current line (ESC[2K)
//   - Clear screen and home (ESC[H ESC[J), used once at construction
//
// In plain mode every control sequence is suppressed and only text is
// written, which keeps captured CI and serverless logs readable.
package terminal
