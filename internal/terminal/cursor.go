package terminal

import (
	"fmt"
	"io"
	"strings"
)

// ANSI control sequences
const (
	seqEraseLine = "\x1b[2K"
	seqClear     = "\x1b[H\x1b[J"
)

// Cursor writes text and cursor movement to a terminal.
//
// Row tracks the cursor's vertical offset from where writing began: each
// newline written moves it down one, Up and Down move it explicitly. The
// jobs panel relies on Row returning to the same value after every
// erase/draw cycle.
//
// Cursor is not safe for concurrent use; callers serialize access.
type Cursor struct {
	writer      io.Writer
	interactive bool
	row         int
}

// NewCursor creates a Cursor writing to w. mode must already be resolved;
// ModeAuto is treated as plain.
func NewCursor(w io.Writer, mode Mode) *Cursor {
	return &Cursor{
		writer:      w,
		interactive: mode == ModeInteractive,
	}
}

// Interactive returns true if control sequences are emitted
func (c *Cursor) Interactive() bool {
	return c.interactive
}

// Row returns the tracked vertical offset
func (c *Cursor) Row() int {
	return c.row
}

// Print writes s verbatim and advances Row by the number of newlines in it
func (c *Cursor) Print(s string) {
	if c.writer == nil || s == "" {
		return
	}
	c.row += strings.Count(s, "\n")
	io.WriteString(c.writer, s)
}

// Println writes s followed by a newline
func (c *Cursor) Println(s string) {
	c.Print(s + "\n")
}

// Up moves the cursor up n lines. No-op in plain mode or when n <= 0.
func (c *Cursor) Up(n int) {
	if !c.control() || n <= 0 {
		return
	}
	c.row -= n
	fmt.Fprintf(c.writer, "\x1b[%dA", n)
}

// Down moves the cursor down n lines. No-op in plain mode or when n <= 0.
func (c *Cursor) Down(n int) {
	if !c.control() || n <= 0 {
		return
	}
	c.row += n
	fmt.Fprintf(c.writer, "\x1b[%dB", n)
}

// EraseLine clears the line under the cursor without moving it
func (c *Cursor) EraseLine() {
	if !c.control() {
		return
	}
	io.WriteString(c.writer, seqEraseLine)
}

// Clear wipes the screen and homes the cursor. Row is reset to zero.
func (c *Cursor) Clear() {
	if !c.control() {
		return
	}
	c.row = 0
	io.WriteString(c.writer, seqClear)
}

func (c *Cursor) control() bool {
	return c.interactive && c.writer != nil
}
