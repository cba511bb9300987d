package logger

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Elapsed formats d as "HH:MM:SS". Hours are not capped at 24 and grow past
// two digits when needed. Negative durations format as zero.
func Elapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	hours := d / time.Hour
	minutes := (d % time.Hour) / time.Minute
	seconds := (d % time.Minute) / time.Second
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

// escapePattern matches CSI sequences (colors, cursor movement, erase)
var escapePattern = regexp.MustCompile(`\x1b\[[0-9;?]*[ -/]*[@-~]`)

// StripEscapes removes every ANSI escape sequence from s, including stray
// ESC bytes that do not start a complete sequence.
func StripEscapes(s string) string {
	s = escapePattern.ReplaceAllString(s, "")
	return strings.ReplaceAll(s, "\x1b", "")
}
