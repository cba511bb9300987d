// Package logger provides the timestamped, color-coded line output for flame.
//
// A ConsoleLogger composes a line through a Composer and writes it through
// the shared terminal Cursor. In interactive mode each ordinary line is
// followed by blank lines and the cursor is moved back up, reserving space
// below the line so a jobs panel drawn afterwards never overlaps it. In
// plain mode a line is a single newline-terminated write.
package logger

import (
	"strings"
	"time"

	"github.com/harrison/flame/internal/models"
	"github.com/harrison/flame/internal/terminal"
)

// reserveLines is how many blank lines follow an interactive log line
// before the cursor is moved back up.
const reserveLines = 3

// ConsoleLogger prints ordinary log lines relative to a fixed start instant.
// It is not safe for concurrent use; the owning logger serializes calls.
type ConsoleLogger struct {
	cursor   *terminal.Cursor
	composer *Composer
	start    time.Time
	disabled bool
}

// NewConsoleLogger creates a ConsoleLogger writing through cursor.
// A disabled logger prints nothing.
func NewConsoleLogger(cursor *terminal.Cursor, composer *Composer, start time.Time, disabled bool) *ConsoleLogger {
	return &ConsoleLogger{
		cursor:   cursor,
		composer: composer,
		start:    start,
		disabled: disabled,
	}
}

// Start returns the instant ordinary lines are timed against
func (cl *ConsoleLogger) Start() time.Time {
	return cl.start
}

// LogInfo logs "<time> info <message>"
func (cl *ConsoleLogger) LogInfo(message string) {
	cl.Line(models.Section(models.PartInfo, "info"), models.Section(models.PartMessage, message))
}

// LogWarning logs "<time> warning <message>"
func (cl *ConsoleLogger) LogWarning(message string) {
	cl.Line(models.Section(models.PartWarning, "warning"), models.Section(models.PartMessage, message))
}

// LogError logs "<time> error <message>"
func (cl *ConsoleLogger) LogError(message string) {
	cl.Line(models.Section(models.PartError, "error"), models.Section(models.PartMessage, message))
}

// LogComplete logs "<time> complete <message>"
func (cl *ConsoleLogger) LogComplete(message string) {
	cl.Line(models.Section(models.PartComplete, "complete"), models.Section(models.PartMessage, message))
}

// LogDebug logs "<time> debug <message>" with the message in the DEBUG color
func (cl *ConsoleLogger) LogDebug(message string) {
	cl.Line(models.Section(models.PartMessage, "debug"), models.Section(models.PartDebug, message))
}

// Line composes sections against the logger's start and prints them
func (cl *ConsoleLogger) Line(sections ...models.LogSection) {
	if cl.disabled {
		return
	}
	line := cl.composer.Compose(cl.start, sections...)

	if !cl.cursor.Interactive() {
		cl.cursor.Println(line)
		return
	}

	cl.cursor.Print(line + "\n" + strings.Repeat("\n", reserveLines))
	cl.cursor.Up(reserveLines)
}
