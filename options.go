package flame

import (
	"io"
	"time"

	"github.com/harrison/flame/internal/display"
	"github.com/harrison/flame/internal/models"
	"github.com/harrison/flame/internal/retry"
	"github.com/harrison/flame/internal/terminal"
)

// Part identifies a colored section of a log line
type Part = models.LogPart

// Pallet parts
const (
	PartInfo     = models.PartInfo
	PartError    = models.PartError
	PartWarning  = models.PartWarning
	PartFormat   = models.PartFormat
	PartTime     = models.PartTime
	PartMessage  = models.PartMessage
	PartComplete = models.PartComplete
	PartRunning  = models.PartRunning
	PartWaiting  = models.PartWaiting
	PartDebug    = models.PartDebug
)

// OutputMode selects between cursor-controlled and plain output
type OutputMode = terminal.Mode

// Output modes
const (
	ModeAuto        = terminal.ModeAuto
	ModeInteractive = terminal.ModeInteractive
	ModePlain       = terminal.ModePlain
)

// Defaults applied to zero-valued Options fields
const (
	DefaultRetryLimit      = retry.DefaultLimit
	DefaultBaseRetryDelay  = retry.DefaultBaseDelay
	DefaultRefreshInterval = display.DefaultRefreshInterval
)

// Options configures a Logger. The zero value is ready to use.
type Options struct {
	// Disabled suppresses all output, including terminal control sequences
	Disabled bool

	// Clear wipes the screen once at construction (interactive mode only)
	Clear bool

	// Pallet overrides the color name used for individual parts.
	// Unknown color names render in white.
	Pallet map[Part]string

	// RetryLimit is the total number of attempts RunWithRetries makes
	RetryLimit int

	// BaseRetryDelay is the wait after the first failed attempt; each later
	// wait doubles it
	BaseRetryDelay time.Duration

	// RefreshInterval is how often an active jobs panel redraws itself
	RefreshInterval time.Duration

	// UUID prefixes every line with a per-logger identifier
	UUID bool

	// Output is where lines are written (os.Stdout when nil)
	Output io.Writer

	// Mode forces interactive or plain output; ModeAuto detects it
	Mode OutputMode
}
