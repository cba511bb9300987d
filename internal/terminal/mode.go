package terminal

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// Mode selects between cursor-controlled and plain output
type Mode int

// Output modes
const (
	ModeAuto        Mode = iota // Decide from environment and writer
	ModeInteractive             // Colors and cursor movement
	ModePlain                   // Text only, no escape sequences
)

// Environment markers that force plain output
const (
	// ServerlessMarkerEnv is set by AWS Lambda for every invocation
	ServerlessMarkerEnv = "LAMBDA_TASK_ROOT"
	// PlainEnv lets users force plain output anywhere
	PlainEnv = "FLAME_PLAIN"
)

// String returns the lowercase mode name
func (m Mode) String() string {
	switch m {
	case ModeInteractive:
		return "interactive"
	case ModePlain:
		return "plain"
	default:
		return "auto"
	}
}

// ParseMode converts a mode name to a Mode. Unknown names map to ModeAuto.
func ParseMode(name string) Mode {
	switch name {
	case "interactive":
		return ModeInteractive
	case "plain":
		return ModePlain
	default:
		return ModeAuto
	}
}

// Resolve returns mode unchanged unless it is ModeAuto, in which case the
// environment and writer decide.
func Resolve(mode Mode, w io.Writer) Mode {
	if mode != ModeAuto {
		return mode
	}
	return Detect(w)
}

// Detect returns ModePlain when a plain-output marker is present in the
// environment or when w is not a terminal.
func Detect(w io.Writer) Mode {
	if os.Getenv(ServerlessMarkerEnv) != "" || os.Getenv(PlainEnv) != "" {
		return ModePlain
	}
	if !IsTerminal(w) {
		return ModePlain
	}
	return ModeInteractive
}

// IsTerminal checks if w is backed by a terminal file descriptor.
// Writers without a file descriptor (buffers, pipes wrapped in io.Writer)
// are never terminals.
func IsTerminal(w io.Writer) bool {
	if w == nil {
		return false
	}
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
