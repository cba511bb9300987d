package models

// LogPart identifies the category of a section in a log line.
// Each part maps to a color through the pallet.
type LogPart string

// Log part constants
const (
	PartInfo     LogPart = "INFO"
	PartError    LogPart = "ERROR"
	PartWarning  LogPart = "WARNING"
	PartFormat   LogPart = "FORMAT"
	PartTime     LogPart = "TIME"
	PartMessage  LogPart = "MESSAGE"
	PartComplete LogPart = "COMPLETE"
	PartRunning  LogPart = "RUNNING"
	PartWaiting  LogPart = "WAITING"
	PartDebug    LogPart = "DEBUG"
)

// AllParts lists every known part in declaration order
var AllParts = []LogPart{
	PartInfo,
	PartError,
	PartWarning,
	PartFormat,
	PartTime,
	PartMessage,
	PartComplete,
	PartRunning,
	PartWaiting,
	PartDebug,
}

// IsKnown returns true if p is one of the declared parts
func (p LogPart) IsKnown() bool {
	for _, known := range AllParts {
		if p == known {
			return true
		}
	}
	return false
}

// LogSection is one (part, message) pair composed into a printed line
type LogSection struct {
	Part    LogPart
	Message string
}

// Section is a shorthand constructor for LogSection
func Section(part LogPart, message string) LogSection {
	return LogSection{Part: part, Message: message}
}
