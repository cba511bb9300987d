package logger

import (
	"strings"
	"time"

	"github.com/harrison/flame/internal/models"
	"github.com/harrison/flame/internal/palette"
)

// Composer assembles colored sections into a single log line.
//
// Every line starts with a TIME section holding the elapsed time since the
// supplied start instant. When an instance ID is configured it follows the
// time as a DEBUG section. Sections are joined with a single space.
type Composer struct {
	pallet     palette.Pallet
	plain      bool
	instanceID string
	now        func() time.Time
}

// NewComposer creates a Composer. In plain mode every escape sequence is
// stripped from composed lines.
func NewComposer(pallet palette.Pallet, plain bool, instanceID string) *Composer {
	if pallet == nil {
		pallet = palette.Default()
	}
	return &Composer{
		pallet:     pallet,
		plain:      plain,
		instanceID: instanceID,
		now:        time.Now,
	}
}

// Plain returns true if composed lines carry no escape sequences
func (c *Composer) Plain() bool {
	return c.plain
}

// Compose renders sections prefixed by the elapsed time since start
func (c *Composer) Compose(start time.Time, sections ...models.LogSection) string {
	all := make([]models.LogSection, 0, len(sections)+2)
	all = append(all, models.Section(models.PartTime, Elapsed(c.now().Sub(start))))
	if c.instanceID != "" {
		all = append(all, models.Section(models.PartDebug, c.instanceID))
	}
	all = append(all, sections...)

	parts := make([]string, len(all))
	for i, section := range all {
		parts[i] = c.pallet.Paint(section.Part, section.Message)
	}
	line := strings.Join(parts, " ")

	if c.plain {
		return StripEscapes(line)
	}
	return line
}

// Paint colors a single fragment, honoring plain mode
func (c *Composer) Paint(part models.LogPart, message string) string {
	if c.plain {
		return StripEscapes(message)
	}
	return c.pallet.Paint(part, message)
}
