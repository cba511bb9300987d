// Package palette maps log parts to terminal colors.
//
// Color names resolve to fatih/color values. Every color is force-enabled:
// whether escape codes reach the terminal is decided by the terminal layer,
// which strips them in plain mode, not by fatih's global NoColor flag.
package palette

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/harrison/flame/internal/models"
)

// FallbackColor is used for parts with no pallet entry and for unknown names
const FallbackColor = "white"

// colors is the named color table
var colors = map[string]*color.Color{
	"white":   forced(color.FgWhite),
	"grey":    forced(color.FgHiBlack),
	"black":   forced(color.FgBlack),
	"red":     forced(color.FgRed),
	"green":   forced(color.FgGreen),
	"yellow":  forced(color.FgYellow),
	"blue":    forced(color.FgBlue),
	"magenta": forced(color.FgMagenta),
	"cyan":    forced(color.FgCyan),
	// 256-color orange: ESC[38;5;208m
	"orange": forced(38, 5, 208),
}

func forced(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	c.EnableColor()
	return c
}

// Names returns all color names in sorted order
func Names() []string {
	names := make([]string, 0, len(colors))
	for name := range colors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsColor returns true if name is in the color table
func IsColor(name string) bool {
	_, ok := colors[name]
	return ok
}

// Pallet maps each log part to a color name
type Pallet map[models.LogPart]string

// Default returns a fresh copy of the built-in pallet
func Default() Pallet {
	return Pallet{
		models.PartInfo:     "grey",
		models.PartError:    "red",
		models.PartWarning:  "orange",
		models.PartFormat:   "grey",
		models.PartTime:     "grey",
		models.PartMessage:  "white",
		models.PartComplete: "green",
		models.PartRunning:  "magenta",
		models.PartWaiting:  "grey",
		models.PartDebug:    "grey",
	}
}

// Merge returns the default pallet with overrides applied on top.
// The receiver and overrides are not modified.
func Merge(overrides map[models.LogPart]string) Pallet {
	p := Default()
	for part, name := range overrides {
		p[part] = name
	}
	return p
}

// Validate reports the first override naming a color that is not in the table
func (p Pallet) Validate() error {
	for _, part := range models.AllParts {
		name, ok := p[part]
		if ok && !IsColor(name) {
			return fmt.Errorf("unknown color %q for %s (known: %s)", name, part, strings.Join(Names(), ", "))
		}
	}
	return nil
}

// Color resolves the color for part, falling back to white
func (p Pallet) Color(part models.LogPart) *color.Color {
	if c, ok := colors[p[part]]; ok {
		return c
	}
	return colors[FallbackColor]
}

// Paint wraps message in the color configured for part
func (p Pallet) Paint(part models.LogPart, message string) string {
	return p.Color(part).Sprint(message)
}
