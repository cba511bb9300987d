package logger

import (
	"strings"
	"testing"
	"time"

	"github.com/harrison/flame/internal/models"
	"github.com/harrison/flame/internal/palette"
	"github.com/stretchr/testify/assert"
)

func fixedComposer(plain bool, instanceID string, start time.Time, elapsed time.Duration) *Composer {
	c := NewComposer(palette.Default(), plain, instanceID)
	c.now = func() time.Time { return start.Add(elapsed) }
	return c
}

func TestComposer_Compose(t *testing.T) {
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	t.Run("colored sections joined by space", func(t *testing.T) {
		c := fixedComposer(false, "", start, 65*time.Second)
		line := c.Compose(start,
			models.Section(models.PartInfo, "info"),
			models.Section(models.PartMessage, "hello"),
		)

		assert.True(t, strings.HasPrefix(line, "\x1b[90m00:01:05"), "line = %q", line)
		assert.Contains(t, line, "\x1b[90minfo")
		assert.Contains(t, line, "\x1b[37mhello")
		assert.Equal(t, "00:01:05 info hello", StripEscapes(line))
	})

	t.Run("plain mode strips everything", func(t *testing.T) {
		c := fixedComposer(true, "", start, 0)
		line := c.Compose(start,
			models.Section(models.PartError, "error"),
			models.Section(models.PartMessage, "disk \x1b[2Kfull\x1b[31m"),
		)
		assert.Equal(t, "00:00:00 error disk full", line)
	})

	t.Run("instance id follows time", func(t *testing.T) {
		c := fixedComposer(true, "abc-123", start, 0)
		line := c.Compose(start, models.Section(models.PartInfo, "info"))
		assert.Equal(t, "00:00:00 abc-123 info", line)
	})

	t.Run("unknown part falls back to white", func(t *testing.T) {
		c := fixedComposer(false, "", start, 0)
		line := c.Compose(start, models.Section(models.LogPart("CUSTOM"), "x"))
		assert.Contains(t, line, "\x1b[37mx")
	})
}

func TestComposer_PlainNeverEmitsEscapes(t *testing.T) {
	start := time.Now()
	c := fixedComposer(true, "id", start, time.Second)
	inputs := []string{
		"", "plain", "\x1b", "\x1b[", "\x1b[1A\x1b[2K", "\x1b[38;5;208m", "mixed \x1b[?1049h end", "\x1b\x1b\x1b",
	}
	for _, in := range inputs {
		for _, part := range models.AllParts {
			line := c.Compose(start, models.Section(part, in), models.Section(models.PartMessage, in))
			if strings.ContainsRune(line, 0x1b) {
				t.Errorf("escape in plain line for input %q part %s: %q", in, part, line)
			}
		}
	}
}

func TestComposer_Paint(t *testing.T) {
	c := NewComposer(nil, false, "")
	assert.Contains(t, c.Paint(models.PartFormat, "Active Jobs:"), "\x1b[90m")

	plain := NewComposer(nil, true, "")
	assert.Equal(t, "Active Jobs:", plain.Paint(models.PartFormat, "Active Jobs:"))
	assert.True(t, plain.Plain())
}
