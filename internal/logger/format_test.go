package logger

import (
	"strings"
	"testing"
	"time"
)

func TestElapsed(t *testing.T) {
	tests := []struct {
		name string
		d    time.Duration
		want string
	}{
		{name: "zero", d: 0, want: "00:00:00"},
		{name: "sub-second truncates", d: 999 * time.Millisecond, want: "00:00:00"},
		{name: "seconds", d: 42 * time.Second, want: "00:00:42"},
		{name: "minutes and seconds", d: 3*time.Minute + 7*time.Second, want: "00:03:07"},
		{name: "hours", d: 2*time.Hour + 5*time.Minute + 9*time.Second, want: "02:05:09"},
		{name: "over a day", d: 101 * time.Hour, want: "101:00:00"},
		{name: "negative clamps", d: -5 * time.Second, want: "00:00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Elapsed(tt.d); got != tt.want {
				t.Errorf("Elapsed(%v) = %q, want %q", tt.d, got, tt.want)
			}
		})
	}
}

func TestStripEscapes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain text untouched", in: "hello", want: "hello"},
		{name: "sgr color", in: "\x1b[31mred\x1b[0m", want: "red"},
		{name: "256 color", in: "\x1b[38;5;208morange\x1b[0;0;0m", want: "orange"},
		{name: "cursor movement", in: "a\x1b[3Ab\x1b[12B", want: "ab"},
		{name: "erase line", in: "\x1b[2Kx", want: "x"},
		{name: "private mode", in: "\x1b[?25lhidden", want: "hidden"},
		{name: "stray escape", in: "bad\x1b", want: "bad"},
		{name: "non-csi escape", in: "\x1b]0;title\x07x", want: "]0;title\x07x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StripEscapes(tt.in)
			if got != tt.want {
				t.Errorf("StripEscapes(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if strings.ContainsRune(got, 0x1b) {
				t.Errorf("escape byte left in %q", got)
			}
		})
	}
}
