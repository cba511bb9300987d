package terminal

import (
	"bytes"
	"os"
	"testing"
)

func TestDetect(t *testing.T) {
	t.Run("buffer is plain", func(t *testing.T) {
		t.Setenv(ServerlessMarkerEnv, "")
		t.Setenv(PlainEnv, "")
		if got := Detect(&bytes.Buffer{}); got != ModePlain {
			t.Errorf("Detect() = %v, want plain", got)
		}
	})

	t.Run("serverless marker forces plain", func(t *testing.T) {
		t.Setenv(ServerlessMarkerEnv, "/var/task")
		if got := Detect(os.Stdout); got != ModePlain {
			t.Errorf("Detect() = %v, want plain", got)
		}
	})

	t.Run("explicit plain env", func(t *testing.T) {
		t.Setenv(PlainEnv, "1")
		if got := Detect(os.Stdout); got != ModePlain {
			t.Errorf("Detect() = %v, want plain", got)
		}
	})

	t.Run("regular file is plain", func(t *testing.T) {
		t.Setenv(ServerlessMarkerEnv, "")
		t.Setenv(PlainEnv, "")
		f, err := os.CreateTemp(t.TempDir(), "out")
		if err != nil {
			t.Fatal(err)
		}
		defer f.Close()
		if got := Detect(f); got != ModePlain {
			t.Errorf("Detect() = %v, want plain", got)
		}
	})
}

func TestResolve_ExplicitModeWins(t *testing.T) {
	t.Setenv(ServerlessMarkerEnv, "/var/task")
	if got := Resolve(ModeInteractive, &bytes.Buffer{}); got != ModeInteractive {
		t.Errorf("Resolve() = %v, want interactive", got)
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
	}{
		{"interactive", ModeInteractive},
		{"plain", ModePlain},
		{"auto", ModeAuto},
		{"", ModeAuto},
		{"bogus", ModeAuto},
	}
	for _, tt := range tests {
		if got := ParseMode(tt.in); got != tt.want {
			t.Errorf("ParseMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
		if tt.want != ModeAuto && tt.want.String() != tt.in {
			t.Errorf("String() = %q, want %q", tt.want.String(), tt.in)
		}
	}
}

func TestIsTerminal_Nil(t *testing.T) {
	if IsTerminal(nil) {
		t.Error("nil writer reported as terminal")
	}
}
