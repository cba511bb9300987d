package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestRun(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{
			name:       "version",
			args:       []string{"--version"},
			wantCode:   0,
			wantStdout: "flame version",
		},
		{
			name:       "failing job",
			args:       []string{"run", "--mode", "plain", "--retries", "1", "--cmd", "exit 1"},
			wantCode:   1,
			wantStdout: "error Job failed: exit 1",
			wantStderr: "Error: 1 of 1 job(s) failed\n",
		},
		{
			name:       "unknown command",
			args:       []string{"nope"},
			wantCode:   1,
			wantStderr: "Error: unknown command \"nope\"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("FLAME_HOME", t.TempDir())
			var stdout, stderr bytes.Buffer

			code := run(context.Background(), tt.args, &stdout, &stderr)

			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d (stderr %q)", code, tt.wantCode, stderr.String())
			}
			if !strings.Contains(stdout.String(), tt.wantStdout) {
				t.Errorf("stdout = %q, want containing %q", stdout.String(), tt.wantStdout)
			}
			if !strings.Contains(stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want containing %q", stderr.String(), tt.wantStderr)
			}
			if n := strings.Count(stderr.String(), "Error:"); n > 1 {
				t.Errorf("error printed %d times: %q", n, stderr.String())
			}
		})
	}
}
