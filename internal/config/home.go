package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// HomeEnv overrides the flame configuration directory
const HomeEnv = "FLAME_HOME"

// GetFlameHome returns the flame configuration directory.
// Priority order:
//  1. FLAME_HOME environment variable (if set)
//  2. .flame under the current working directory
//
// The directory is not created; a missing config file means defaults.
func GetFlameHome() (string, error) {
	if home := os.Getenv(HomeEnv); home != "" {
		return home, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return filepath.Join(cwd, ".flame"), nil
}
