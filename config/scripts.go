package config

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
)

//go:embed scripts/*.tengo
var scriptsFS embed.FS

// DefaultScript is the embedded categorizer shipped with the board.
const DefaultScript = "categorize.tengo"

// LoadScript reads a tengo script from disk, falling back to the embedded
// scripts directory for bare names.
func LoadScript(name string) ([]byte, error) {
	if data, err := os.ReadFile(name); err == nil {
		return data, nil
	}
	data, err := scriptsFS.ReadFile("scripts/" + filepath.Base(name))
	if err != nil {
		return nil, fmt.Errorf("config: load script %s: %w", name, err)
	}
	return data, nil
}
