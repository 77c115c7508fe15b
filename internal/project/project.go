// Package project persists collections, shelf presets and backups as JSON files.
package project

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// DefaultDataDir returns the default directory for application data.
// On all platforms this is ~/.shelfsort/
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".shelfsort")
}

// DataDir returns dir, or DefaultDataDir when dir is empty.
func DataDir(dir string) string {
	if dir == "" {
		return DefaultDataDir()
	}
	return dir
}

// writeJSON marshals v with indentation and writes it to path,
// creating parent directories if they do not exist.
func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
