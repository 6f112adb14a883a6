package model

import (
	"os"
	"path/filepath"
)

// ConfigDir is the per-user configuration directory (~/.authorscope)
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".authorscope"), nil
}

func defaultCacheDir() string {
	dir, err := ConfigDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "authorscope-cache")
	}
	return filepath.Join(dir, "cache")
}
