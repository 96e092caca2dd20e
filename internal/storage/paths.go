// Package storage archives games, result statistics and shell preferences in
// a BadgerDB database.
package storage

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "chessrules"

// userDataHome returns the per-user application data root:
// ~/Library/Application Support on macOS, %APPDATA% on Windows and
// $XDG_DATA_HOME or ~/.local/share elsewhere.
func userDataHome() (string, error) {
	var env string
	var fallback []string
	switch runtime.GOOS {
	case "darwin":
		fallback = []string{"Library", "Application Support"}
	case "windows":
		env, fallback = "APPDATA", []string{"AppData", "Roaming"}
	default:
		env, fallback = "XDG_DATA_HOME", []string{".local", "share"}
	}

	if env != "" {
		if dir := os.Getenv(env); dir != "" {
			return dir, nil
		}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(append([]string{home}, fallback...)...), nil
}

// appDir returns a directory under the application data dir, creating it.
func appDir(sub ...string) (string, error) {
	root, err := userDataHome()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(append([]string{root, appName}, sub...)...)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

// GetDataDir returns the application data directory.
func GetDataDir() (string, error) {
	return appDir()
}

// GetDatabaseDir returns the directory holding the badger files.
func GetDatabaseDir() (string, error) {
	return appDir("db")
}

// GetExportDir returns where diagrams are written when no path is given.
func GetExportDir() (string, error) {
	return appDir("diagrams")
}
