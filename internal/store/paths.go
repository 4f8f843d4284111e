package store

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// AppID names the per-application data directory.
const AppID = "dev.notestudio.app"

// StateFileName is the name of the persisted state document.
const StateFileName = "app_state.json"

// DirResolver returns the directory the state file lives in.
type DirResolver func() (string, error)

// AppDataDir returns the platform data directory for appID:
// $XDG_DATA_HOME (or ~/.local/share) on Linux and the BSDs, and the user
// config directory (Application Support, %AppData%) on darwin and windows.
func AppDataDir(appID string) (string, error) {
	base, err := dataHome(runtime.GOOS)
	if err != nil {
		return "", err
	}
	return filepath.Join(base, appID), nil
}

func dataHome(goos string) (string, error) {
	switch goos {
	case "darwin", "windows", "ios":
		dir, err := os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("finding user config directory: %w", err)
		}
		return dir, nil
	default:
		if dir := os.Getenv("XDG_DATA_HOME"); filepath.IsAbs(dir) {
			return dir, nil
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("finding home directory: %w", err)
		}
		return filepath.Join(home, ".local", "share"), nil
	}
}

// DefaultDir resolves the platform data directory for AppID.
func DefaultDir() (string, error) {
	return AppDataDir(AppID)
}

// FixedDir resolves to dir unchanged.
func FixedDir(dir string) DirResolver {
	return func() (string, error) {
		if dir == "" {
			return "", fmt.Errorf("empty state directory")
		}
		return dir, nil
	}
}
