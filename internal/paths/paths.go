// Package paths resolves the configuration and data directories of owloop.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "owloop"

// Environment variables overriding the directories.
const (
	EnvConfigDir = "OWLOOP_CONFIG_DIR"
	EnvDataDir   = "OWLOOP_DATA_DIR"
)

// platformDir holds platform lookups, overridable in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/owloop (fallback ~/.config/owloop)
// macOS:   ~/Library/Application Support/owloop
// Windows: %APPDATA%/owloop
func DefaultConfigDir() (string, error) {
	return platformPath("XDG_CONFIG_HOME", ".config")
}

// DefaultDataDir returns the platform data directory.
//
// Linux:   $XDG_DATA_HOME/owloop (fallback ~/.local/share/owloop)
// Elsewhere the configuration directory is used.
func DefaultDataDir() (string, error) {
	return platformPath("XDG_DATA_HOME", filepath.Join(".local", "share"))
}

func platformPath(xdgVar, homeRel string) (string, error) {
	if runtime.GOOS == "linux" {
		if xdg := os.Getenv(xdgVar); xdg != "" {
			return filepath.Join(xdg, appName), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, homeRel, appName), nil
	}
	dir, err := platformDir.userConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName), nil
}

// ResolveConfigDir picks the configuration directory: explicit, then
// OWLOOP_CONFIG_DIR, then DefaultConfigDir. The result is absolute.
func ResolveConfigDir(explicit string) (string, error) {
	if explicit != "" {
		return filepath.Abs(explicit)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveDataDir picks the data directory: explicit, then the value from
// config.yaml, then OWLOOP_DATA_DIR, then DefaultDataDir. The result is
// absolute.
func ResolveDataDir(explicit, configured string) (string, error) {
	for _, dir := range []string{explicit, configured, os.Getenv(EnvDataDir)} {
		if dir != "" {
			return filepath.Abs(dir)
		}
	}
	return DefaultDataDir()
}

// OntologyDir returns the directory holding the store of the named
// ontology under dataDir.
func OntologyDir(dataDir, name string) string {
	return filepath.Join(dataDir, name)
}
