// Package paths resolves the CLI's configuration directory, the real-data
// directory read by the harness builder, and the parent directory fixtures
// are created under.
package paths

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/mesh-intelligence/msfixture/pkg/types"
)

// appName names the per-user configuration directory.
const appName = "msfixture"

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "MSFIXTURE_CONFIG_DIR"
	EnvDataDir   = "MSFIXTURE_DATA_DIR"
	EnvOutDir    = "MSFIXTURE_OUT_DIR"
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
	tempDir       func() string
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
	tempDir:       os.TempDir,
}

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/msfixture (fallback ~/.config/msfixture)
// macOS:   ~/Library/Application Support/msfixture
// Windows: %APPDATA%/msfixture
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, appName), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", appName), nil
	default:
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, appName), nil
	}
}

// DefaultOutDir returns the parent directory for fixtures when nothing else
// is configured: <system temp>/msfixture.
func DefaultOutDir() string {
	return filepath.Join(platformDir.tempDir(), appName)
}

// ResolveConfigDir returns the configuration directory following the precedence
// chain: flag > MSFIXTURE_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveDataDir returns the real-data directory following the precedence
// chain: flag > configYAMLValue > MSFIXTURE_DATA_DIR env > $(CWD)/tests/data.
func ResolveDataDir(flag, configYAMLValue string) (string, error) {
	return resolve(flag, configYAMLValue, EnvDataDir, func() (string, error) {
		cwd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		return filepath.Join(cwd, filepath.FromSlash(types.DefaultDataDir)), nil
	})
}

// ResolveOutDir returns the fixture parent directory following the
// precedence chain: flag > configYAMLValue > MSFIXTURE_OUT_DIR env >
// DefaultOutDir().
func ResolveOutDir(flag, configYAMLValue string) (string, error) {
	return resolve(flag, configYAMLValue, EnvOutDir, func() (string, error) {
		return DefaultOutDir(), nil
	})
}

func resolve(flag, configYAMLValue, env string, fallback func() (string, error)) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configYAMLValue != "" {
		return filepath.Abs(configYAMLValue)
	}
	if v := os.Getenv(env); v != "" {
		return filepath.Abs(v)
	}
	return fallback()
}
