package core

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"
)

// RegistryFileName is the default name of the mod registry file
const RegistryFileName = "mods.toml"

// GetModdirLocalStore returns the per-user directory moddir keeps its data in
func GetModdirLocalStore() (string, error) {
	if //goland:noinspection GoBoolExpressions
	runtime.GOOS == "linux" {
		// Prefer $XDG_DATA_HOME over the config dir
		dataHome := os.Getenv("XDG_DATA_HOME")
		if dataHome != "" {
			return filepath.Join(dataHome, "moddir"), nil
		}
	}
	userConfigDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(userConfigDir, "moddir"), nil
}

// GetDefaultRegistryFile returns the registry file used when none is configured
func GetDefaultRegistryFile() (string, error) {
	localStore, err := GetModdirLocalStore()
	if err != nil {
		return "", err
	}
	return filepath.Join(localStore, RegistryFileName), nil
}

// NewLogger creates the logger used for diagnostics when the caller doesn't supply one
func NewLogger() *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "moddir",
	})
}
