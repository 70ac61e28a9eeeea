package loader

import (
	"os"
	"path/filepath"
)

// Configuration file locations relative to their base directories.
const (
	// GlobalFile is the global config file under the user config directory.
	GlobalFile = "evil/config.toml"

	// WorkspaceFile is the workspace config file under the workspace root.
	WorkspaceFile = ".evil/config.toml"
)

// GlobalPath returns $XDG_CONFIG_HOME/evil/config.toml, falling back to
// the platform user config directory. It returns "" if neither is known.
func GlobalPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, GlobalFile)
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, GlobalFile)
}

// WorkspacePath returns the workspace config file for root, or "" if root
// is empty.
func WorkspacePath(root string) string {
	if root == "" {
		return ""
	}
	return filepath.Join(root, WorkspaceFile)
}
