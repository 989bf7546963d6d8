package config

import (
	"os"
	"path/filepath"

	"github.com/xdg/hermit/internal/pathutil"
)

// Dir returns the hermit configuration directory:
// $XDG_CONFIG_HOME/hermit, or ~/.config/hermit when unset.
func Dir() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		base = "~/.config"
	}
	return filepath.Join(pathutil.ExpandHome(base), "hermit")
}

// Path returns the full path of the configuration file.
func Path() string {
	return filepath.Join(Dir(), "config.yaml")
}
