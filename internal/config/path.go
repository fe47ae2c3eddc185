// Package config resolves values that arrive from config files and flags.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath resolves a path the user wrote in a config file or flag. A
// leading ~ becomes the home directory and $VAR references are substituted,
// so "$HOME/.local/share/boitech/boitech.db" and "~/journal.json" both work.
// An unresolvable home directory leaves the ~ in place.
func ExpandPath(path string) string {
	switch {
	case path == "":
		return path
	case path == "~":
		if home, err := os.UserHomeDir(); err == nil {
			path = home
		}
	case strings.HasPrefix(path, "~/"):
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}

	return os.ExpandEnv(path)
}
