// Package config resolves user-supplied paths for the cadence CLI.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// defaultDatabasePath is where the transaction database lives when the
// configuration says nothing.
const defaultDatabasePath = "$HOME/.local/share/cadence/cadence.db"

// DatabasePath resolves the configured database location, falling back to
// the default under the user's home directory.
func DatabasePath(configured string) string {
	if configured == "" {
		configured = defaultDatabasePath
	}
	return ExpandPath(configured)
}

// ExpandPath expands a leading ~ and any $VAR environment references in a
// file path, so values like "~/finance/cadence.db" work from the config
// file and the command line alike.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	return os.ExpandEnv(path)
}
