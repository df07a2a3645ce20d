package config

import (
	"os"
	"path/filepath"
	"strings"
)

// Makepath expands a leading "~" to the current user's home directory.
// Any other path, including the empty string, is returned unchanged, as is
// the input when the home directory cannot be determined.
func Makepath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}

// Verify checks that path exists and returns its canonical form: absolute,
// cleaned, symlinks resolved. A path that does not exist yields a
// *PathNotFoundError naming it.
func Verify(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(abs); err != nil {
		return "", &PathNotFoundError{Path: path}
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", &PathNotFoundError{Path: path}
	}
	return resolved, nil
}
