package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ATCHON/sunbeam/pkg/logging"
)

const (
	// EnvSunbeamDir locates the sunbeam installation holding extensions.
	EnvSunbeamDir = "SUNBEAM_DIR"
	// ExtensionsDirName is the subdirectory extensions are installed under.
	ExtensionsDirName = "extensions"
	// ExtensionConfigFile is the config fragment an extension may ship.
	ExtensionConfigFile = "config.yml"
)

// Extensions discovers config fragments contributed by installed
// extensions. Each extension is a directory under <dir>/extensions and may
// ship a config.yml whose sections are folded into project configs.
type Extensions struct {
	dir string
}

// NewExtensions creates an Extensions rooted at $SUNBEAM_DIR, falling back
// to the current working directory when the variable is unset.
func NewExtensions() *Extensions {
	dir := os.Getenv(EnvSunbeamDir)
	if dir == "" {
		if wd, err := os.Getwd(); err == nil {
			dir = wd
		} else {
			dir = "."
		}
	}
	return &Extensions{dir: dir}
}

// NewExtensionsWithDir creates an Extensions rooted at an explicit sunbeam
// directory.
func NewExtensionsWithDir(dir string) *Extensions {
	return &Extensions{dir: dir}
}

// Dir returns the sunbeam directory extensions are discovered under.
func (e *Extensions) Dir() string {
	return e.dir
}

// Config concatenates the config.yml fragment of every installed extension,
// each prefixed with a newline so fragments cannot run into one another.
// Extensions are visited in lexical order, making the aggregate
// deterministic. A missing extensions directory, entries that are not
// directories, and extensions without a config.yml all contribute nothing.
func (e *Extensions) Config() (string, error) {
	root := filepath.Join(e.dir, ExtensionsDirName)
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("listing extensions in %s: %w", root, err)
	}

	var aggregate strings.Builder
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		fragment := filepath.Join(root, entry.Name(), ExtensionConfigFile)
		data, err := os.ReadFile(fragment)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return "", fmt.Errorf("reading extension config %s: %w", fragment, err)
		}
		logging.Debug("Extensions", "Found config fragment for %s", entry.Name())
		aggregate.WriteString("\n")
		aggregate.Write(data)
	}
	return aggregate.String(), nil
}
