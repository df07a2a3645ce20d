package config

import (
	"fmt"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// BlastDBSection is the config section database specs usually live under.
const BlastDBSection = "blastdbs"

// DatabaseSpec describes the blast databases available to a run: a root
// directory plus nucleotide and protein index paths relative to it.
type DatabaseSpec struct {
	RootFp     string            `yaml:"root_fp"`
	Nucleotide map[string]string `yaml:"nucleotide,omitempty"`
	Protein    map[string]string `yaml:"protein,omitempty"`
}

// DatabaseIndex holds the expanded database paths, keyed by database name.
type DatabaseIndex struct {
	Nucl map[string]string `yaml:"nucl"`
	Prot map[string]string `yaml:"prot"`
}

// DecodeDatabases decodes a database spec from a config subtree, typically
// the "blastdbs" section.
func DecodeDatabases(node *yaml.Node) (*DatabaseSpec, error) {
	if node == nil {
		return nil, fmt.Errorf("database spec is nil")
	}
	var spec DatabaseSpec
	if err := node.Decode(&spec); err != nil {
		return nil, fmt.Errorf("decoding database spec: %w", err)
	}
	return &spec, nil
}

// ProcessDatabases expands spec into absolute index paths anchored at its
// verified root directory. Both maps of the returned index are always
// non-nil, and the spec itself is never modified.
func ProcessDatabases(spec *DatabaseSpec) (*DatabaseIndex, error) {
	if spec == nil {
		return nil, fmt.Errorf("database spec is nil")
	}
	rootPath := Makepath(spec.RootFp)
	root, err := Verify(rootPath)
	if err != nil {
		return nil, &PathNotFoundError{Key: "root_fp", Path: rootPath}
	}

	index := &DatabaseIndex{
		Nucl: make(map[string]string, len(spec.Nucleotide)),
		Prot: make(map[string]string, len(spec.Protein)),
	}
	for name, p := range spec.Nucleotide {
		index.Nucl[name] = joinDatabasePath(root, p)
	}
	for name, p := range spec.Protein {
		index.Prot[name] = joinDatabasePath(root, p)
	}
	return index, nil
}

// joinDatabasePath anchors a database path at root unless it is already
// absolute.
func joinDatabasePath(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}
