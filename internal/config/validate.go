package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ATCHON/sunbeam/pkg/logging"
)

// ValidatePaths resolves every path-valued key of one config section and
// returns the transformed section; the input node is left untouched.
//
// A key is path-valued when it ends in "_fp". Values are tilde-expanded,
// joined onto root when relative, and, except for output_fp, required to
// exist and rewritten to their canonical absolute form. Other keys pass
// through unchanged, comments and key order included.
func ValidatePaths(section *yaml.Node, root string) (*yaml.Node, error) {
	if section == nil {
		return nil, fmt.Errorf("section is nil")
	}
	if section.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("section is not a mapping, got %s", kindString(section.Kind))
	}

	out := Clone(section)
	for i := 0; i+1 < len(out.Content); i += 2 {
		key, value := out.Content[i], out.Content[i+1]
		if !strings.HasSuffix(key.Value, PathKeySuffix) {
			continue
		}
		if value.Kind != yaml.ScalarNode || value.Tag == nullTag {
			return nil, fmt.Errorf("key %q: expected a path string, got %s", key.Value, nodeTypeString(value))
		}

		path := Makepath(value.Value)
		if !filepath.IsAbs(path) {
			path = filepath.Join(root, path)
		}
		// The output directory does not exist until the pipeline runs.
		if key.Value != OutputKey {
			resolved, err := Verify(path)
			if err != nil {
				return nil, &PathNotFoundError{Key: key.Value, Path: path}
			}
			path = resolved
		}
		setScalar(value, path)
	}
	return out, nil
}

// CheckConfig resolves a full config document: the root directory comes
// from all.root (tilde-expanded, must exist) or, when absent, the current
// working directory; every section then has its paths validated against
// that root. The returned copy records the resolved root under all.root,
// whatever the input held.
func CheckConfig(cfg *yaml.Node) (*yaml.Node, error) {
	if cfg == nil || cfg.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("config is not a mapping")
	}
	all := mappingValue(cfg, AllSection)
	if all == nil {
		return nil, ErrNoAllSection
	}
	if all.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("section %q is not a mapping, got %s", AllSection, kindString(all.Kind))
	}

	root, err := resolveRoot(all)
	if err != nil {
		return nil, err
	}
	logging.Debug("Config", "Resolved project root to %s", root)

	out := Clone(cfg)
	for i := 0; i+1 < len(out.Content); i += 2 {
		name, section := out.Content[i], out.Content[i+1]
		if section.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("section %q is not a mapping, got %s", name.Value, kindString(section.Kind))
		}
		validated, err := ValidatePaths(section, root)
		if err != nil {
			return nil, err
		}
		out.Content[i+1] = validated
	}

	setMappingString(mappingValue(out, AllSection), RootKey, root)
	return out, nil
}

// resolveRoot picks the project root for path validation.
func resolveRoot(all *yaml.Node) (string, error) {
	rootNode := mappingValue(all, RootKey)
	if rootNode == nil {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("determining working directory: %w", err)
		}
		return wd, nil
	}
	if rootNode.Kind != yaml.ScalarNode || rootNode.Tag == nullTag {
		return "", fmt.Errorf("key %q: expected a path string, got %s", RootKey, nodeTypeString(rootNode))
	}
	path := Makepath(rootNode.Value)
	resolved, err := Verify(path)
	if err != nil {
		return "", &PathNotFoundError{Key: RootKey, Path: path}
	}
	return resolved, nil
}

// nodeTypeString names a node's shape for error messages.
func nodeTypeString(node *yaml.Node) string {
	if node.Kind == yaml.ScalarNode && node.Tag == nullTag {
		return "null"
	}
	return kindString(node.Kind)
}

// OutputSubdir returns the output directory of one pipeline section: the
// run's output_fp joined with the section's suffix.
func OutputSubdir(cfg *yaml.Node, section string) (string, error) {
	all := Section(cfg, AllSection)
	if all == nil {
		return "", ErrNoAllSection
	}
	output := mappingValue(all, OutputKey)
	if output == nil || output.Kind != yaml.ScalarNode {
		return "", fmt.Errorf("section %q has no %q key", AllSection, OutputKey)
	}
	sec := Section(cfg, section)
	if sec == nil {
		return "", fmt.Errorf("config has no %q section", section)
	}
	suffix := mappingValue(sec, "suffix")
	if suffix == nil || suffix.Kind != yaml.ScalarNode {
		return "", fmt.Errorf("section %q has no suffix key", section)
	}
	return filepath.Join(output.Value, suffix.Value), nil
}
