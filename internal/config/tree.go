package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Well-known keys of a sunbeam config document.
const (
	// AllSection is the section holding run-wide settings.
	AllSection = "all"
	// RootKey is the all-section key anchoring relative paths.
	RootKey = "root"
	// VersionKey is the all-section key recording the sunbeam release.
	VersionKey = "version"
	// OutputKey names the output directory and is exempt from existence checks.
	OutputKey = "output_fp"
	// PathKeySuffix marks keys whose values are filesystem paths.
	PathKeySuffix = "_fp"
)

// Parse reads YAML text into the document's root mapping node, preserving
// comments and key order for later serialization. Empty input (or a bare
// null document) parses to an empty mapping; any other non-mapping root is
// an error.
func Parse(data []byte) (*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if len(doc.Content) == 0 || doc.Content[0] == nil {
		return newMappingNode(), nil
	}
	root := doc.Content[0]
	if root.Kind == yaml.ScalarNode && root.Tag == nullTag {
		return newMappingNode(), nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("config root must be a mapping, got %s", kindString(root.Kind))
	}
	return root, nil
}

// Clone returns a deep copy of node. Transforms clone their input before
// rewriting values, so callers keep an untouched original.
func Clone(node *yaml.Node) *yaml.Node {
	if node == nil {
		return nil
	}
	clone := *node
	if len(node.Content) > 0 {
		clone.Content = make([]*yaml.Node, len(node.Content))
		for i, child := range node.Content {
			clone.Content[i] = Clone(child)
		}
	}
	return &clone
}

// Section returns the value node of a top-level config section, or nil when
// the section is absent (or cfg is not a mapping).
func Section(cfg *yaml.Node, name string) *yaml.Node {
	return mappingValue(cfg, name)
}

const (
	strTag  = "!!str"
	nullTag = "!!null"
)

// mappingValue returns the value node paired with key, or nil.
func mappingValue(mapping *yaml.Node, key string) *yaml.Node {
	if mapping == nil || mapping.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i+1]
		}
	}
	return nil
}

// setMappingString sets key to a string scalar, appending the pair when the
// key is new. Comments attached to an existing value node are kept.
func setMappingString(mapping *yaml.Node, key, value string) {
	if existing := mappingValue(mapping, key); existing != nil {
		setScalar(existing, value)
		return
	}
	mapping.Content = append(mapping.Content, newStringNode(key), newStringNode(value))
}

// setScalar rewrites a node into a string scalar in place, keeping its
// comments and position metadata.
func setScalar(node *yaml.Node, value string) {
	node.Kind = yaml.ScalarNode
	node.Tag = strTag
	node.Value = value
	node.Style = 0
	node.Content = nil
}

func newStringNode(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: strTag, Value: value}
}

func newMappingNode() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

func kindString(kind yaml.Kind) string {
	switch kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}
