package config

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ATCHON/sunbeam/pkg/logging"
)

// Merge folds src into target and returns target. New keys are copied in,
// nested mappings are merged recursively, and everything else overwrites
// the target value. Comments on kept target nodes survive; src is never
// modified.
func Merge(target, src *yaml.Node) (*yaml.Node, error) {
	if err := checkMergeArgs(target, src); err != nil {
		return nil, err
	}
	mergeMapping(target, src, false, "", nil)
	return target, nil
}

// MergeStrict folds src into target without ever introducing a key, at any
// depth. Source keys absent from the target are skipped; each skipped key's
// dotted path is logged as a warning and collected into the returned slice
// so callers can surface them.
func MergeStrict(target, src *yaml.Node) (*yaml.Node, []string, error) {
	if err := checkMergeArgs(target, src); err != nil {
		return nil, nil, err
	}
	var skipped []string
	mergeMapping(target, src, true, "", &skipped)
	return target, skipped, nil
}

// Update re-resolves a config document: parse data, fold in overrides (nil
// means none), then fold in the config fragments of installed extensions.
// The extension directory comes from $SUNBEAM_DIR per NewExtensions.
func Update(data []byte, overrides *yaml.Node) (*yaml.Node, error) {
	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	if overrides != nil {
		if _, err := Merge(cfg, overrides); err != nil {
			return nil, err
		}
	}

	fragments, err := NewExtensions().Config()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(fragments) != "" {
		ext, err := Parse([]byte(fragments))
		if err != nil {
			return nil, fmt.Errorf("parsing extension config fragments: %w", err)
		}
		if _, err := Merge(cfg, ext); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// UpdateStrict is Update under MergeStrict semantics: overrides may only
// touch keys the document already has, and extension fragments are not
// folded in. The skipped-key paths are returned alongside the tree.
func UpdateStrict(data []byte, overrides *yaml.Node) (*yaml.Node, []string, error) {
	cfg, err := Parse(data)
	if err != nil {
		return nil, nil, err
	}
	if overrides == nil {
		return cfg, nil, nil
	}
	return MergeStrict(cfg, overrides)
}

func checkMergeArgs(target, src *yaml.Node) error {
	if target == nil || target.Kind != yaml.MappingNode {
		return fmt.Errorf("merge target must be a mapping")
	}
	if src == nil || src.Kind != yaml.MappingNode {
		return fmt.Errorf("merge source must be a mapping")
	}
	return nil
}

func mergeMapping(target, src *yaml.Node, strict bool, prefix string, skipped *[]string) {
	for i := 0; i+1 < len(src.Content); i += 2 {
		key, value := src.Content[i], src.Content[i+1]
		keyPath := joinKeyPath(prefix, key.Value)
		current := mappingValue(target, key.Value)

		if current == nil {
			if strict {
				*skipped = append(*skipped, keyPath)
				logging.Warn("Config", "Key %q not found in target, skipping", keyPath)
				continue
			}
			target.Content = append(target.Content, Clone(key), Clone(value))
			continue
		}

		if value.Kind == yaml.MappingNode && current.Kind == yaml.MappingNode {
			mergeMapping(current, value, strict, keyPath, skipped)
			continue
		}
		if strict && value.Kind == yaml.MappingNode {
			// Replacing a non-mapping with a mapping would smuggle new keys in.
			*skipped = append(*skipped, keyPath)
			logging.Warn("Config", "Key %q is not a mapping in target, skipping", keyPath)
			continue
		}
		replaceValue(current, value)
	}
}

// replaceValue rewrites dst in place with a deep copy of src, keeping
// dst's comments wherever src carries none.
func replaceValue(dst, src *yaml.Node) {
	head, line, foot := dst.HeadComment, dst.LineComment, dst.FootComment
	*dst = *Clone(src)
	if dst.HeadComment == "" {
		dst.HeadComment = head
	}
	if dst.LineComment == "" {
		dst.LineComment = line
	}
	if dst.FootComment == "" {
		dst.FootComment = foot
	}
}

func joinKeyPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
