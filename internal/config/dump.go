package config

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Dump writes a config to w. Parsed trees and plain mappings are encoded
// as YAML with two-space indentation; raw text is written verbatim. Any
// other type is an error rather than a silent guess.
func Dump(config interface{}, w io.Writer) error {
	switch c := config.(type) {
	case *yaml.Node:
		return encodeYAML(c, w)
	case map[string]interface{}:
		return encodeYAML(c, w)
	case string:
		_, err := io.WriteString(w, c)
		return err
	case []byte:
		_, err := w.Write(c)
		return err
	default:
		return fmt.Errorf("cannot dump %T as a config", config)
	}
}

func encodeYAML(v interface{}, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return enc.Close()
}
