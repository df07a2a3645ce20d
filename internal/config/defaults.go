package config

import (
	"embed"
	"fmt"
	"path"

	"gopkg.in/yaml.v3"
)

//go:embed data
var dataFS embed.FS

//go:embed data/default_config.yml
var defaultTemplate string

// DefaultTemplate returns the bundled project config template. The text
// still contains the {PROJECT_FP} and {SB_VERSION} placeholders; New fills
// them in.
func DefaultTemplate() string {
	return defaultTemplate
}

// LoadDefaults parses the named bundled defaults document, data/<name>.yml,
// into a plain mapping. Use Parse on DefaultTemplate's output instead when
// comments need to survive.
func LoadDefaults(name string) (map[string]interface{}, error) {
	data, err := dataFS.ReadFile(path.Join("data", name+".yml"))
	if err != nil {
		return nil, fmt.Errorf("no bundled defaults named %q: %w", name, err)
	}
	defaults := make(map[string]interface{})
	if err := yaml.Unmarshal(data, &defaults); err != nil {
		return nil, fmt.Errorf("parsing bundled defaults %q: %w", name, err)
	}
	return defaults, nil
}
