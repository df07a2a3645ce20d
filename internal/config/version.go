package config

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/ATCHON/sunbeam/internal/version"
)

// defaultConfigVersion stands in for all.version when a config predates
// version stamping, so old files compare as major version zero.
const defaultConfigVersion = "0.0.0"

// CheckCompatibility parses the version the config was written for
// (all.version, "0.0.0" when absent) alongside the package version and
// returns both major components. Whether a mismatch is a warning or an
// abort is the caller's policy.
func CheckCompatibility(cfg *yaml.Node) (pkgMajor, cfgMajor uint64, err error) {
	all := Section(cfg, AllSection)
	if all == nil {
		return 0, 0, ErrNoAllSection
	}

	raw := defaultConfigVersion
	if node := mappingValue(all, VersionKey); node != nil {
		if node.Kind != yaml.ScalarNode {
			return 0, 0, fmt.Errorf("key %q: expected a version string, got %s", VersionKey, nodeTypeString(node))
		}
		raw = node.Value
	}

	cfgVersion, err := semver.NewVersion(raw)
	if err != nil {
		return 0, 0, fmt.Errorf("parsing config version %q: %w", raw, err)
	}
	pkgVersion, err := semver.NewVersion(version.Version)
	if err != nil {
		return 0, 0, fmt.Errorf("parsing sunbeam version %q: %w", version.Version, err)
	}
	return pkgVersion.Major(), cfgVersion.Major(), nil
}
