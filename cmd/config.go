package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ATCHON/sunbeam/internal/config"
	"github.com/ATCHON/sunbeam/pkg/logging"
)

// configCmd groups the subcommands operating on existing project configs.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and modify project configs",
}

var (
	configModifyFp string
	configStrict   bool
	configWrite    bool
)

// configUpdateCmd re-resolves a project config file.
var configUpdateCmd = &cobra.Command{
	Use:   "update CONFIG",
	Short: "Fold overrides and extension settings into a config",
	Long: `Re-resolve a project config: apply override values from a YAML file,
then fold in the config fragments of installed extensions. Comments and
key order of the original file are preserved.

With --strict, overrides may only touch keys the config already has;
anything else is skipped with a warning, and extension fragments are
left out. Use it to migrate an old config onto a new sunbeam release
without picking up stray keys.

Examples:
  sunbeam config update sunbeam_config.yml
  sunbeam config update --modify overrides.yml --write sunbeam_config.yml
  sunbeam config update --strict --modify new_defaults.yml old_config.yml`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigUpdate,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configUpdateCmd)

	configUpdateCmd.Flags().StringVarP(&configModifyFp, "modify", "m", "", "YAML file with override values")
	configUpdateCmd.Flags().BoolVarP(&configStrict, "strict", "s", false, "Only update keys already present in the config")
	configUpdateCmd.Flags().BoolVarP(&configWrite, "write", "w", false, "Rewrite the config file in place instead of printing")
}

func runConfigUpdate(cmd *cobra.Command, args []string) error {
	configFp := args[0]
	data, err := os.ReadFile(configFp)
	if err != nil {
		return fmt.Errorf("reading config %s: %w", configFp, err)
	}

	var overrides *yaml.Node
	if configModifyFp != "" {
		modData, err := os.ReadFile(configModifyFp)
		if err != nil {
			return fmt.Errorf("reading overrides %s: %w", configModifyFp, err)
		}
		overrides, err = config.Parse(modData)
		if err != nil {
			return err
		}
	}

	var updated *yaml.Node
	if configStrict {
		var skipped []string
		updated, skipped, err = config.UpdateStrict(data, overrides)
		if err != nil {
			return err
		}
		if len(skipped) > 0 {
			logging.Warn("Config", "Skipped %d override keys not present in %s", len(skipped), configFp)
		}
	} else {
		updated, err = config.Update(data, overrides)
		if err != nil {
			return err
		}
	}

	if !configWrite {
		return config.Dump(updated, cmd.OutOrStdout())
	}

	f, err := os.Create(configFp)
	if err != nil {
		return fmt.Errorf("writing config %s: %w", configFp, err)
	}
	defer f.Close()
	if err := config.Dump(updated, f); err != nil {
		return err
	}
	logging.Info("Config", "Updated %s", configFp)
	return nil
}
