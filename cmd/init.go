package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ATCHON/sunbeam/internal/config"
	"github.com/ATCHON/sunbeam/internal/version"
	"github.com/ATCHON/sunbeam/pkg/logging"
)

var (
	initTemplateFp string
	initOutput     string
	initForce      bool
)

// initCmd creates a project directory with a freshly rendered config.
var initCmd = &cobra.Command{
	Use:   "init PROJECT_DIR",
	Short: "Create a new sunbeam project",
	Long: `Create a new sunbeam project directory holding a config file rendered
from the bundled template and the config fragments of installed extensions.

The project path is recorded as the config's root, so the file can be
moved into place before samples exist; paths are only verified by
'sunbeam check'.

Examples:
  sunbeam init /sequencing/projects/run42
  sunbeam init --template lab_defaults.yml --output config.yml run42`,
	Args: cobra.ExactArgs(1),
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().StringVar(&initTemplateFp, "template", "", "Render this config template instead of the bundled default")
	initCmd.Flags().StringVar(&initOutput, "output", "sunbeam_config.yml", "Name of the config file to create")
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config file")
}

func runInit(cmd *cobra.Command, args []string) error {
	projectFp, err := filepath.Abs(config.Makepath(args[0]))
	if err != nil {
		return err
	}
	if err := os.MkdirAll(projectFp, 0755); err != nil {
		return fmt.Errorf("creating project directory %s: %w", projectFp, err)
	}

	var template io.Reader
	if initTemplateFp != "" {
		f, err := os.Open(initTemplateFp)
		if err != nil {
			return fmt.Errorf("opening template %s: %w", initTemplateFp, err)
		}
		defer f.Close()
		template = f
	}

	text, err := config.New(projectFp, version.Version, template)
	if err != nil {
		return err
	}

	configFp := filepath.Join(projectFp, initOutput)
	if _, err := os.Stat(configFp); err == nil && !initForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", configFp)
	}

	f, err := os.Create(configFp)
	if err != nil {
		return fmt.Errorf("creating config file %s: %w", configFp, err)
	}
	defer f.Close()
	if err := config.Dump(text, f); err != nil {
		return err
	}

	logging.Info("Init", "Project created at %s", projectFp)
	fmt.Fprintf(cmd.OutOrStdout(), "Created project config at %s\n", configFp)
	return nil
}
