package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/ATCHON/sunbeam/internal/config"
	"github.com/ATCHON/sunbeam/pkg/logging"
)

// Exit codes for CLI commands. These follow common conventions so that
// pipeline wrappers can branch on them.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (command failed, invalid arguments).
	ExitCodeError = 1
	// ExitCodeConfigInvalid indicates a config that references missing paths.
	ExitCodeConfigInvalid = 2
)

var rootVerbose bool

// rootCmd represents the base command for the sunbeam application.
// It is the entry point when the application is called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "sunbeam",
	Short: "Manage sunbeam metagenomics pipeline projects",
	Long: `sunbeam creates and maintains the project configuration the sunbeam
metagenomics pipeline runs from: it renders new project configs, folds in
overrides and extension settings, verifies every configured path before a
run, and filters host reads out of alignments.`,
	// SilenceUsage prevents Cobra from printing the usage message on errors
	// that are handled by the application.
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := logging.LevelInfo
		if rootVerbose {
			level = logging.LevelDebug
		}
		// stderr keeps stdout clean for pipeable command output.
		logging.Init(level, cmd.ErrOrStderr())
	},
}

// SetVersion sets the version for the root command.
// This function is typically called from the main package to inject the
// application version at build time.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
// This can be used by other commands to access the build version.
func GetVersion() string {
	return rootCmd.Version
}

// Execute is the main entry point for the CLI application.
// It initializes and executes the root command, which in turn handles
// subcommands and flags. This function is called by main.main().
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "sunbeam version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(getExitCode(err))
	}
}

// getExitCode determines the appropriate exit code based on the error type.
func getExitCode(err error) int {
	var pathErr *config.PathNotFoundError
	if errors.As(err, &pathErr) {
		return ExitCodeConfigInvalid
	}
	return ExitCodeError
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&rootVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(newVersionCmd())
}
