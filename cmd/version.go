package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newVersionCmd creates the Cobra command for displaying the application
// version. The actual version information is managed by the root command.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of sunbeam",
		Long:  `All software has versions. This is sunbeam's.`,
		Run: func(cmd *cobra.Command, args []string) {
			// rootCmd.Version is set in main.go at startup.
			fmt.Fprintf(cmd.OutOrStdout(), "sunbeam version %s\n", rootCmd.Version)
		},
	}
}
