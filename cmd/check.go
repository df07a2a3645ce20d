package cmd

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/ATCHON/sunbeam/internal/config"
	"github.com/ATCHON/sunbeam/pkg/logging"
)

// checkCmd verifies that a project config can back a pipeline run.
var checkCmd = &cobra.Command{
	Use:   "check CONFIG",
	Short: "Verify a project config before a run",
	Long: `Verify a project config: every configured path must exist (the output
directory excepted, since the run creates it), and the config's version
is compared against this sunbeam release.

When the config declares blast databases, their expanded index paths are
listed so they can be eyeballed before a long run.

Exit status is 2 when the config references missing paths, 1 on any
other error.

Examples:
  sunbeam check sunbeam_config.yml`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	configFp := args[0]
	data, err := os.ReadFile(configFp)
	if err != nil {
		return fmt.Errorf("reading config %s: %w", configFp, err)
	}

	cfg, err := config.Parse(data)
	if err != nil {
		return err
	}

	pkgMajor, cfgMajor, err := config.CheckCompatibility(cfg)
	if err != nil {
		return err
	}
	if pkgMajor != cfgMajor {
		logging.Warn("Check", "Config was written for sunbeam %d.x but this is %d.x; run 'sunbeam config update' to migrate it", cfgMajor, pkgMajor)
	}

	checked, err := config.CheckConfig(cfg)
	if err != nil {
		return fmt.Errorf("config %s is not valid: %w", configFp, err)
	}

	var run struct {
		Root     string `yaml:"root"`
		OutputFp string `yaml:"output_fp"`
	}
	if err := config.Section(checked, config.AllSection).Decode(&run); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Project root: %s\n", run.Root)
	if run.OutputFp != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Output directory: %s\n", run.OutputFp)
	}

	if dbs := config.Section(checked, config.BlastDBSection); dbs != nil {
		spec, err := config.DecodeDatabases(dbs)
		if err != nil {
			return err
		}
		if len(spec.Nucleotide)+len(spec.Protein) > 0 {
			index, err := config.ProcessDatabases(spec)
			if err != nil {
				return err
			}
			renderDatabaseIndex(cmd.OutOrStdout(), index)
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", text.FgGreen.Sprint("✓"), "configuration OK")
	return nil
}

// renderDatabaseIndex draws the expanded database paths the way the
// pipeline will see them.
func renderDatabaseIndex(w io.Writer, index *config.DatabaseIndex) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Type", "Database", "Path"})
	for _, name := range sortedKeys(index.Nucl) {
		t.AppendRow(table.Row{"nucl", name, index.Nucl[name]})
	}
	for _, name := range sortedKeys(index.Prot) {
		t.AppendRow(table.Row{"prot", name, index.Prot[name]})
	}
	t.Render()
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
