package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ATCHON/sunbeam/internal/decontam"
	"github.com/ATCHON/sunbeam/pkg/logging"
)

var (
	decontamMinPctID   float64
	decontamMinLenFrac float64
)

// decontamCmd lists the reads a host alignment says to remove.
var decontamCmd = &cobra.Command{
	Use:   "decontam ALIGNMENT",
	Short: "List reads that aligned to the host reference",
	Long: `Read a SAM or BAM alignment against the host reference and print the
identifier of every read that aligned well enough to count as host, one
per line. The pipeline subtracts these reads from the sample.

Both thresholds are exclusive: a read exactly at a threshold is kept in
the sample. Pass "-" to read the alignment from stdin.

Examples:
  sunbeam decontam sample1_host.bam > host_ids.txt
  minimap2 -a host.mmi sample1.fastq | sunbeam decontam -`,
	Args: cobra.ExactArgs(1),
	RunE: runDecontam,
}

func init() {
	rootCmd.AddCommand(decontamCmd)

	// Defaults match the stock config's qc section.
	decontamCmd.Flags().Float64Var(&decontamMinPctID, "min-pct-id", 0.5, "Minimum identity over the aligned span")
	decontamCmd.Flags().Float64Var(&decontamMinLenFrac, "min-len-frac", 0.6, "Minimum aligned fraction of the read")
}

func runDecontam(cmd *cobra.Command, args []string) error {
	var in io.Reader
	if args[0] == "-" {
		in = cmd.InOrStdin()
	} else {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening alignment %s: %w", args[0], err)
		}
		defer f.Close()
		in = f
	}

	sc, err := decontam.NewScanner(in, decontam.Filter{
		MinPctID:   decontamMinPctID,
		MinLenFrac: decontamMinLenFrac,
	})
	if err != nil {
		return err
	}

	out := bufio.NewWriter(cmd.OutOrStdout())
	count := 0
	for sc.Scan() {
		fmt.Fprintln(out, sc.ReadID())
		count++
	}
	if err := sc.Err(); err != nil {
		return err
	}
	if err := out.Flush(); err != nil {
		return err
	}

	logging.Info("Decontam", "%d reads passed the host filters", count)
	return nil
}
