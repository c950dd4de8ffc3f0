package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ropolomx/jcvi/internal/pe"
)

// peCmd reports paired-end template lengths spanning a region.
var peCmd = &cobra.Command{
	Use:   "pe [sample.bam] [chr] [start] [end]",
	Short: "Infer paired-end read distances spanning a region",
	Long: `Collect read pairs around a target region (padded by 1kb on both
sides), keep the pairs with one mate on each flank, and print them with
a histogram of their template lengths.

Reads are pulled with "samtools view", so samtools must be on PATH and
the BAM indexed. Pass "-" as the BAM to read SAM text from stdin
instead.`,
	Args: cobra.ExactArgs(4),
	Run:  runPE,
}

func runPE(cmd *cobra.Command, args []string) {
	bam, chrom := args[0], args[1]
	start, err := strconv.Atoi(args[2])
	if err != nil {
		stderr.Fatalf("start %q is not an integer", args[2])
	}
	end, err := strconv.Atoi(args[3])
	if err != nil {
		stderr.Fatalf("end %q is not an integer", args[3])
	}

	stderr.Printf("Target length=%d", end-start+1)

	if bam == "-" {
		if err := pe.Report(os.Stdin, start, end, os.Stdout); err != nil {
			stderr.Fatalf("%v", err)
		}
		return
	}

	region := fmt.Sprintf("%s:%d-%d", chrom, start-pe.Pad, end+pe.Pad)
	view := exec.Command("samtools", "view", bam, region)
	view.Stderr = os.Stderr

	out, err := view.StdoutPipe()
	if err != nil {
		stderr.Fatalf("%v", err)
	}
	if err := view.Start(); err != nil {
		stderr.Fatalf("samtools view: %v", err)
	}
	if err := pe.Report(out, start, end, os.Stdout); err != nil {
		stderr.Fatalf("%v", err)
	}
	if err := view.Wait(); err != nil {
		stderr.Fatalf("samtools view: %v", err)
	}
}

func init() {
	RootCmd.AddCommand(peCmd)
}
