package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ropolomx/jcvi/config"
	"github.com/ropolomx/jcvi/internal/genome"
	"github.com/ropolomx/jcvi/internal/str"
)

// filterCmd refines a TRF bed file against the reference it was called on.
var filterCmd = &cobra.Command{
	Use:   "filter [trf.bed] [genome.fa]",
	Short: "Refine TRF repeats to exact motif runs and drop the unindexable",
	Long: `Refine each repeat in a TRF bed file to the exact runs of its motif
found in the reference, then keep only repeats a genotyper can index:
period 2-6, span up to 150 bases, TRF score 30 or more.

TRF reports approximate boundaries that often include partial or
mismatched flanking copies; genotyping needs exact coordinates. The
refined bed is written next to the input with a ".new" suffix unless
--out says otherwise.`,
	Args: cobra.ExactArgs(2),
	Run:  runFilter,
}

func runFilter(cmd *cobra.Command, args []string) {
	conf := config.New()

	out, err := cmd.Flags().GetString("out")
	if err != nil {
		stderr.Fatalf("cannot find the output path: %v", err)
	}
	if out == "" {
		out = args[0] + ".new"
	}

	res, err := refineBed(args[0], args[1], out, conf)
	if err != nil {
		stderr.Fatalf("%v", err)
	}
	stderr.Printf("Retained: %s", res.Percentage())
}

// refineBed runs the filtering pass from a bed file and reference FASTA
// on disk to a refined bed file. Shared with the index command.
func refineBed(bedPath, fastaPath, outPath string, conf *config.Config) (str.Result, error) {
	g, err := genome.Read(fastaPath)
	if err != nil {
		return str.Result{}, err
	}

	in, err := os.Open(bedPath)
	if err != nil {
		return str.Result{}, fmt.Errorf("open bed %s: %w", bedPath, err)
	}
	defer in.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return str.Result{}, fmt.Errorf("create %s: %w", outPath, err)
	}

	th := str.Thresholds{
		MaxPeriod: conf.Filter.MaxPeriod,
		MaxLength: conf.Filter.MaxLength,
		MinScore:  conf.Filter.MinScore,
	}
	res, err := str.Filter(in, g, out, th)
	if err != nil {
		out.Close()
		return res, err
	}
	return res, out.Close()
}

// set flags
func init() {
	RootCmd.AddCommand(filterCmd)

	filterCmd.Flags().StringP("out", "o", "", "output bed path (default [trf.bed].new)")
	filterCmd.Flags().Int("max-period", str.DefaultMaxPeriod, "largest indexable repeat-unit length")
	filterCmd.Flags().Int("max-length", str.DefaultMaxLength, "largest indexable repeat span (bases)")
	filterCmd.Flags().Int("min-score", str.DefaultMinScore, "lowest acceptable TRF alignment score")

	viper.BindPFlag("filter.max-period", filterCmd.Flags().Lookup("max-period"))
	viper.BindPFlag("filter.max-length", filterCmd.Flags().Lookup("max-length"))
	viper.BindPFlag("filter.min-score", filterCmd.Flags().Lookup("min-score"))
}
