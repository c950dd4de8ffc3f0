package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ropolomx/jcvi/config"
	"github.com/ropolomx/jcvi/internal/trf"
)

// trfCmd runs Tandem Repeats Finder over per-chromosome FASTA files.
var trfCmd = &cobra.Command{
	Use:   "trf [fastadir]",
	Short: "Run Tandem Repeats Finder on FASTA files",
	Long: `Run TRF over every *.fa and *.fasta file in a directory, convert each
.dat output to a seqid-prefixed bed file, and concatenate them into
trf.bed in natural sort order (chr2 before chr10).

TRF must be on PATH. With --dry-run the invocations are printed
without being executed.`,
	Args: cobra.ExactArgs(1),
	Run:  runTRF,
}

func runTRF(cmd *cobra.Command, args []string) {
	conf := config.New()
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	fastas, err := globFastas(args[0])
	if err != nil {
		stderr.Fatalf("%v", err)
	}
	if len(fastas) == 0 {
		stderr.Fatalf("no *.fa or *.fasta files in %s", args[0])
	}

	params := trf.Params{
		Match:     conf.TRF.Match,
		Mismatch:  conf.TRF.Mismatch,
		Delta:     conf.TRF.Delta,
		MatchProb: conf.TRF.MatchProb,
		IndelProb: conf.TRF.IndelProb,
		MinScore:  conf.TRF.MinScore,
		MaxPeriod: conf.TRF.MaxPeriod,
	}

	var beds []string
	for _, fasta := range fastas {
		job := trf.Job{Fasta: fasta, Params: params}

		run := job.Command()
		if dryRun {
			stderr.Printf("%s", strings.Join(run.Args, " "))
			beds = append(beds, job.BedFile())
			continue
		}

		// trf exits non-zero even on success for some inputs, so only
		// a missing .dat file is treated as failure
		_ = run.Run()
		if err := datToBed(job); err != nil {
			stderr.Fatalf("%v", err)
		}
		beds = append(beds, job.BedFile())
	}

	if dryRun {
		return
	}

	trf.NatSort(beds)
	if err := concat(beds, "trf.bed"); err != nil {
		stderr.Fatalf("%v", err)
	}
	stderr.Printf("wrote trf.bed from %d sequences", len(beds))
}

func datToBed(job trf.Job) error {
	dat, err := os.Open(job.DatFile())
	if err != nil {
		return fmt.Errorf("trf produced no dat file for %s: %w", job.Fasta, err)
	}
	defer dat.Close()

	bed, err := os.Create(job.BedFile())
	if err != nil {
		return err
	}

	n, err := trf.DatToBed(dat, job.Seqid(), bed)
	if err != nil {
		bed.Close()
		return err
	}
	stderr.Printf("%s: %d repeats", job.Seqid(), n)
	return bed.Close()
}

func globFastas(dir string) ([]string, error) {
	var fastas []string
	for _, pattern := range []string{"*.fa", "*.fasta"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, err
		}
		fastas = append(fastas, matches...)
	}
	trf.NatSort(fastas)
	return fastas, nil
}

func concat(paths []string, outPath string) error {
	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	for _, p := range paths {
		in, err := os.Open(p)
		if err != nil {
			out.Close()
			return err
		}
		_, err = io.Copy(out, in)
		in.Close()
		if err != nil {
			out.Close()
			return err
		}
	}
	return out.Close()
}

// set flags
func init() {
	RootCmd.AddCommand(trfCmd)

	trfCmd.Flags().Bool("dry-run", false, "print the TRF invocations without running them")
}
