package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ropolomx/jcvi/config"
	"github.com/ropolomx/jcvi/internal/lobstr"
)

// lobstrCmd genotypes a BAM chromosome by chromosome.
var lobstrCmd = &cobra.Command{
	Use:   "lobstr [sample.bam]",
	Short: "Run lobSTR allelotype on a BAM, one chromosome at a time",
	Long: `Run lobSTR's allelotype classifier per chromosome (1-22, X, Y) over a
coordinate-sorted BAM, then concatenate, sort, bgzip and tabix the
per-chromosome VCFs into [sample].vcf.gz.

allelotype, vcf-concat, vcf-sort, bgzip and tabix must be on PATH, and
--home (or the lobstr.home setting) must point at the lobSTR install.
With --dry-run the invocations are printed without being executed.`,
	Args: cobra.ExactArgs(1),
	Run:  runLobstr,
}

func runLobstr(cmd *cobra.Command, args []string) {
	conf := config.New()
	bam := args[0]
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	var vcfs []string
	for _, chrom := range lobstr.Chromosomes() {
		run, vcf := lobstr.Allelotype(bam, chrom, conf.LobSTR.Home)
		vcfs = append(vcfs, vcf)

		if dryRun {
			stderr.Printf("%s", strings.Join(run.Args, " "))
			continue
		}
		if err := run.Run(); err != nil {
			stderr.Fatalf("allelotype chr%s: %v", chrom, err)
		}
	}

	gzfile := strings.SplitN(bam, ".", 2)[0] + ".vcf.gz"
	concat := lobstr.ConcatVCFs(vcfs, gzfile)
	tabix := lobstr.Tabix(gzfile)

	if dryRun {
		stderr.Printf("%s", concat.Args[2])
		stderr.Printf("%s", strings.Join(tabix.Args, " "))
		return
	}

	if err := concat.Run(); err != nil {
		stderr.Fatalf("vcf concat: %v", err)
	}
	if err := tabix.Run(); err != nil {
		stderr.Fatalf("tabix: %v", err)
	}
	stderr.Printf("wrote %s", gzfile)
}

// set flags
func init() {
	RootCmd.AddCommand(lobstrCmd)

	lobstrCmd.Flags().String("home", lobstr.DefaultHome, "root of the lobSTR install")
	viper.BindPFlag("lobstr.home", lobstrCmd.Flags().Lookup("home"))

	lobstrCmd.Flags().Bool("dry-run", false, "print the invocations without running them")
}
