// Package lobstr builds lobSTR genotyper and index-script invocations.
// lobSTR itself is an external binary; only its command lines are
// assembled here.
package lobstr

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// DefaultHome is where a lobSTR install is expected when none is
// configured.
const DefaultHome = "/mnt/software/lobSTR-4.0.0"

// Chromosomes returns the chromosome names lobSTR is run against, in
// output order: 1-22 then X and Y.
func Chromosomes() []string {
	chrs := make([]string, 0, 24)
	for i := 1; i <= 22; i++ {
		chrs = append(chrs, fmt.Sprintf("%d", i))
	}
	return append(chrs, "X", "Y")
}

// Allelotype returns the allelotype classify invocation for one
// chromosome of a BAM file, plus the VCF path it will produce.
func Allelotype(bam, chrom, home string) (*exec.Cmd, string) {
	outPrefix := strings.SplitN(filepath.Base(bam), ".", 2)[0] + ".chr" + chrom

	cmd := exec.Command(filepath.Join(home, "bin", "allelotype"),
		"--command", "classify",
		"--bam", bam,
		"--noise_model", filepath.Join(home, "models", "illumina_v3.pcrfree"),
		"--strinfo", filepath.Join(home, "hg38", "hg38.tab"),
		"--index-prefix", filepath.Join(home, "hg38", "lobSTR_"),
		"--chrom", "chr"+chrom,
		"--out", outPrefix,
		"--max-diff-ref", "150",
	)
	return cmd, outPrefix + ".vcf"
}

// ConcatVCFs returns the shell pipeline that concatenates, sorts and
// bgzips per-chromosome VCFs into one gz file.
func ConcatVCFs(vcfs []string, gzfile string) *exec.Cmd {
	pipeline := fmt.Sprintf("vcf-concat %s | vcf-sort | bgzip -c > %s",
		strings.Join(vcfs, " "), gzfile)
	return exec.Command("sh", "-c", pipeline)
}

// Tabix returns the tabix invocation indexing a bgzipped VCF.
func Tabix(gzfile string) *exec.Cmd {
	return exec.Command("tabix", "-p", "vcf", gzfile)
}

// Index returns the lobstr_index.py invocation building the alignment
// index from a refined bed file and reference FASTA.
func Index(bed, ref, outdir, home string) *exec.Cmd {
	return exec.Command("python",
		filepath.Join(home, "scripts", "lobstr_index.py"),
		"--str", bed,
		"--ref", ref,
		"--out", outdir,
	)
}

// StrInfo returns the GetSTRInfo.py invocation; the caller redirects
// its stdout into the strinfo tab file.
func StrInfo(bed, ref, home string) *exec.Cmd {
	return exec.Command("python",
		filepath.Join(home, "scripts", "GetSTRInfo.py"),
		bed, ref,
	)
}
