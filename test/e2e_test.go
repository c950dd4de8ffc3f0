package test

import (
	"os"
	"path"
	"strings"
	"testing"

	"github.com/ropolomx/jcvi/internal/genome"
	"github.com/ropolomx/jcvi/internal/str"
)

// end to end over fixture files: load the reference, refine the raw TRF
// bed, and check both the retained records and the counters
func Test_RefineTRFBed(t *testing.T) {
	g, err := genome.Read(path.Join("input", "chr4.fa"))
	if err != nil {
		t.Fatalf("read genome: %v", err)
	}

	in, err := os.Open(path.Join("input", "chr4.trf.bed"))
	if err != nil {
		t.Fatalf("open bed: %v", err)
	}
	defer in.Close()

	outPath := path.Join("output", "chr4.trf.bed.new")
	out, err := os.Create(outPath)
	if err != nil {
		t.Fatalf("create output: %v", err)
	}
	defer out.Close()

	res, err := str.Filter(in, g, out, str.DefaultThresholds())
	if err != nil {
		t.Fatalf("filter: %v", err)
	}

	// the CAG and AT runs are retained; the A homopolymer refines but
	// fails validation; the TTTTTG record has no exact run at all
	if res.Total != 3 || res.Retained != 2 {
		t.Errorf("counts = %d retained of %d total, want 2 of 3", res.Retained, res.Total)
	}
	if got := res.Percentage(); got != "2 of 3 (66.7%)" {
		t.Errorf("Percentage() = %q", got)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	want := strings.Join([]string{
		"chr4\t51\t86\t3\t12\t3\t100\t0\t72\t12\t12\t12\t0\t1.58\tCAG",
		"chr4\t89\t104\t2\t8\t2\t100\t0\t32\t8\t0\t0\t8\t1.00\tAT",
	}, "\n") + "\n"
	if string(data) != want {
		t.Errorf("refined bed:\n  got:\n%s  want:\n%s", data, want)
	}

	// the refined bed reparses cleanly
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		r, err := str.Parse(line)
		if err != nil {
			t.Fatalf("reparse %q: %v", line, err)
		}
		if !r.IsValid(str.DefaultMaxPeriod, str.DefaultMaxLength, str.DefaultMinScore) {
			t.Errorf("emitted record fails validation: %s", line)
		}
	}
}
