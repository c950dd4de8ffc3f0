package str

import (
	"errors"
	"strings"
	"testing"
)

func Test_Filter(t *testing.T) {
	g := seqmap{
		"chr1": strings.Repeat("N", 99) + strings.Repeat("ACG", 10) + "TTTT",
		"chr2": strings.Repeat("A", 40),
	}

	in := strings.Join([]string{
		// refines to one clean 10-copy run, retained
		"chr1\t100\t130\t3\t10.0\t3\t100\t0\t60\t10\t5\t10\t6\t1.90\tACG",
		"",
		// homopolymer: refines but period 1 never validates
		"chr2\t1\t40\t1\t40.0\t1\t100\t0\t80\t40\t0\t0\t0\t0.00\tA",
	}, "\n")

	var out strings.Builder
	res, err := Filter(strings.NewReader(in), g, &out, DefaultThresholds())
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}

	if res.Total != 2 || res.Retained != 1 {
		t.Errorf("counts = %d retained of %d total, want 1 of 2", res.Retained, res.Total)
	}
	if got := res.Percentage(); got != "1 of 2 (50.0%)" {
		t.Errorf("Percentage() = %q", got)
	}

	want := "chr1\t100\t129\t3\t10\t3\t100\t0\t60\t10\t10\t10\t0\t1.58\tACG\n"
	if out.String() != want {
		t.Errorf("output:\n  got  %q\n  want %q", out.String(), want)
	}
}

// a malformed line anywhere aborts the pass
func Test_FilterBadLine(t *testing.T) {
	g := seqmap{"chr1": "ACGTACGT"}
	in := "chr1\t1\t4\tnot-a-number\t2.0\t2\t100\t0\t40\t2\t1\t1\t0\t1.50\tAC\n"

	_, err := Filter(strings.NewReader(in), g, &strings.Builder{}, DefaultThresholds())
	if !errors.Is(err, ErrFormat) {
		t.Errorf("Filter error = %v, want ErrFormat", err)
	}
}

// coordinates beyond the sequence surface immediately instead of
// silently truncating
func Test_FilterOutOfRange(t *testing.T) {
	g := seqmap{"chr1": "ACGTACGT"}
	in := "chr1\t1\t900\t2\t4.0\t2\t100\t0\t40\t2\t2\t2\t2\t2.00\tAC\n"

	_, err := Filter(strings.NewReader(in), g, &strings.Builder{}, DefaultThresholds())
	if !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Filter error = %v, want ErrOutOfRange", err)
	}
}

func Test_PercentageEmpty(t *testing.T) {
	if got := (Result{}).Percentage(); got != "0 of 0 (0.0%)" {
		t.Errorf("Percentage() = %q", got)
	}
}
