package trf

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobCommand(t *testing.T) {
	j := Job{Fasta: "ref/chr4.fa", Params: DefaultParams()}

	cmd := j.Command()
	assert.Equal(t,
		[]string{"ref/chr4.fa", "2", "4090", "4090", "80", "10", "30", "6", "-d", "-h"},
		cmd.Args[1:])

	assert.Equal(t, "chr4.fa.2.4090.4090.80.10.30.6.dat", j.DatFile())
	assert.Equal(t, "chr4", j.Seqid())
	assert.Equal(t, "chr4.trf.bed", j.BedFile())
}

// the .dat prose header is dropped; repeat rows gain the seqid prefix
func TestDatToBed(t *testing.T) {
	dat := strings.Join([]string{
		"Tandem Repeats Finder Program written by:",
		"",
		"Benson G.",
		"Sequence: chr4",
		"Parameters: 2 4090 4090 80 10 30 6",
		"",
		"3074876 3074933 3 19.3 3 87 6 81 8 50 26 13 1.60 CAG CAGCAGCAG",
		"3074940 3074955 2 8.0 2 100 0 0 0 50 0 50 1.00 GT GTGTGTGT",
		"3075000 3075031 4 8.0 4 100 0 64 50 0 25 25 1.50 ACGT ACGTACGT",
	}, "\n")

	var out strings.Builder
	n, err := DatToBed(strings.NewReader(dat), "chr4", &out)
	require.NoError(t, err)

	// the zero-in-column-nine row is dropped along with the header
	assert.Equal(t, 2, n)
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "chr4\t3074876\t3074933\t3\t19.3"))
	assert.True(t, strings.HasPrefix(lines[1], "chr4\t3075000\t3075031\t4\t8.0"))
	assert.Equal(t, 16, len(strings.Split(lines[0], "\t")), "seqid plus 15 dat columns")
}

func TestNatSort(t *testing.T) {
	files := []string{"chr10.fa", "chr2.fa", "chrX.fa", "chr1.fa"}
	NatSort(files)
	assert.Equal(t, []string{"chr1.fa", "chr2.fa", "chr10.fa", "chrX.fa"}, files)
}
