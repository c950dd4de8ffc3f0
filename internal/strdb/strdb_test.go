package strdb

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ropolomx/jcvi/internal/str"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "strs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func rec(seqid string, start, end, period int, motif string) *str.Record {
	return &str.Record{
		Seqid: seqid, Start: start, End: end,
		Period: period, CopyNum: float64(end-start+1) / float64(period),
		ConsensusSize: period, PctMatch: 100, Score: 2 * (end - start + 1),
		Motif: motif,
	}
}

func TestSaveAndCount(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	recs := []*str.Record{
		rec("chr1", 100, 129, 3, "ACG"),
		rec("chr1", 500, 539, 4, "ACGT"),
		rec("chr2", 10, 29, 2, "AT"),
	}
	require.NoError(t, s.Save(ctx, recs))

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestByRegion(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, []*str.Record{
		rec("chr1", 100, 129, 3, "ACG"),
		rec("chr1", 500, 539, 4, "ACGT"),
		rec("chr2", 100, 129, 3, "ACG"),
	}))

	got, err := s.ByRegion(ctx, "chr1", 90, 200)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "ACG", got[0].Motif)
	assert.Equal(t, 100, got[0].Start)
	assert.Equal(t, 129, got[0].End)

	// overlap, not containment
	got, err = s.ByRegion(ctx, "chr1", 120, 510)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = s.ByRegion(ctx, "chr3", 1, 1e6)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRoundTripFields(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	in := &str.Record{
		Seqid: "chr4", Start: 3074876, End: 3074933,
		Period: 3, CopyNum: 19.3, ConsensusSize: 3,
		PctMatch: 87, PctIndel: 6, Score: 81,
		A: 8, C: 50, G: 26, T: 13, Entropy: 1.6, Motif: "CAG",
	}
	require.NoError(t, s.Save(ctx, []*str.Record{in}))

	got, err := s.ByRegion(ctx, "chr4", 3074876, 3074933)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, in, got[0])
}
