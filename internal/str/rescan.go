package str

import (
	"fmt"
	"regexp"
	"strings"
)

// Sequences is the only contract the rescanner needs from genome-loading
// code: full-sequence lookup by seqid.
type Sequences interface {
	Seq(seqid string) (string, bool)
}

// EachExact re-locates tight runs of the record's motif inside its
// candidate window, because TRF's reported boundaries are approximate
// and may include partial or mismatched flanking bases.
//
// Each maximal run of two-or-more consecutive exact motif copies is
// passed to emit as a refined Record with recomputed coordinates,
// copy number, score, base counts and entropy. Runs arrive left to
// right and do not overlap. The scan stops on the first emit error.
func (r *Record) EachExact(genome Sequences, emit func(*Record) error) error {
	if r.Period < 1 || r.Motif == "" {
		return fmt.Errorf("%w: period %d with motif %q", ErrDomain, r.Period, r.Motif)
	}

	seq, ok := genome.Seq(r.Seqid)
	if !ok {
		return fmt.Errorf("%w: unknown seqid %q", ErrOutOfRange, r.Seqid)
	}
	if r.Start < 1 || r.End > len(seq) || r.Start > r.End {
		return fmt.Errorf("%w: %s:%d-%d on a sequence of length %d",
			ErrOutOfRange, r.Seqid, r.Start, r.End, len(seq))
	}

	// the motif is a literal, not a pattern
	pat, err := regexp.Compile("(?:" + regexp.QuoteMeta(r.Motif) + "){2,}")
	if err != nil {
		return fmt.Errorf("%w: motif %q: %v", ErrDomain, r.Motif, err)
	}

	unit := len(r.Motif)
	window := seq[r.Start-1 : r.End]
	for _, loc := range pat.FindAllStringIndex(window, -1) {
		run := window[loc[0]:loc[1]]
		length := loc[1] - loc[0]

		// must hold by construction of the pattern
		if length%unit != 0 || !strings.HasPrefix(run, r.Motif) {
			return fmt.Errorf("%w: run %q does not tile motif %q", ErrDomain, run, r.Motif)
		}

		ns := *r
		ns.Start = r.Start + loc[0]
		ns.End = ns.Start - 1 + length
		ns.CopyNum = float64(length) / float64(unit)
		ns.PctMatch = 100
		ns.PctIndel = 0
		ns.Score = 2 * length
		ns.A = strings.Count(run, "A")
		ns.C = strings.Count(run, "C")
		ns.G = strings.Count(run, "G")
		ns.T = strings.Count(run, "T")
		if ns.Entropy, err = Entropy(ns.A, ns.C, ns.G, ns.T); err != nil {
			return err
		}

		if err := emit(&ns); err != nil {
			return err
		}
	}
	return nil
}
