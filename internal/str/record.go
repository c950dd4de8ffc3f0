// Package str refines approximate tandem-repeat annotations, as reported
// by Tandem Repeats Finder, into exact minimal-span repeat records for
// building a lobSTR genotyping index.
package str

import (
	"fmt"
	"strconv"
	"strings"
)

// Default thresholds for Record.IsValid. Repeats outside these bounds
// are not indexable by lobSTR.
const (
	DefaultMaxPeriod = 6
	DefaultMaxLength = 150
	DefaultMinScore  = 30
)

// Record is one tandem-repeat annotation on a reference sequence: a
// single 15-column line of seqid-prefixed TRF output.
type Record struct {
	// name of the reference sequence (chromosome/contig)
	Seqid string

	// interval on the reference, 1-based and inclusive on both ends
	Start int
	End   int

	// length of the repeated unit; equal to len(Motif)
	Period int

	// number of motif repetitions spanning the interval
	CopyNum float64

	// TRF's reported consensus repeat-unit length. carried through
	// refinement unchanged even when it disagrees with Period
	ConsensusSize int

	// percent identity and percent indels against a perfect repeat
	PctMatch int
	PctIndel int

	// TRF alignment score
	Score int

	// counts of each base across the interval
	A, C, G, T int

	// Shannon entropy (bits) of the base composition, in [0, 2]
	Entropy float64

	// the repeat unit
	Motif string
}

// fieldParser converts whitespace-split columns, holding onto the first
// conversion error so call sites stay flat.
type fieldParser struct {
	err error
}

func (p *fieldParser) toInt(name, v string) int {
	if p.err != nil {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.err = fmt.Errorf("%w: %s %q is not an integer", ErrFormat, name, v)
	}
	return n
}

func (p *fieldParser) toFloat(name, v string) float64 {
	if p.err != nil {
		return 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		p.err = fmt.Errorf("%w: %s %q is not a number", ErrFormat, name, v)
	}
	return f
}

// Parse reads one whitespace-delimited 15-column line into a Record.
// Columns past the 15th (eg TRF's trailing repeat sequence) are ignored.
func Parse(line string) (*Record, error) {
	args := strings.Fields(line)
	if len(args) < 15 {
		return nil, fmt.Errorf("%w: want 15 columns, got %d", ErrFormat, len(args))
	}

	p := &fieldParser{}
	r := &Record{
		Seqid:         args[0],
		Start:         p.toInt("start", args[1]),
		End:           p.toInt("end", args[2]),
		Period:        p.toInt("period", args[3]),
		CopyNum:       p.toFloat("copy number", args[4]),
		ConsensusSize: p.toInt("consensus size", args[5]),
		PctMatch:      p.toInt("percent match", args[6]),
		PctIndel:      p.toInt("percent indel", args[7]),
		Score:         p.toInt("score", args[8]),
		A:             p.toInt("A count", args[9]),
		C:             p.toInt("C count", args[10]),
		G:             p.toInt("G count", args[11]),
		T:             p.toInt("T count", args[12]),
		Entropy:       p.toFloat("entropy", args[13]),
		Motif:         args[14],
	}
	if p.err != nil {
		return nil, p.err
	}
	return r, nil
}

// String serializes the record back to its 15-column tab-separated form.
// Entropy is fixed to two decimals, matching TRF; every other column
// round-trips through Parse exactly.
func (r *Record) String() string {
	return strings.Join([]string{
		r.Seqid,
		strconv.Itoa(r.Start),
		strconv.Itoa(r.End),
		strconv.Itoa(r.Period),
		strconv.FormatFloat(r.CopyNum, 'f', -1, 64),
		strconv.Itoa(r.ConsensusSize),
		strconv.Itoa(r.PctMatch),
		strconv.Itoa(r.PctIndel),
		strconv.Itoa(r.Score),
		strconv.Itoa(r.A),
		strconv.Itoa(r.C),
		strconv.Itoa(r.G),
		strconv.Itoa(r.T),
		fmt.Sprintf("%.2f", r.Entropy),
		r.Motif,
	}, "\t")
}

// Length is the interval span in bases.
func (r *Record) Length() int {
	return r.End - r.Start + 1
}

// IsValid reports whether the repeat is indexable: period in
// [2, maxPeriod], span at most maxLength, score at least minScore.
func (r *Record) IsValid(maxPeriod, maxLength, minScore int) bool {
	return 2 <= r.Period && r.Period <= maxPeriod &&
		r.Length() <= maxLength &&
		r.Score >= minScore
}
