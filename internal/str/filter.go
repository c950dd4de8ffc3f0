package str

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Thresholds are the validity bounds applied while filtering.
type Thresholds struct {
	MaxPeriod int
	MaxLength int
	MinScore  int
}

// DefaultThresholds returns the lobSTR-indexable defaults.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MaxPeriod: DefaultMaxPeriod,
		MaxLength: DefaultMaxLength,
		MinScore:  DefaultMinScore,
	}
}

// Result counts the refined sub-records seen by one Filter pass.
type Result struct {
	// refined sub-records produced by the rescanner, valid or not
	Total int

	// refined sub-records that passed the validity thresholds
	Retained int
}

// Percentage renders the retention ratio, eg "120 of 150 (80.0%)".
func (res Result) Percentage() string {
	pct := 0.0
	if res.Total > 0 {
		pct = float64(res.Retained) * 100 / float64(res.Total)
	}
	return fmt.Sprintf("%d of %d (%.1f%%)", res.Retained, res.Total, pct)
}

// Filter makes a single pass over raw 15-column repeat records, rescans
// each against the genome, and writes the refined records that pass the
// thresholds, in production order. Blank lines are skipped; any other
// unparseable line aborts the pass, since a genotyping index must not
// be built from partially-parsed input.
//
// Memory use is bounded by the current record's window, not the input
// size.
func Filter(in io.Reader, genome Sequences, out io.Writer, th Thresholds) (Result, error) {
	var res Result

	bw := bufio.NewWriter(out)
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		r, err := Parse(line)
		if err != nil {
			return res, err
		}

		err = r.EachExact(genome, func(ns *Record) error {
			res.Total++
			if !ns.IsValid(th.MaxPeriod, th.MaxLength, th.MinScore) {
				return nil
			}
			res.Retained++
			_, err := fmt.Fprintln(bw, ns)
			return err
		})
		if err != nil {
			return res, err
		}
	}
	if err := sc.Err(); err != nil {
		return res, fmt.Errorf("scan STR lines: %w", err)
	}
	return res, bw.Flush()
}
