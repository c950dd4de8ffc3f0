// Package trf builds Tandem Repeats Finder invocations and converts
// its .dat output into seqid-prefixed bed lines.
package trf

import (
	"bufio"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// Params are TRF's alignment weights and limits, in argument order.
type Params struct {
	Match     int
	Mismatch  int
	Delta     int
	MatchProb int
	IndelProb int
	MinScore  int
	MaxPeriod int
}

// DefaultParams is the parameter set used for STR discovery.
func DefaultParams() Params {
	return Params{
		Match:     2,
		Mismatch:  4090,
		Delta:     4090,
		MatchProb: 80,
		IndelProb: 10,
		MinScore:  30,
		MaxPeriod: 6,
	}
}

// Args returns the parameters as trf command-line arguments.
func (p Params) Args() []string {
	return []string{
		strconv.Itoa(p.Match),
		strconv.Itoa(p.Mismatch),
		strconv.Itoa(p.Delta),
		strconv.Itoa(p.MatchProb),
		strconv.Itoa(p.IndelProb),
		strconv.Itoa(p.MinScore),
		strconv.Itoa(p.MaxPeriod),
	}
}

// Job is one TRF invocation over a single-sequence FASTA file.
type Job struct {
	Fasta  string
	Params Params
}

// Command returns the trf invocation: data file output, suppress HTML.
func (j Job) Command() *exec.Cmd {
	args := append([]string{j.Fasta}, j.Params.Args()...)
	args = append(args, "-d", "-h")
	return exec.Command("trf", args...)
}

// DatFile is the .dat file trf writes into the working directory:
// the FASTA basename plus the dot-joined parameters.
func (j Job) DatFile() string {
	return filepath.Base(j.Fasta) + "." + strings.Join(j.Params.Args(), ".") + ".dat"
}

// Seqid is the sequence name derived from the FASTA file stem.
func (j Job) Seqid() string {
	base := filepath.Base(j.Fasta)
	if i := strings.Index(base, "."); i >= 0 {
		return base[:i]
	}
	return base
}

// BedFile is the per-sequence bed output path.
func (j Job) BedFile() string {
	return j.Seqid() + ".trf.bed"
}

// DatToBed converts TRF .dat output to bed lines: repeat table rows are
// kept when their ninth column is a positive number (which also drops
// the prose header) and prefixed with the seqid. Returns the number of
// lines written.
func DatToBed(r io.Reader, seqid string, w io.Writer) (int, error) {
	bw := bufio.NewWriter(w)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)

	n := 0
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 14 {
			continue
		}
		v, err := strconv.ParseFloat(fields[8], 64)
		if err != nil || v <= 0 {
			continue
		}
		if _, err := fmt.Fprintln(bw, seqid+"\t"+strings.Join(fields, "\t")); err != nil {
			return n, err
		}
		n++
	}
	if err := sc.Err(); err != nil {
		return n, fmt.Errorf("scan trf dat: %w", err)
	}
	return n, bw.Flush()
}
