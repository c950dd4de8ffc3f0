// Package genome loads reference FASTA files into memory for
// sequence lookup by seqid.
package genome

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"
)

// Genome maps seqids to their full, uppercased nucleotide sequences.
type Genome struct {
	seqs map[string]string
	ids  []string
}

// ReadFrom parses FASTA from r. Sequence lines are uppercased so motif
// matching is case-insensitive against soft-masked references; the
// seqid is the first whitespace-delimited token of the header.
func ReadFrom(r io.Reader) (*Genome, error) {
	g := &Genome{seqs: map[string]string{}}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 64*1024*1024)

	var id string
	var seq strings.Builder
	flush := func() {
		if id == "" {
			return
		}
		g.seqs[id] = strings.ToUpper(seq.String())
		g.ids = append(g.ids, id)
		seq.Reset()
	}

	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' {
			flush()
			id = headerID(line[1:])
			if id == "" {
				return nil, fmt.Errorf("fasta: empty header")
			}
			if _, seen := g.seqs[id]; seen {
				return nil, fmt.Errorf("fasta: duplicate seqid %q", id)
			}
			continue
		}
		if id == "" {
			return nil, fmt.Errorf("fasta: sequence before first header")
		}
		seq.Write(line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("fasta scan: %w", err)
	}
	flush()

	return g, nil
}

// Read loads a FASTA file; gzip is detected by magic number or a .gz
// suffix and "-" means stdin.
func Read(path string) (*Genome, error) {
	rc, err := openReader(path)
	if err != nil {
		return nil, fmt.Errorf("open fasta %s: %w", path, err)
	}
	defer rc.Close()
	return ReadFrom(rc)
}

// Seq returns the full sequence for a seqid.
func (g *Genome) Seq(id string) (string, bool) {
	s, ok := g.seqs[id]
	return s, ok
}

// IDs returns seqids in file order.
func (g *Genome) IDs() []string {
	return g.ids
}

// Len returns the length of a sequence, 0 if unknown.
func (g *Genome) Len(id string) int {
	return len(g.seqs[id])
}

func headerID(hdr []byte) string {
	hdr = bytes.TrimSpace(hdr)
	if i := bytes.IndexAny(hdr, " \t"); i >= 0 {
		return string(hdr[:i])
	}
	return string(hdr)
}
