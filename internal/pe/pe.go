// Package pe infers the template-length distribution of read pairs
// spanning a target region, from SAM text as produced by samtools view.
package pe

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
)

// Pad is how far beyond the target region reads are collected.
const Pad = 1000

// sam flag bits we care about
const (
	flagPaired  = 0x1
	flagReverse = 0x10
)

// Read is one SAM alignment line, reduced to the fields the report
// needs. Start and End are 1-based inclusive reference coordinates.
type Read struct {
	QName   string
	Reverse bool
	Paired  bool
	Start   int
	End     int
	TLen    int
}

// ParseRead reads the 11 mandatory SAM columns of one alignment line.
func ParseRead(line string) (*Read, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < 11 {
		return nil, fmt.Errorf("sam line has %d columns, want at least 11", len(fields))
	}

	flag, err := strconv.Atoi(fields[1])
	if err != nil {
		return nil, fmt.Errorf("sam flag %q: %w", fields[1], err)
	}
	pos, err := strconv.Atoi(fields[3])
	if err != nil {
		return nil, fmt.Errorf("sam pos %q: %w", fields[3], err)
	}
	tlen, err := strconv.Atoi(fields[8])
	if err != nil {
		return nil, fmt.Errorf("sam tlen %q: %w", fields[8], err)
	}
	span, err := refSpan(fields[5])
	if err != nil {
		return nil, err
	}

	return &Read{
		QName:   fields[0],
		Reverse: flag&flagReverse != 0,
		Paired:  flag&flagPaired != 0,
		Start:   pos,
		End:     pos + span - 1,
		TLen:    tlen,
	}, nil
}

// refSpan is the number of reference bases the CIGAR consumes.
func refSpan(cigar string) (int, error) {
	if cigar == "*" {
		return 0, nil
	}
	span, n := 0, 0
	for i := 0; i < len(cigar); i++ {
		c := cigar[i]
		if '0' <= c && c <= '9' {
			n = n*10 + int(c-'0')
			continue
		}
		switch c {
		case 'M', 'D', 'N', '=', 'X':
			span += n
		case 'I', 'S', 'H', 'P':
			// consumes no reference
		default:
			return 0, fmt.Errorf("cigar %q: unknown op %q", cigar, c)
		}
		n = 0
	}
	return span, nil
}

// Report scans SAM text for pairs flanking the target interval
// [start, end] (read one starting before it, read two ending after it),
// prints them, and renders a histogram of their template lengths
// between 300 and 600 in 20 bins.
func Report(in io.Reader, start, end int, w io.Writer) error {
	cache := map[string][]*Read{}
	var order []string

	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if line == "" || strings.HasPrefix(line, "@") {
			continue
		}
		r, err := ParseRead(line)
		if err != nil {
			return err
		}
		if !r.Paired {
			continue
		}
		if _, seen := cache[r.QName]; !seen {
			order = append(order, r.QName)
		}
		cache[r.QName] = append(cache[r.QName], r)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("scan sam: %w", err)
	}

	sort.Strings(order)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	var tlens []int
	for _, name := range order {
		reads := cache[name]
		if len(reads) < 2 {
			continue
		}
		a, b := reads[0], reads[1]
		// keep only pairs with one mate on each flank
		if a.Start >= start || b.End <= end {
			continue
		}
		for _, r := range []*Read{a, b} {
			fmt.Fprintf(tw, "%s\t%t\t%d\t%d\t%d\n", r.QName, r.Reverse, r.Start, r.End, r.TLen)
		}
		fmt.Fprintln(tw, strings.Repeat("=", 60))
		tlen := b.TLen
		if tlen < 0 {
			tlen = -tlen
		}
		tlens = append(tlens, tlen)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	return Hist(w, tlens, 300, 600, 20)
}

// Hist prints a binned text histogram of vals over [lo, hi].
func Hist(w io.Writer, vals []int, lo, hi, bins int) error {
	if bins < 1 || hi <= lo {
		return fmt.Errorf("bad histogram shape: [%d, %d] in %d bins", lo, hi, bins)
	}

	width := float64(hi-lo) / float64(bins)
	counts := make([]int, bins)
	for _, v := range vals {
		if v < lo || v > hi {
			continue
		}
		i := int(float64(v-lo) / width)
		if i == bins {
			i--
		}
		counts[i]++
	}

	max := 1
	for _, c := range counts {
		if c > max {
			max = c
		}
	}

	tw := tabwriter.NewWriter(w, 0, 4, 1, ' ', tabwriter.AlignRight)
	for i, c := range counts {
		blo := lo + int(float64(i)*width)
		bhi := lo + int(float64(i+1)*width)
		bar := strings.Repeat("*", c*50/max)
		fmt.Fprintf(tw, "%d\t-\t%d\t|%s\t%d\n", blo, bhi, bar, c)
	}
	fmt.Fprintf(tw, "\t\t\tn=%d\n", len(vals))
	return tw.Flush()
}
