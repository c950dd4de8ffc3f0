package str

import (
	"fmt"
	"math"
)

// Entropy returns the Shannon entropy (bits) of a base composition with
// the given A/C/G/T counts. 0 means a homopolymer, 2 a uniform mixture.
// A zero total is a domain error.
func Entropy(a, c, g, t int) (float64, error) {
	total := a + c + g + t
	if total == 0 {
		return 0, fmt.Errorf("%w: zero total base count", ErrDomain)
	}

	var e float64
	for _, n := range [4]int{a, c, g, t} {
		if n == 0 {
			continue
		}
		f := float64(n) / float64(total)
		e -= f * math.Log2(f)
	}
	return e, nil
}
