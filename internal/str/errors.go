package str

import "errors"

var (
	// ErrFormat is returned for a malformed repeat-finder line: too few
	// columns or a column that fails to parse as its declared type.
	ErrFormat = errors.New("malformed STR line")

	// ErrDomain is returned for values outside their numeric domain,
	// eg a zero base-count total or a non-positive period.
	ErrDomain = errors.New("value out of domain")

	// ErrOutOfRange is returned when a record's coordinates fall outside
	// its reference sequence.
	ErrOutOfRange = errors.New("coordinates outside sequence")
)
