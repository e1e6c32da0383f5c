// Package conv provides allocation-free numeric parsing over byte spans.
//
// The parsers accept the raw bytes of a CSV field view and convert them
// with strconv without materializing an intermediate string. Conversions
// are locale-independent and reject empty or malformed input with a typed
// error instead of a sentinel value.
package conv

import (
	"errors"
	"strconv"
	"strings"
	"unsafe"
)

// ErrEmpty is returned when the input span has zero length.
var ErrEmpty = errors.New("conv: empty input")

// view reinterprets b as a string without copying. The result aliases b
// and must not outlive it.
func view(b []byte) string {
	return unsafe.String(unsafe.SliceData(b), len(b))
}

// scrub detaches a strconv error from the input span. strconv.NumError
// retains its Num string as-is, which would otherwise pin a view into a
// mapped region past its lifetime.
func scrub(err error) error {
	var ne *strconv.NumError
	if errors.As(err, &ne) {
		ne.Num = strings.Clone(ne.Num)
	}
	return err
}

// Atoi parses b as a signed base-10 integer.
func Atoi(b []byte) (int64, error) {
	if len(b) == 0 {
		return 0, ErrEmpty
	}
	v, err := strconv.ParseInt(view(b), 10, 64)
	if err != nil {
		return 0, scrub(err)
	}
	return v, nil
}

// Atof parses b as a 64-bit floating-point number. Whitespace is not
// trimmed; a span with leading or trailing spaces fails.
func Atof(b []byte) (float64, error) {
	if len(b) == 0 {
		return 0, ErrEmpty
	}
	v, err := strconv.ParseFloat(view(b), 64)
	if err != nil {
		return 0, scrub(err)
	}
	return v, nil
}
