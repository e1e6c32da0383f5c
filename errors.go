package csview

import (
	"errors"
	"fmt"
)

var (
	// ErrBareQuote is returned when a quote character appears inside an
	// unquoted field.
	ErrBareQuote = errors.New("bare quote in unquoted field")
	// ErrAfterQuote is returned when a closing quote is followed by
	// anything other than a delimiter or record terminator.
	ErrAfterQuote = errors.New("unexpected byte after closing quote")
	// ErrUnterminatedQuote is returned when the region ends inside a
	// quoted field.
	ErrUnterminatedQuote = errors.New("unterminated quoted field")
	// ErrRegionUnavailable is returned when the mapped region backing a
	// scan was closed while the scan was still running.
	ErrRegionUnavailable = errors.New("mapped region is no longer available")
)

// ParseError reports a malformed-quoting failure. It is fatal to the scan
// that produced it: byte-position recovery after broken quoting is
// ambiguous, so the scanner fails fast.
//
// The underlying sentinel can be accessed via errors.Unwrap.
type ParseError struct {
	// Line is the zero-based logical record index at the failure.
	Line int
	// Offset is the absolute byte offset of the offending byte.
	Offset int
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("csview: parse error on record %d, offset %d: %v", e.Line, e.Offset, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ErrFieldRange indicates a field index outside the record's field count.
// It is local to the accessor call and does not affect scanning progress.
type ErrFieldRange struct {
	Index int
	Count int
}

func (e *ErrFieldRange) Error() string {
	return fmt.Sprintf("field index %d out of range [0, %d)", e.Index, e.Count)
}

// ErrConversion indicates that a field's bytes are not a valid
// representation of the requested numeric type.
//
// The original conversion error can be accessed via errors.Unwrap.
type ErrConversion struct {
	Index int
	Kind  string
	cause error
}

func (e *ErrConversion) Error() string {
	return fmt.Sprintf("field %d is not a valid %s: %v", e.Index, e.Kind, e.cause)
}

func (e *ErrConversion) Unwrap() error { return e.cause }
