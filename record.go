package csview

import (
	"bytes"

	"github.com/hupe1980/csview/internal/conv"
)

// span identifies one field's bytes inside the scanned region. It never
// owns bytes, only references them.
type span struct {
	start int
	end   int
	// quoted marks a field that was enclosed in double quotes; the span
	// covers the content between them.
	quoted bool
	// escaped marks a quoted field containing doubled-quote sequences
	// that need collapsing before the logical value can be read.
	escaped bool
}

// Record is a zero-copy view of one logical CSV line: an ordered set of
// field spans into the underlying region plus the record's line index.
//
// A Record handed to a RecordFunc is reused for the following record once
// the callback returns; none of its views may be retained across calls.
// Read accessors never mutate underlying state, so repeated calls on the
// same Record return identical results.
type Record struct {
	data  []byte
	spans []span
	line  int
}

// Len returns the number of fields in the record.
func (r *Record) Len() int {
	return len(r.spans)
}

// Line returns the zero-based logical record index, counting the header
// line (if any) as record 0. Records spanning multiple physical lines
// through quoted newlines still count as one.
func (r *Record) Line() int {
	return r.line
}

// Field returns the raw byte span of field i without copying. For a
// quoted field this is the content between the quotes with any doubled
// quotes left intact; use Unescaped for the normalized value. The slice
// aliases the scanned region and is valid only while the region is.
func (r *Record) Field(i int) ([]byte, error) {
	if i < 0 || i >= len(r.spans) {
		return nil, &ErrFieldRange{Index: i, Count: len(r.spans)}
	}
	sp := r.spans[i]
	return r.data[sp.start:sp.end], nil
}

// Unescaped appends the logical value of field i to dst and returns the
// extended slice, collapsing each "" escape to a single quote.
//
// Unlike Field, this always copies: once bytes must change, zero-copy is
// impossible. Pass a reused scratch slice as dst to keep the copy
// allocation-free; with a nil dst a fresh slice is allocated.
func (r *Record) Unescaped(i int, dst []byte) ([]byte, error) {
	if i < 0 || i >= len(r.spans) {
		return nil, &ErrFieldRange{Index: i, Count: len(r.spans)}
	}
	sp := r.spans[i]
	raw := r.data[sp.start:sp.end]
	if !sp.escaped {
		return append(dst, raw...), nil
	}
	for j := 0; j < len(raw); j++ {
		c := raw[j]
		dst = append(dst, c)
		if c == '"' {
			// The scanner guarantees quotes inside a field come in pairs.
			j++
		}
	}
	return dst, nil
}

// Text returns the logical value of field i as a freshly allocated
// string. Convenience for callers that retain values past the callback.
func (r *Record) Text(i int) (string, error) {
	b, err := r.Unescaped(i, nil)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Int parses field i as a signed base-10 integer. The conversion is
// strict: surrounding whitespace or an empty field fails.
func (r *Record) Int(i int) (int64, error) {
	raw, err := r.Field(i)
	if err != nil {
		return 0, err
	}
	v, err := conv.Atoi(raw)
	if err != nil {
		return 0, &ErrConversion{Index: i, Kind: "integer", cause: err}
	}
	return v, nil
}

// Float parses field i as a 64-bit floating-point number. The conversion
// is strict: surrounding whitespace or an empty field fails.
func (r *Record) Float(i int) (float64, error) {
	raw, err := r.Field(i)
	if err != nil {
		return 0, err
	}
	v, err := conv.Atof(raw)
	if err != nil {
		return 0, &ErrConversion{Index: i, Kind: "float", cause: err}
	}
	return v, nil
}

// fieldEquals compares field i's logical value against value, unescaping
// through scratch only when the field carries escapes.
func (r *Record) fieldEquals(i int, value []byte, scratch *[]byte) bool {
	sp := r.spans[i]
	raw := r.data[sp.start:sp.end]
	if !sp.escaped {
		return bytes.Equal(raw, value)
	}
	b, err := r.Unescaped(i, (*scratch)[:0])
	if err != nil {
		return false
	}
	*scratch = b
	return bytes.Equal(b, value)
}
