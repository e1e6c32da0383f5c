package csview

import (
	"bytes"
)

// RecordFunc is invoked once per logical record, in file order. The
// Record and every view derived from it are valid only for the duration
// of the call; callers that need a field afterwards must copy it first.
// Returning false stops the scan cleanly.
type RecordFunc func(r *Record) bool

// Scanner walks a byte region exactly once, splitting it into records
// and fields under RFC 4180 quoting rules. No region byte is copied and
// no allocation happens during the walk beyond the reused field-span
// slice.
//
// A Scanner is stateless between calls to Scan; the same Scanner may be
// used for any number of regions, and separate scans over the same
// region may run concurrently from different goroutines.
type Scanner struct {
	opts options
}

// NewScanner creates a Scanner configured by the given options.
func NewScanner(optFns ...Option) *Scanner {
	return &Scanner{opts: applyOptions(optFns)}
}

// Scan walks data from offset 0 to its end, invoking fn once per logical
// record. It stops when the region is exhausted, when fn returns false,
// or on the first malformed-quoting error.
func (s *Scanner) Scan(data []byte, fn RecordFunc) error {
	return s.scan(data, nil, fn)
}

// Scan walks data with a default Scanner.
func Scan(data []byte, fn RecordFunc) error {
	return NewScanner().Scan(data, fn)
}

// scan drives the pass. alive, when non-nil, is consulted before each
// record so a scan over a mapped region stops promptly if the mapping is
// closed underneath it.
func (s *Scanner) scan(data []byte, alive func() bool, fn RecordFunc) error {
	rec := &Record{
		data:  data,
		spans: make([]span, 0, s.opts.fieldCap),
	}

	pos, line := 0, 0
	for pos < len(data) {
		if alive != nil && !alive() {
			return ErrRegionUnavailable
		}

		next, err := s.next(data, pos, line, rec)
		if err != nil {
			return err
		}
		if !fn(rec) {
			return nil
		}

		pos = next
		line++
	}

	return nil
}

// next parses the single logical record starting at pos into rec,
// reusing rec's span slice, and returns the offset of the following
// record. The record's terminator (LF, CR, or CRLF) is consumed; a
// record ending at the region's end needs no terminator.
func (s *Scanner) next(data []byte, pos, line int, rec *Record) (int, error) {
	comma := s.opts.comma
	rec.spans = rec.spans[:0]
	rec.line = line

	for {
		var sp span

		if pos < len(data) && data[pos] == '"' {
			// Quoted mode: the field runs until a quote not doubled by
			// another. Delimiters and line terminators inside are content.
			quoteAt := pos
			pos++
			sp.start = pos
			sp.quoted = true
			for {
				j := bytes.IndexByte(data[pos:], '"')
				if j < 0 {
					return 0, &ParseError{Line: line, Offset: quoteAt, Err: ErrUnterminatedQuote}
				}
				pos += j
				if pos+1 < len(data) && data[pos+1] == '"' {
					sp.escaped = true
					pos += 2
					continue
				}
				sp.end = pos
				pos++
				break
			}
		} else {
			sp.start = pos
			for pos < len(data) {
				c := data[pos]
				if c == comma || c == '\n' || c == '\r' {
					break
				}
				if c == '"' {
					return 0, &ParseError{Line: line, Offset: pos, Err: ErrBareQuote}
				}
				pos++
			}
			sp.end = pos
		}

		rec.spans = append(rec.spans, sp)

		// The final record is accepted without a trailing terminator.
		if pos >= len(data) {
			return pos, nil
		}

		switch data[pos] {
		case comma:
			pos++
		case '\n':
			return pos + 1, nil
		case '\r':
			pos++
			if pos < len(data) && data[pos] == '\n' {
				pos++
			}
			return pos, nil
		default:
			// Only reachable after a closing quote: the unquoted loop
			// breaks solely on delimiters and terminators.
			return 0, &ParseError{Line: line, Offset: pos, Err: ErrAfterQuote}
		}
	}
}
