package csview

import (
	"errors"
)

var (
	// ErrRecordRange is returned when a record ordinal is out of range.
	ErrRecordRange = errors.New("record index out of range")
	// ErrUnknownColumn is returned when a column name is not present in
	// the header record.
	ErrUnknownColumn = errors.New("unknown column")
	// ErrNoHeader is returned when a header is needed but the region has
	// no records.
	ErrNoHeader = errors.New("region has no header record")
)

// recordSpan is the byte extent of one logical record, terminator
// included.
type recordSpan struct {
	start int
	end   int
}

// Index gives random access to a region's records. Building it costs one
// structural pass over the region, which also validates quoting for the
// whole region; afterwards any record can be re-parsed in isolation by
// ordinal, and equality matches over a column produce Selections that
// compose like lookup maps.
//
// An Index is read-only after construction and safe for concurrent use.
type Index struct {
	data  []byte
	spans []recordSpan
	opts  options
	cols  map[string]int
}

// NewIndex builds an index over data.
func NewIndex(data []byte, optFns ...Option) (*Index, error) {
	return newIndex(data, applyOptions(optFns))
}

func newIndex(data []byte, o options) (*Index, error) {
	x := &Index{data: data, opts: o}

	sc := &Scanner{opts: o}
	rec := &Record{data: data, spans: make([]span, 0, o.fieldCap)}
	pos, line := 0, 0
	for pos < len(data) {
		next, err := sc.next(data, pos, line, rec)
		if err != nil {
			return nil, err
		}
		x.spans = append(x.spans, recordSpan{start: pos, end: next})
		pos = next
		line++
	}

	return x, nil
}

// Count returns the number of logical records in the region, header
// included.
func (x *Index) Count() int {
	return len(x.spans)
}

// Record parses record i and returns a view over its fields. The view
// aliases the indexed region and follows the usual lifetime rules.
func (x *Index) Record(i int) (*Record, error) {
	if i < 0 || i >= len(x.spans) {
		return nil, ErrRecordRange
	}
	sc := &Scanner{opts: x.opts}
	rec := &Record{data: x.data, spans: make([]span, 0, x.opts.fieldCap)}
	if _, err := sc.next(x.data, x.spans[i].start, i, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Column resolves a column name against the header (record 0) and
// returns its zero-based ordinal.
func (x *Index) Column(name string) (int, error) {
	if x.cols == nil {
		if len(x.spans) == 0 {
			return 0, ErrNoHeader
		}
		hdr, err := x.Record(0)
		if err != nil {
			return 0, err
		}
		cols := make(map[string]int, hdr.Len())
		for i := 0; i < hdr.Len(); i++ {
			s, err := hdr.Text(i)
			if err != nil {
				return 0, err
			}
			cols[s] = i
		}
		x.cols = cols
	}
	i, ok := x.cols[name]
	if !ok {
		return 0, ErrUnknownColumn
	}
	return i, nil
}

// Match returns the Selection of record ordinals whose logical value in
// column col equals value. Records too narrow to have the column are
// skipped. The header record participates like any other; callers that
// want data rows only can Remove ordinal 0 or start value comparisons
// past it.
func (x *Index) Match(col int, value []byte) (*Selection, error) {
	if col < 0 {
		return nil, &ErrFieldRange{Index: col, Count: 0}
	}

	sel := NewSelection()
	sc := &Scanner{opts: x.opts}
	rec := &Record{data: x.data, spans: make([]span, 0, x.opts.fieldCap)}
	var scratch []byte

	for i, rs := range x.spans {
		if _, err := sc.next(x.data, rs.start, i, rec); err != nil {
			return nil, err
		}
		if col >= rec.Len() {
			continue
		}
		if rec.fieldEquals(col, value, &scratch) {
			sel.Add(uint32(i))
		}
	}

	return sel, nil
}

// Lookup returns the first record whose logical value in column col
// equals value, or false if none matches.
func (x *Index) Lookup(col int, value []byte) (*Record, bool) {
	if col < 0 {
		return nil, false
	}

	sc := &Scanner{opts: x.opts}
	rec := &Record{data: x.data, spans: make([]span, 0, x.opts.fieldCap)}
	var scratch []byte

	for i, rs := range x.spans {
		if _, err := sc.next(x.data, rs.start, i, rec); err != nil {
			return nil, false
		}
		if col >= rec.Len() {
			continue
		}
		if rec.fieldEquals(col, value, &scratch) {
			return rec, true
		}
	}

	return nil, false
}
