package csview

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2"
)

// Selection is a compressed set of record ordinals produced by Index
// matches. Selections compose with And/Or, so several single-column
// equality matches combine into a multi-column lookup without touching
// the region again.
type Selection struct {
	rb *roaring.Bitmap
}

// NewSelection creates an empty selection.
func NewSelection() *Selection {
	return &Selection{rb: roaring.New()}
}

// Add adds a record ordinal to the selection.
func (s *Selection) Add(ord uint32) {
	s.rb.Add(ord)
}

// Remove removes a record ordinal from the selection.
func (s *Selection) Remove(ord uint32) {
	s.rb.Remove(ord)
}

// Contains checks whether a record ordinal is in the selection.
func (s *Selection) Contains(ord uint32) bool {
	return s.rb.Contains(ord)
}

// IsEmpty returns true if the selection holds no ordinals.
func (s *Selection) IsEmpty() bool {
	return s.rb.IsEmpty()
}

// Count returns the number of ordinals in the selection.
func (s *Selection) Count() uint64 {
	return s.rb.GetCardinality()
}

// Clone returns a deep copy of the selection.
func (s *Selection) Clone() *Selection {
	return &Selection{rb: s.rb.Clone()}
}

// And intersects the selection with other in place.
func (s *Selection) And(other *Selection) {
	s.rb.And(other.rb)
}

// Or unions the selection with other in place.
func (s *Selection) Or(other *Selection) {
	s.rb.Or(other.rb)
}

// Ordinals returns the selected record ordinals in ascending order.
func (s *Selection) Ordinals() []uint32 {
	return s.rb.ToArray()
}

// All iterates the selected ordinals in ascending order.
func (s *Selection) All() iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		it := s.rb.Iterator()
		for it.HasNext() {
			if !yield(it.Next()) {
				return
			}
		}
	}
}
