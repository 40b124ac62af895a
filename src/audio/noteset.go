package audio

import "math/bits"

// ----- Note Set ----- //

const noteSetWords = (NumNotes + 63) / 64

// NoteSet is a fixed-size bitset of notes. The zero value is empty.
type NoteSet struct {
	words [noteSetWords]uint64
}

// Add returns true if n was not in the set.
func (s *NoteSet) Add(n Note) bool {
	if !n.Valid() {
		return false
	}
	w, b := n/64, uint64(1)<<(n%64)
	if s.words[w]&b != 0 {
		return false
	}
	s.words[w] |= b
	return true
}

// Remove returns true if n was in the set.
func (s *NoteSet) Remove(n Note) bool {
	if !n.Valid() {
		return false
	}
	w, b := n/64, uint64(1)<<(n%64)
	if s.words[w]&b == 0 {
		return false
	}
	s.words[w] &^= b
	return true
}

// Contains ...
func (s *NoteSet) Contains(n Note) bool {
	if !n.Valid() {
		return false
	}
	return s.words[n/64]&(uint64(1)<<(n%64)) != 0
}

// Len ...
func (s *NoteSet) Len() int {
	count := 0
	for _, w := range s.words {
		count += bits.OnesCount64(w)
	}
	return count
}

// Clear ...
func (s *NoteSet) Clear() {
	s.words = [noteSetWords]uint64{}
}

// AppendTo appends the members in ascending order.
func (s *NoteSet) AppendTo(dst []Note) []Note {
	for i, w := range s.words {
		for w != 0 {
			b := bits.TrailingZeros64(w)
			w &= w - 1
			dst = append(dst, Note(i*64+b))
		}
	}
	return dst
}
