// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package scram

// orderedLiterals is an ordered-insertion set of signed child literals, as
// required by §3 and §5: duplicates are forbidden, iteration follows
// insertion order, and membership tests are O(1). We keep this as a plain
// slice+map pair, in the spirit of the teacher's own preference for plain
// slices and maps over any external collection type (varset, quantset in
// buddy.go) — a hash-based set such as golang-set cannot give us the
// insertion-order iteration the spec requires.
type orderedLiterals struct {
	order []Literal
	index map[Literal]int
}

func newOrderedLiterals() orderedLiterals {
	return orderedLiterals{index: make(map[Literal]int)}
}

// Add appends l to the set. It reports ok=false if l is already present
// (DuplicateChild, §4.1).
func (s *orderedLiterals) Add(l Literal) bool {
	if _, ok := s.index[l]; ok {
		return false
	}
	s.index[l] = len(s.order)
	s.order = append(s.order, l)
	return true
}

// Contains reports whether l is a member of the set.
func (s *orderedLiterals) Contains(l Literal) bool {
	_, ok := s.index[l]
	return ok
}

// Remove deletes l from the set, preserving the relative order of the
// remaining elements.
func (s *orderedLiterals) Remove(l Literal) bool {
	pos, ok := s.index[l]
	if !ok {
		return false
	}
	s.order = append(s.order[:pos], s.order[pos+1:]...)
	delete(s.index, l)
	for i := pos; i < len(s.order); i++ {
		s.index[s.order[i]] = i
	}
	return true
}

// Replace substitutes every occurrence of old with replacement, in place,
// preserving position. It is a no-op if old is absent.
func (s *orderedLiterals) Replace(old, replacement Literal) {
	pos, ok := s.index[old]
	if !ok {
		return
	}
	delete(s.index, old)
	s.order[pos] = replacement
	s.index[replacement] = pos
}

// Slice returns the set's elements in insertion order. The caller must not
// mutate the result.
func (s *orderedLiterals) Slice() []Literal {
	return s.order
}

// Len returns the number of elements in the set.
func (s *orderedLiterals) Len() int {
	return len(s.order)
}

// Clone returns an independent copy of the set.
func (s *orderedLiterals) Clone() orderedLiterals {
	c := orderedLiterals{
		order: append([]Literal(nil), s.order...),
		index: make(map[Literal]int, len(s.index)),
	}
	for k, v := range s.index {
		c.index[k] = v
	}
	return c
}

// Reset empties the set in place.
func (s *orderedLiterals) Reset() {
	s.order = s.order[:0]
	for k := range s.index {
		delete(s.index, k)
	}
}
