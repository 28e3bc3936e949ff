package drop

import "sort"

// Set is a set of drop ids, used for the disabled (non-matchable) list
type Set map[ID]struct{}

// NewSet builds a set from ids
func NewSet(ids ...ID) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has is nil-safe
func (s Set) Has(id ID) bool {
	_, ok := s[id]
	return ok
}

// Toggle flips membership and returns the new state
func (s Set) Toggle(id ID) bool {
	if _, ok := s[id]; ok {
		delete(s, id)
		return false
	}
	s[id] = struct{}{}
	return true
}

// Clone copies the set; nil clones to an empty set
func (s Set) Clone() Set {
	c := make(Set, len(s))
	for id := range s {
		c[id] = struct{}{}
	}
	return c
}

// Sorted returns members in ascending order
func (s Set) Sorted() []ID {
	out := make([]ID, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Matchable reports whether id can take part in a combo under this disabled set
func (s Set) Matchable(id ID) bool {
	return id != Empty && !s.Has(id)
}
