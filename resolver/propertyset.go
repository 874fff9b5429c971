package resolver

import "sort"

// PropertyOwnership records which class originally declared a property.
// Sets of ownerships are keyed by Name alone.
type PropertyOwnership struct {
	Name  string
	Owner string
}

// PropertySet is an insertion-ordered set of PropertyOwnership keyed by
// property name. When the same property is added twice, the first owner is
// kept.
type PropertySet struct {
	items []PropertyOwnership
	index map[string]int
}

// NewPropertySet creates a set holding the given ownerships.
func NewPropertySet(items ...PropertyOwnership) *PropertySet {
	s := &PropertySet{index: make(map[string]int)}
	for _, p := range items {
		s.Add(p)
	}
	return s
}

// Add inserts p unless a property with the same name is already present.
// It reports whether the set changed.
func (s *PropertySet) Add(p PropertyOwnership) bool {
	if _, ok := s.index[p.Name]; ok {
		return false
	}
	s.index[p.Name] = len(s.items)
	s.items = append(s.items, p)
	return true
}

// Union adds every member of other, in other's insertion order.
func (s *PropertySet) Union(other *PropertySet) {
	if other == nil {
		return
	}
	for _, p := range other.items {
		s.Add(p)
	}
}

// Get returns the ownership recorded for a property name.
func (s *PropertySet) Get(name string) (PropertyOwnership, bool) {
	i, ok := s.index[name]
	if !ok {
		return PropertyOwnership{}, false
	}
	return s.items[i], true
}

// Len returns the number of properties.
func (s *PropertySet) Len() int {
	return len(s.items)
}

// All returns a copy of the members in insertion order.
func (s *PropertySet) All() []PropertyOwnership {
	out := make([]PropertyOwnership, len(s.items))
	copy(out, s.items)
	return out
}

// Names returns the property names, sorted.
func (s *PropertySet) Names() []string {
	names := make([]string, 0, len(s.items))
	for _, p := range s.items {
		names = append(names, p.Name)
	}
	sort.Strings(names)
	return names
}

// Clone returns an independent copy of the set. A nil set clones to an
// empty one.
func (s *PropertySet) Clone() *PropertySet {
	if s == nil {
		return NewPropertySet()
	}
	return NewPropertySet(s.items...)
}

// NameSet is a set of entity names.
type NameSet map[string]struct{}

// NewNameSet creates a set holding names.
func NewNameSet(names ...string) NameSet {
	s := make(NameSet, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

// Add inserts name.
func (s NameSet) Add(name string) {
	s[name] = struct{}{}
}

// AddAll inserts every member of other.
func (s NameSet) AddAll(other NameSet) {
	for n := range other {
		s[n] = struct{}{}
	}
}

// Has reports whether name is a member.
func (s NameSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Sorted returns the members in lexicographic order.
func (s NameSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for n := range s {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
