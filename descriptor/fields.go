package descriptor

import (
	"sort"

	"github.com/c360studio/semproto/resolver"
)

// Field numbers in [ReservedStart, ReservedEnd) are reserved by protobuf
// for its own implementation and must not be assigned.
const (
	ReservedStart = 19000
	ReservedEnd   = 20000
)

// FieldNumbers hands out sequential proto field numbers, skipping the
// reserved range.
type FieldNumbers struct {
	next int
}

// NewFieldNumbers returns an allocator whose first number is start.
func NewFieldNumbers(start int) *FieldNumbers {
	return &FieldNumbers{next: start}
}

// Next returns the next usable field number.
func (f *FieldNumbers) Next() int {
	if f.next >= ReservedStart && f.next < ReservedEnd {
		f.next = ReservedEnd
	}
	n := f.next
	f.next++
	return n
}

// Group is a run of properties that share a declaring class.
type Group struct {
	Owner      string
	Properties []string
}

// GroupProperties splits the flattened properties of class into groups:
// the class's own properties first, then one group per ancestor owner in
// owner order. Properties are sorted within each group. The own group is
// always first and may be empty.
func GroupProperties(class string, props []resolver.PropertyOwnership) []Group {
	var own []string
	inherited := make(map[string][]string)
	for _, p := range props {
		if p.Owner == class {
			own = append(own, p.Name)
			continue
		}
		inherited[p.Owner] = append(inherited[p.Owner], p.Name)
	}

	owners := make([]string, 0, len(inherited))
	for owner := range inherited {
		owners = append(owners, owner)
	}
	sort.Strings(owners)

	sort.Strings(own)
	groups := make([]Group, 0, len(owners)+1)
	groups = append(groups, Group{Owner: class, Properties: own})
	for _, owner := range owners {
		names := inherited[owner]
		sort.Strings(names)
		groups = append(groups, Group{Owner: owner, Properties: names})
	}
	return groups
}

// FieldOrder flattens GroupProperties into the ordered field name list
// shared by the IDL and the JSON descriptor.
func FieldOrder(class string, props []resolver.PropertyOwnership) []string {
	var names []string
	for _, g := range GroupProperties(class, props) {
		names = append(names, g.Properties...)
	}
	return names
}
