package descriptor

import "sort"

// Property describes one vocabulary property.
type Property struct {
	// Name is the property's local name.
	Name string

	// Ranges are the resolved range type names.
	Ranges []string

	// Classes are the defined class names. Range types outside this set and
	// not scalar primitives are rendered as string.
	Classes map[string]bool

	Comment string
}

// Proto renders the <Name>Property message. Variants follow the sorted
// range names and are numbered from 1, skipping the reserved range. An
// empty range renders a message with no oneof.
func (p Property) Proto() string {
	var w protoWriter
	w.comment(p.Comment)
	w.open("message %s", PropertyMessageName(p.Name))
	w.line("option (type) = \"Property\";")

	ranges := p.SortedRanges()
	if len(ranges) > 0 {
		numbers := NewFieldNumbers(1)
		w.open("oneof values")
		for _, r := range ranges {
			w.line("%s %s = %d;", TypeName(r, p.Classes), SnakeCase(r), numbers.Next())
		}
		w.close()
	}

	w.close()
	return w.String()
}

// SortedRanges returns a sorted copy of Ranges.
func (p Property) SortedRanges() []string {
	out := append([]string(nil), p.Ranges...)
	sort.Strings(out)
	return out
}
