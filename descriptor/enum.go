package descriptor

import (
	"sort"

	"github.com/c360studio/semproto/resolver"
	"github.com/c360studio/semproto/vocabulary/schemaorg"
)

// UnknownValue is the annotation of the zero constant of every enumeration.
const UnknownValue = "Unknown"

const unknownConstant = "UNKNOWN"

// Enum describes a vocabulary enumeration and its named members.
type Enum struct {
	Name       string
	Properties []resolver.PropertyOwnership

	// Values are the local names of the enumeration's members.
	Values []string

	Comment string

	// ValueNamespace prefixes member names in the schemaorg_value
	// annotation. Empty selects the canonical https://schema.org/ prefix.
	ValueNamespace string
}

// Proto renders the inner <Name>Class message and the outer <Name>
// wrapper. Constants are numbered from 1 in member order after the UNKNOWN
// sentinel; the inner message's fields start with id = 1.
func (e Enum) Proto() string {
	inner := EnumClassName(e.Name)

	var w protoWriter
	w.comment(e.Comment)
	w.open("message %s", inner)
	w.line("option (type) = %q;", e.Name)

	w.open("enum Id")
	w.line("%s = 0 [(schemaorg_value)=%q];", unknownConstant, UnknownValue)
	for i, v := range e.SortedValues() {
		w.line("%s = %d [(schemaorg_value) = %q];", EnumValueName(v), i+1, e.ValueIRI(v))
	}
	w.close()

	numbers := NewFieldNumbers(1)
	w.blank()
	w.line("// Properties from %s.", e.Name)
	w.line("string id = %d [json_name = \"@id\"];", numbers.Next())
	w.fields(e.Name, e.Properties, numbers, true)
	w.close()
	w.blank()

	w.open("message %s", e.Name)
	w.line("option (type) = \"EnumWrapper\";")
	w.open("oneof values")
	w.line("%s.Id id = 1;", inner)
	w.line("%s %s = 2;", inner, SnakeCase(e.Name))
	w.close()
	w.close()
	return w.String()
}

// SortedValues returns the member names in constant order. Members whose
// constant would collide with the UNKNOWN sentinel are dropped.
func (e Enum) SortedValues() []string {
	out := make([]string, 0, len(e.Values))
	for _, v := range e.Values {
		if EnumValueName(v) == unknownConstant {
			continue
		}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// ValueIRI returns the annotated IRI of a member.
func (e Enum) ValueIRI(member string) string {
	ns := e.ValueNamespace
	if ns == "" {
		ns = schemaorg.CanonicalNamespace
	}
	return ns + member
}

// JSONValues returns the values list of the enumeration's JSON descriptor
// entry, index-aligned with the constant numbers.
func (e Enum) JSONValues() []string {
	values := []string{UnknownValue}
	for _, v := range e.SortedValues() {
		values = append(values, e.ValueIRI(v))
	}
	return values
}

// Fields returns the JSON field names of the inner message.
func (e Enum) Fields() []string {
	return append([]string{"@id"}, FieldOrder(e.Name, e.Properties)...)
}
