package descriptor

import "github.com/c360studio/semproto/resolver"

// Class describes one vocabulary class.
type Class struct {
	// Name is the class's local name and its message name.
	Name string

	// Properties are the flattened own and inherited properties.
	Properties []resolver.PropertyOwnership

	// Comment is plain-text documentation. Lines are separated by "\n".
	Comment string
}

// Proto renders the class as a proto3 message. Fields are numbered from 1:
// own properties first, then inherited groups in owner order.
func (c Class) Proto() string {
	var w protoWriter
	w.comment(c.Comment)
	w.open("message %s", c.Name)
	w.line("option (type) = %q;", c.Name)
	w.fields(c.Name, c.Properties, NewFieldNumbers(1), false)
	w.close()
	return w.String()
}

// Fields returns the JSON field names of the class, in field-number order.
func (c Class) Fields() []string {
	return FieldOrder(c.Name, c.Properties)
}
