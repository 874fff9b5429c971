package compiler

import (
	"bytes"
	"encoding/json"
)

// Descriptor is the JSON companion of the schema. A serializer walks it to
// map proto fields back to vocabulary terms.
type Descriptor struct {
	Messages   map[string]MessageDescriptor `json:"messages"`
	Primitives []string                     `json:"primitives"`
}

// MessageDescriptor describes one generated message.
type MessageDescriptor struct {
	// Type is the message's type tag: a class name, "Property",
	// "EnumWrapper" or a Datatype* tag.
	Type string `json:"@type"`

	// Fields are the vocabulary names behind the message's fields, in field
	// order. For properties they are the range type names.
	Fields []string `json:"fields"`

	// Values are the enumeration member IRIs, index-aligned with the
	// constant numbers. Only set on EnumWrapper entries.
	Values []string `json:"values,omitempty"`
}

// Marshal encodes the descriptor with 4-space indentation and without HTML
// escaping. Map keys are sorted by encoding/json.
func (d *Descriptor) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(d); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func datatypeDescriptors(messages map[string]MessageDescriptor) {
	for _, d := range datatypes {
		fields := make([]string, 0, len(d.Fields))
		for _, f := range d.Fields {
			fields = append(fields, f.Name)
		}
		messages[d.Name] = MessageDescriptor{Type: d.Tag, Fields: fields}
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
