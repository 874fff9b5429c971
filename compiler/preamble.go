package compiler

import (
	"fmt"
	"strings"
)

// Type tags attached to messages through the (type) option. The
// descriptor-driven serializer dispatches on these.
const (
	TypeProperty    = "Property"
	TypeEnumWrapper = "EnumWrapper"
)

type datatypeField struct {
	Type string
	Name string
}

// datatype is a fixed message emitted before the vocabulary's classes.
type datatype struct {
	Name   string
	Tag    string
	Fields []datatypeField
}

var datatypes = []datatype{
	{Name: "DateTime", Tag: "DatatypeDateTime", Fields: []datatypeField{
		{"Date", "date"}, {"Time", "time"},
	}},
	{Name: "Date", Tag: "DatatypeDate", Fields: []datatypeField{
		{"int32", "year"}, {"int32", "month"}, {"int32", "day"}, {"Timezone", "timezone"},
	}},
	{Name: "Time", Tag: "DatatypeTime", Fields: []datatypeField{
		{"int32", "hours"}, {"int32", "minutes"}, {"int32", "seconds"}, {"Timezone", "timezone"},
	}},
	{Name: "Timezone", Tag: "DatatypeTimezone", Fields: []datatypeField{
		{"string", "iana_id"},
	}},
	{Name: "Duration", Tag: "DatatypeDuration", Fields: []datatypeField{
		{"int64", "seconds"},
	}},
	{Name: "Distance", Tag: "DatatypeQuantitative", Fields: quantitative()},
	{Name: "Energy", Tag: "DatatypeQuantitative", Fields: quantitative()},
	{Name: "Mass", Tag: "DatatypeQuantitative", Fields: quantitative()},
}

func quantitative() []datatypeField {
	return []datatypeField{{"double", "value"}, {"string", "unit"}}
}

// hasDatatypeMessage reports whether name is emitted in the preamble.
func hasDatatypeMessage(name string) bool {
	for _, d := range datatypes {
		if d.Name == name {
			return true
		}
	}
	return false
}

func writeHeader(sb *strings.Builder, packageName string) {
	sb.WriteString("syntax = \"proto3\";\n")
	fmt.Fprintf(sb, "package %s;\n\n", packageName)
	sb.WriteString("import \"google/protobuf/descriptor.proto\";\n\n")
}

func writeOptions(sb *strings.Builder) {
	sb.WriteString("extend google.protobuf.MessageOptions {\n")
	sb.WriteString("\toptional string type = 50001;\n")
	sb.WriteString("}\n\n")
	sb.WriteString("extend google.protobuf.EnumValueOptions {\n")
	sb.WriteString("\toptional string schemaorg_value = 50002;\n")
	sb.WriteString("}\n\n")
}

func writeDatatypes(sb *strings.Builder) {
	for _, d := range datatypes {
		fmt.Fprintf(sb, "message %s {\n", d.Name)
		fmt.Fprintf(sb, "\toption (type) = %q;\n", d.Tag)
		for i, f := range d.Fields {
			fmt.Fprintf(sb, "\t%s %s = %d;\n", f.Type, f.Name, i+1)
		}
		sb.WriteString("}\n\n")
	}
}
