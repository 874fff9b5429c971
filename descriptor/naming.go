package descriptor

import (
	"regexp"
	"strings"

	"github.com/c360studio/semproto/vocabulary/schemaorg"
)

var (
	capitalizedWord = regexp.MustCompile(`(.)([A-Z][a-z]+)`)
	lowerToUpper    = regexp.MustCompile(`([a-z0-9])([A-Z])`)
)

// SnakeCase converts a camel-case vocabulary name to snake_case.
// Runs of capitals stay together: "URL" → "url", "DolorQuisque" →
// "dolor_quisque", "HTTPServer" → "http_server".
func SnakeCase(name string) string {
	s := capitalizedWord.ReplaceAllString(name, "${1}_${2}")
	s = lowerToUpper.ReplaceAllString(s, "${1}_${2}")
	return strings.ToLower(s)
}

// PropertyMessageName returns the message name wrapping a property:
// the name with its first letter upper-cased and "Property" appended.
func PropertyMessageName(property string) string {
	if property == "" {
		return "Property"
	}
	return strings.ToUpper(property[:1]) + property[1:] + "Property"
}

// EnumValueName returns the proto constant name of an enumeration member.
func EnumValueName(member string) string {
	return strings.ToUpper(SnakeCase(member))
}

// EnumClassName returns the name of the inner message of an enumeration.
func EnumClassName(enum string) string {
	return enum + "Class"
}

// TypeName maps a range type to the proto type of a oneof variant:
// scalar primitives to their proto3 scalar, defined classes to themselves,
// anything else to string.
func TypeName(rangeType string, classes map[string]bool) string {
	if scalar, ok := schemaorg.ScalarType(rangeType); ok {
		return scalar
	}
	if classes[rangeType] {
		return rangeType
	}
	return "string"
}
