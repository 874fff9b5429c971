package schemaorg

// Scalar primitive names.
const (
	Text    = "Text"
	Number  = "Number"
	Boolean = "Boolean"
	Integer = "Integer"
	Float   = "Float"
	URL     = "URL"
)

// scalarTypes maps schema.org scalar primitives to proto3 scalar types.
var scalarTypes = map[string]string{
	Text:    "string",
	Number:  "double",
	Boolean: "bool",
	Integer: "int64",
	Float:   "double",
	URL:     "string",
}

// datatypes are emitted in the schema preamble and skipped in the class pass.
var datatypes = map[string]bool{
	"Date":     true,
	"DateTime": true,
	"Time":     true,
	"DataType": true,
	"Duration": true,
	"Distance": true,
	"Energy":   true,
	"Mass":     true,
}

// ScalarType returns the proto3 scalar for a schema.org primitive.
func ScalarType(name string) (string, bool) {
	t, ok := scalarTypes[name]
	return t, ok
}

// IsScalar reports whether name is a schema.org scalar primitive.
func IsScalar(name string) bool {
	_, ok := scalarTypes[name]
	return ok
}

// IsDatatype reports whether name is a schema.org datatype with a fixed
// preamble message.
func IsDatatype(name string) bool {
	return datatypes[name]
}

// Scalars returns the scalar primitive names.
func Scalars() []string {
	return []string{Boolean, Float, Integer, Number, Text, URL}
}
