package descriptor

import (
	"fmt"
	"strings"

	"github.com/c360studio/semproto/resolver"
)

// protoWriter accumulates IDL text with tab indentation.
type protoWriter struct {
	sb     strings.Builder
	indent int
}

func (w *protoWriter) line(format string, args ...any) {
	w.sb.WriteString(strings.Repeat("\t", w.indent))
	fmt.Fprintf(&w.sb, format, args...)
	w.sb.WriteByte('\n')
}

func (w *protoWriter) blank() {
	w.sb.WriteByte('\n')
}

func (w *protoWriter) open(format string, args ...any) {
	w.line(format+" {", args...)
	w.indent++
}

func (w *protoWriter) close() {
	w.indent--
	w.line("}")
}

// comment writes text as line comments. Empty text writes nothing.
func (w *protoWriter) comment(text string) {
	text = strings.TrimRight(text, "\n")
	if strings.TrimSpace(text) == "" {
		return
	}
	for _, l := range strings.Split(text, "\n") {
		l = strings.TrimRight(l, " \t")
		if l == "" {
			w.line("//")
			continue
		}
		w.line("// %s", l)
	}
}

// fields writes one repeated field per property, grouped by owner. Groups
// with no properties are omitted. When ownOpen is set the caller has
// already written the own group's header.
func (w *protoWriter) fields(class string, props []resolver.PropertyOwnership, numbers *FieldNumbers, ownOpen bool) {
	for i, g := range GroupProperties(class, props) {
		if len(g.Properties) == 0 {
			continue
		}
		if i > 0 || !ownOpen {
			w.blank()
			w.line("// Properties from %s.", g.Owner)
		}
		for _, name := range g.Properties {
			w.line("repeated %s %s = %d [json_name = %q];",
				PropertyMessageName(name), SnakeCase(name), numbers.Next(), name)
		}
	}
}

func (w *protoWriter) String() string {
	return w.sb.String()
}
