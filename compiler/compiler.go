// Package compiler turns a linked-data vocabulary into a proto3 schema and
// its JSON descriptor.
//
// A compile runs three phases in order:
//
//	parse    source files → store.Store
//	resolve  store → resolver.Mappings (flattened inheritance, widened ranges)
//	emit     mappings → schema.proto + schema_descriptor.json
//
// Every emitted list is sorted by name, so identical input produces
// byte-identical output regardless of triple order.
package compiler

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/cayleygraph/quad"
	"github.com/google/uuid"

	"github.com/c360studio/semproto/descriptor"
	"github.com/c360studio/semproto/resolver"
	"github.com/c360studio/semproto/store"
	"github.com/c360studio/semproto/vocabulary/schemaorg"
)

// Output file names written into the output directory.
const (
	SchemaFile     = "schema.proto"
	DescriptorFile = "schema_descriptor.json"
)

// Options configure a Compiler.
type Options struct {
	// Namespace is the vocabulary IRI prefix. Empty detects it from the
	// domainIncludes/rangeIncludes predicates in the source.
	Namespace string

	// CanonicalNamespace prefixes enumeration member IRIs in the output.
	// Empty selects https://schema.org/.
	CanonicalNamespace string

	CommentStyle CommentStyle

	// Patch corrects vocabulary entries with missing relationships.
	Patch resolver.Patch

	// Logger defaults to slog.Default().
	Logger *slog.Logger

	// Metrics is optional.
	Metrics *Metrics
}

// Compiler compiles vocabularies. A Compiler is not safe for concurrent
// use; callers run compiles one at a time.
type Compiler struct {
	opts     Options
	logger   *slog.Logger
	comments commentRenderer
	metrics  *Metrics
}

// Result summarizes a completed compile.
type Result struct {
	RunID          string
	Sources        []string
	SchemaPath     string
	DescriptorPath string
	Namespace      string

	Triples      int
	Classes      int
	Enumerations int
	Properties   int

	Duration time.Duration
}

// Output holds the generated files of a compile before they are written.
type Output struct {
	Schema     []byte
	Descriptor []byte

	Classes      int
	Enumerations int
	Properties   int
	Namespace    string
}

// New creates a Compiler.
func New(opts Options) (*Compiler, error) {
	comments, err := newCommentRenderer(opts.CommentStyle)
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Compiler{
		opts:     opts,
		logger:   logger,
		comments: comments,
		metrics:  opts.Metrics,
	}, nil
}

// Compile parses sourcePath, which may be a file or a glob whose matches are
// merged, and writes schema.proto and schema_descriptor.json into outputDir.
// Outputs are replaced only after both are fully written.
func (c *Compiler) Compile(sourcePath, outputDir, packageName string) (*Result, error) {
	start := time.Now()
	runID := uuid.New().String()
	log := c.logger.With("run_id", runID)

	result, err := c.compile(log, sourcePath, outputDir, packageName)
	if err != nil {
		c.count("error")
		log.Error("Compile failed", "source", sourcePath, "error", err)
		return nil, err
	}

	result.RunID = runID
	result.Duration = time.Since(start)
	c.count("success")
	if c.metrics != nil {
		c.metrics.observeResult(result)
	}

	log.Info("Compile complete",
		"classes", result.Classes,
		"enumerations", result.Enumerations,
		"properties", result.Properties,
		"triples", result.Triples,
		"duration", result.Duration)
	return result, nil
}

func (c *Compiler) compile(log *slog.Logger, sourcePath, outputDir, packageName string) (*Result, error) {
	if packageName == "" {
		return nil, fmt.Errorf("package name is required")
	}

	sources, err := ResolveSources(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("resolve sources: %w", err)
	}
	log.Debug("Resolved sources", "pattern", sourcePath, "files", len(sources))

	var st *store.Store
	err = c.phase("parse", func() error {
		var perr error
		st, perr = store.ParseFiles(sources...)
		return perr
	})
	if err != nil {
		return nil, err
	}
	log.Debug("Parsed sources", "triples", st.Len())

	out, err := c.Generate(st, packageName)
	if err != nil {
		return nil, err
	}

	files := []outputFile{
		{name: SchemaFile, data: out.Schema},
		{name: DescriptorFile, data: out.Descriptor},
	}
	if err := c.phase("write", func() error { return writeOutputs(outputDir, files) }); err != nil {
		return nil, err
	}

	return &Result{
		Sources:        sources,
		SchemaPath:     outputPath(outputDir, SchemaFile),
		DescriptorPath: outputPath(outputDir, DescriptorFile),
		Namespace:      out.Namespace,
		Triples:        st.Len(),
		Classes:        out.Classes,
		Enumerations:   out.Enumerations,
		Properties:     out.Properties,
	}, nil
}

// Generate resolves the vocabulary held in st and renders both outputs in
// memory.
func (c *Compiler) Generate(st *store.Store, packageName string) (*Output, error) {
	vocab := schemaorg.New(c.namespace(st))

	var m *resolver.Mappings
	err := c.phase("resolve", func() error {
		var rerr error
		m, rerr = resolver.Resolve(st, vocab, c.opts.Patch)
		return rerr
	})
	if err != nil {
		return nil, fmt.Errorf("resolve vocabulary: %w", err)
	}

	var out *Output
	err = c.phase("emit", func() error {
		var eerr error
		out, eerr = c.emit(st, vocab, m, packageName)
		return eerr
	})
	if err != nil {
		return nil, fmt.Errorf("emit schema: %w", err)
	}
	return out, nil
}

// namespace returns the configured vocabulary namespace or detects it from
// the store's predicates.
func (c *Compiler) namespace(st *store.Store) string {
	if c.opts.Namespace != "" {
		return c.opts.Namespace
	}

	var found []string
	for _, p := range st.Predicates() {
		iri, ok := p.(quad.IRI)
		if !ok {
			continue
		}
		if ns := schemaorg.NamespaceOf(iri); ns != "" {
			found = append(found, ns)
		}
	}
	if len(found) == 0 {
		return schemaorg.Namespace
	}
	sort.Strings(found)
	if found[0] != found[len(found)-1] {
		c.logger.Warn("Multiple vocabulary namespaces in source, using first",
			"namespace", found[0], "other", found[len(found)-1])
	}
	return found[0]
}

// emitter carries the state of one emit phase.
type emitter struct {
	st       *store.Store
	vocab    schemaorg.Vocabulary
	m        *resolver.Mappings
	comments commentRenderer
	canon    string

	// messages are the defined classes that get a message of their own.
	messages map[string]bool
}

func (c *Compiler) emit(st *store.Store, vocab schemaorg.Vocabulary, m *resolver.Mappings, packageName string) (*Output, error) {
	e := &emitter{
		st:       st,
		vocab:    vocab,
		m:        m,
		comments: c.comments,
		canon:    c.opts.CanonicalNamespace,
		messages: make(map[string]bool),
	}

	classes := e.classNames()
	enums := m.Enumerations.Sorted()
	properties := m.Properties()

	for _, name := range classes {
		e.messages[name] = true
	}
	for _, name := range enums {
		e.messages[name] = true
	}
	for name := range m.Classes {
		if hasDatatypeMessage(name) {
			e.messages[name] = true
		}
	}

	var sb strings.Builder
	writeHeader(&sb, packageName)
	writeOptions(&sb)
	writeDatatypes(&sb)

	desc := &Descriptor{Messages: make(map[string]MessageDescriptor)}
	datatypeDescriptors(desc.Messages)

	sb.WriteString("// Definition of classes begin here.\n\n")
	for _, name := range classes {
		cls := descriptor.Class{
			Name:       name,
			Properties: e.properties(name),
			Comment:    e.comment(name),
		}
		sb.WriteString(cls.Proto())
		sb.WriteString("\n")
		desc.Messages[name] = MessageDescriptor{Type: name, Fields: nonNil(cls.Fields())}
	}

	sb.WriteString("// Definition of enumerations begin here.\n\n")
	for _, name := range enums {
		enum := descriptor.Enum{
			Name:           name,
			Properties:     e.properties(name),
			Values:         e.members(name),
			Comment:        e.comment(name),
			ValueNamespace: e.canon,
		}
		sb.WriteString(enum.Proto())
		sb.WriteString("\n")
		desc.Messages[name] = MessageDescriptor{
			Type:   TypeEnumWrapper,
			Fields: []string{"id", descriptor.EnumClassName(name)},
			Values: enum.JSONValues(),
		}
		desc.Messages[descriptor.EnumClassName(name)] = MessageDescriptor{Type: name, Fields: enum.Fields()}
	}

	sb.WriteString("// Definition of properties begin here.\n\n")
	for _, name := range properties {
		prop := descriptor.Property{
			Name:    name,
			Ranges:  e.m.PropertyToRange[name].Sorted(),
			Classes: e.messages,
			Comment: e.comment(name),
		}
		sb.WriteString(prop.Proto())
		sb.WriteString("\n")
		desc.Messages[name] = MessageDescriptor{Type: TypeProperty, Fields: nonNil(prop.SortedRanges())}
	}

	desc.Primitives = e.primitives()

	data, err := desc.Marshal()
	if err != nil {
		return nil, fmt.Errorf("marshal descriptor: %w", err)
	}

	return &Output{
		Schema:       []byte(sb.String()),
		Descriptor:   data,
		Classes:      len(classes),
		Enumerations: len(enums),
		Properties:   len(properties),
		Namespace:    vocab.Namespace(),
	}, nil
}

// classNames returns the defined classes emitted in the class section:
// everything except enumerations, datatypes and scalar primitives.
func (e *emitter) classNames() []string {
	var names []string
	for _, name := range e.m.DefinedClasses() {
		if e.m.Enumerations.Has(name) || schemaorg.IsDatatype(name) || schemaorg.IsScalar(name) {
			continue
		}
		names = append(names, name)
	}
	return names
}

func (e *emitter) properties(class string) []resolver.PropertyOwnership {
	props, ok := e.m.ClassToProperties[class]
	if !ok {
		return nil
	}
	return props.All()
}

// members returns the local names of the instances typed as enum.
func (e *emitter) members(enum string) []string {
	set := resolver.NameSet{}
	for _, v := range e.st.Subjects(schemaorg.RDFType, e.vocab.IRI(enum)) {
		if name := e.vocab.StripValue(v); name != "" {
			set.Add(name)
		}
	}
	return set.Sorted()
}

func (e *emitter) comment(name string) string {
	return entityComment(e.st, e.vocab.IRI(name), e.comments)
}

// primitives lists range types with no class definition, plus the scalar
// primitives.
func (e *emitter) primitives() []string {
	set := resolver.NewNameSet(schemaorg.Scalars()...)
	for _, v := range e.st.Objects(nil, e.vocab.RangeIncludes()) {
		name := e.vocab.StripValue(v)
		if name != "" && !e.m.Classes.Has(name) {
			set.Add(name)
		}
	}
	return set.Sorted()
}

// phase runs fn and records its duration.
func (c *Compiler) phase(name string, fn func() error) error {
	start := time.Now()
	err := fn()
	if c.metrics != nil {
		c.metrics.PhaseDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	}
	return err
}

func (c *Compiler) count(status string) {
	if c.metrics != nil {
		c.metrics.CompilesTotal.WithLabelValues(status).Inc()
	}
}
