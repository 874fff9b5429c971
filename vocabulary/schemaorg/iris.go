package schemaorg

import (
	"strings"

	"github.com/cayleygraph/quad"
	"github.com/cayleygraph/quad/voc/rdf"
	"github.com/cayleygraph/quad/voc/rdfs"
)

// Namespace is the IRI prefix used by the schema.org N-Triples releases.
const Namespace = "http://schema.org/"

// CanonicalNamespace is the IRI prefix written to enum value annotations.
const CanonicalNamespace = "https://schema.org/"

// Local names of schema.org terms the compiler depends on.
const (
	// DomainIncludes relates a property to a class it may appear on.
	DomainIncludes = "domainIncludes"

	// RangeIncludes relates a property to a type its values may take.
	RangeIncludes = "rangeIncludes"

	// Enumeration is the sentinel class every enumeration descends from.
	Enumeration = "Enumeration"
)

// RDF and RDFS predicates and classes, expanded to full IRIs.
var (
	RDFType        = quad.IRI(rdf.Type).Full()
	RDFProperty    = quad.IRI(rdf.Property).Full()
	RDFSClass      = quad.IRI(rdfs.Class).Full()
	RDFSSubClassOf = quad.IRI(rdfs.SubClassOf).Full()
	RDFSComment    = quad.IRI(rdfs.Comment).Full()
)

// Vocabulary converts between bare schema.org names and IRIs in one namespace.
type Vocabulary struct {
	namespace string
}

// New creates a Vocabulary for the given namespace. An empty namespace
// selects the default http://schema.org/ prefix.
func New(namespace string) Vocabulary {
	if namespace == "" {
		namespace = Namespace
	}
	return Vocabulary{namespace: namespace}
}

// Namespace returns the IRI prefix of the vocabulary.
func (v Vocabulary) Namespace() string {
	return v.namespace
}

// IRI returns the full IRI of a local name.
func (v Vocabulary) IRI(name string) quad.IRI {
	return quad.IRI(v.namespace + name)
}

// Strip returns the local name of an IRI. IRIs outside the namespace fall
// back to their last path segment, so "http://www.w3.org/2000/01/rdf-schema#Class"
// becomes "rdf-schema#Class".
func (v Vocabulary) Strip(iri quad.IRI) string {
	s := string(iri)
	if strings.HasPrefix(s, v.namespace) {
		return s[len(v.namespace):]
	}
	if i := strings.LastIndexByte(s, '/'); i >= 0 {
		return s[i+1:]
	}
	return s
}

// StripValue is Strip for arbitrary quad values; non-IRI values yield "".
func (v Vocabulary) StripValue(val quad.Value) string {
	iri, ok := val.(quad.IRI)
	if !ok {
		return ""
	}
	return v.Strip(iri)
}

// DomainIncludes returns the domainIncludes predicate IRI.
func (v Vocabulary) DomainIncludes() quad.IRI { return v.IRI(DomainIncludes) }

// RangeIncludes returns the rangeIncludes predicate IRI.
func (v Vocabulary) RangeIncludes() quad.IRI { return v.IRI(RangeIncludes) }

// NamespaceOf returns the namespace of a schema.org predicate IRI such as
// "https://schema.org/rangeIncludes", or "" when the IRI is not one.
func NamespaceOf(iri quad.IRI) string {
	s := string(iri)
	for _, local := range []string{DomainIncludes, RangeIncludes} {
		if strings.HasSuffix(s, "/"+local) {
			return strings.TrimSuffix(s, local)
		}
	}
	return ""
}
