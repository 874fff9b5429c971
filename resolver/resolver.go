// Package resolver flattens a schema.org-style vocabulary graph.
//
// The vocabulary has multiple inheritance: a class may declare any number of
// rdfs:subClassOf parents. Resolve computes, once, everything the schema
// emitters need so that no generated message depends on inheritance:
//
//   - ClassToProperties: each class's own properties plus every ancestor's,
//     keyed by property name (first declaring owner wins).
//   - PropertyToRange: each property's declared range types widened with
//     every descendant of a declared class, plus the Number and Text scalar
//     widenings.
//   - Enumerations: classes descending from the Enumeration sentinel, plus a
//     configured patch list.
package resolver

import (
	"errors"

	"github.com/cayleygraph/quad"

	"github.com/c360studio/semproto/store"
	"github.com/c360studio/semproto/vocabulary/schemaorg"
)

// ErrNilStore is returned when Resolve is called without a triple store.
var ErrNilStore = errors.New("resolver: nil store")

// Patch is an externally supplied correction table for vocabulary entries
// that do not declare the relationships the compiler needs.
type Patch struct {
	// Enumerations are class names treated as enumerations regardless of
	// their declared ancestry.
	Enumerations []string

	// Subclasses adds parent → child edges used only when widening property
	// ranges.
	Subclasses map[string][]string
}

// Mappings is the resolved form of a vocabulary.
type Mappings struct {
	// Classes are the names of every declared class.
	Classes NameSet

	// ClassToProperties maps a class to its flattened property set.
	ClassToProperties map[string]*PropertySet

	// PropertyToRange maps a property to the type names it accepts.
	PropertyToRange map[string]NameSet

	// Enumerations are the classes emitted as enumerations.
	Enumerations NameSet

	// Parents maps a class to its direct parents.
	Parents map[string]NameSet

	// Children is the parent → children adjacency of the inheritance DAG.
	Children map[string]NameSet

	// Descendants maps a node to its transitive descendants.
	Descendants map[string]NameSet

	// Order is the topological order used to flatten properties.
	Order []string
}

// Resolve builds the mappings for the vocabulary held in st. Missing
// relations (a property without a domain or range, a class without
// parents) yield empty sets.
func Resolve(st *store.Store, vocab schemaorg.Vocabulary, patch Patch) (*Mappings, error) {
	if st == nil {
		return nil, ErrNilStore
	}

	m := &Mappings{
		Classes:           NameSet{},
		ClassToProperties: make(map[string]*PropertySet),
		PropertyToRange:   make(map[string]NameSet),
		Enumerations:      NameSet{},
		Parents:           make(map[string]NameSet),
		Children:          make(map[string]NameSet),
	}

	classIRIs := iris(st.Subjects(schemaorg.RDFType, schemaorg.RDFSClass))

	m.seedClasses(st, vocab, classIRIs)
	m.buildHierarchy(st, vocab, classIRIs)
	m.Order = TopologicalOrder(m.Children)
	m.flattenProperties()
	m.Descendants = DescendantClosure(m.Children)
	m.findEnumerations(patch)
	m.applySubclassPatch(patch)
	m.resolveRanges(st, vocab)

	return m, nil
}

// seedClasses records each class with the properties whose domain includes
// it.
func (m *Mappings) seedClasses(st *store.Store, vocab schemaorg.Vocabulary, classIRIs []quad.IRI) {
	for _, classIRI := range classIRIs {
		name := vocab.Strip(classIRI)
		m.Classes.Add(name)

		props, ok := m.ClassToProperties[name]
		if !ok {
			props = NewPropertySet()
			m.ClassToProperties[name] = props
		}
		for _, prop := range iris(st.Subjects(vocab.DomainIncludes(), classIRI)) {
			props.Add(PropertyOwnership{Name: vocab.Strip(prop), Owner: name})
		}
	}
}

// buildHierarchy reverses rdfs:subClassOf into a parent → children
// adjacency. Parents that are not declared classes still become nodes.
func (m *Mappings) buildHierarchy(st *store.Store, vocab schemaorg.Vocabulary, classIRIs []quad.IRI) {
	for _, classIRI := range classIRIs {
		name := vocab.Strip(classIRI)
		m.node(name)
		for _, parentIRI := range iris(st.Objects(classIRI, schemaorg.RDFSSubClassOf)) {
			parent := vocab.Strip(parentIRI)
			m.node(parent)
			m.Children[parent].Add(name)

			if m.Parents[name] == nil {
				m.Parents[name] = NameSet{}
			}
			m.Parents[name].Add(parent)
		}
	}
}

func (m *Mappings) node(name string) {
	if _, ok := m.Children[name]; !ok {
		m.Children[name] = NameSet{}
	}
}

// flattenProperties unions each parent's properties into its children.
// Classes are processed in topological order, so every parent entry is
// already complete when a child reads it.
func (m *Mappings) flattenProperties() {
	for _, class := range m.Order {
		props, ok := m.ClassToProperties[class]
		if !ok {
			continue
		}
		for _, parent := range m.Parents[class].Sorted() {
			props.Union(m.ClassToProperties[parent])
		}
	}
}

// findEnumerations collects the descendants of the Enumeration sentinel and
// the patched names. A patched name must be a declared class; it takes
// Enumeration's property set in place of its own.
func (m *Mappings) findEnumerations(patch Patch) {
	m.Enumerations.AddAll(m.Descendants[schemaorg.Enumeration])

	for _, name := range patch.Enumerations {
		if !m.Classes.Has(name) {
			continue
		}
		m.Enumerations.Add(name)
		m.ClassToProperties[name] = m.ClassToProperties[schemaorg.Enumeration].Clone()
	}
}

// applySubclassPatch adds patched children to the descendant sets used for
// range widening. Both ends must be declared classes. Property inheritance
// is not affected.
func (m *Mappings) applySubclassPatch(patch Patch) {
	for parent, kids := range patch.Subclasses {
		if !m.Classes.Has(parent) {
			continue
		}
		for _, kid := range kids {
			if !m.Classes.Has(kid) {
				continue
			}
			desc, ok := m.Descendants[parent]
			if !ok {
				desc = NameSet{}
				m.Descendants[parent] = desc
			}
			desc.Add(kid)
		}
	}
}

// resolveRanges widens each property's declared range with descendants and
// the scalar special cases. Properties referenced only through
// domainIncludes get an empty range so every class field has a message.
func (m *Mappings) resolveRanges(st *store.Store, vocab schemaorg.Vocabulary) {
	for _, propIRI := range iris(st.Subjects(schemaorg.RDFType, schemaorg.RDFProperty)) {
		name := vocab.Strip(propIRI)
		ranges, ok := m.PropertyToRange[name]
		if !ok {
			ranges = NameSet{}
			m.PropertyToRange[name] = ranges
		}

		for _, rangeIRI := range iris(st.Objects(propIRI, vocab.RangeIncludes())) {
			rangeName := vocab.Strip(rangeIRI)
			ranges.Add(rangeName)
			ranges.AddAll(m.Descendants[rangeName])

			switch rangeName {
			case schemaorg.Number:
				ranges.Add(schemaorg.Integer)
				ranges.Add(schemaorg.Float)
			case schemaorg.Text:
				ranges.Add(schemaorg.URL)
			}
		}
	}

	for _, props := range m.ClassToProperties {
		for _, p := range props.All() {
			if _, ok := m.PropertyToRange[p.Name]; !ok {
				m.PropertyToRange[p.Name] = NameSet{}
			}
		}
	}
}

// Ancestors returns the transitive parents of a class.
func (m *Mappings) Ancestors(class string) NameSet {
	out := NameSet{}
	stack := m.Parents[class].Sorted()
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if out.Has(n) {
			continue
		}
		out.Add(n)
		stack = append(stack, m.Parents[n].Sorted()...)
	}
	return out
}

// DefinedClasses returns the declared class names, sorted.
func (m *Mappings) DefinedClasses() []string {
	return m.Classes.Sorted()
}

// Properties returns every property name with a resolved range, sorted.
func (m *Mappings) Properties() []string {
	names := make(NameSet, len(m.PropertyToRange))
	for name := range m.PropertyToRange {
		names.Add(name)
	}
	return names.Sorted()
}

// iris keeps the IRI values of vals, dropping blank nodes and literals.
func iris(vals []quad.Value) []quad.IRI {
	out := make([]quad.IRI, 0, len(vals))
	for _, v := range vals {
		if iri, ok := v.(quad.IRI); ok {
			out = append(out, iri)
		}
	}
	return out
}
