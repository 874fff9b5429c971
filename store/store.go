// Package store provides an immutable in-memory RDF triple store with
// wildcard pattern queries.
//
// A Store is built once from one or more serialized ontology files and is
// never mutated afterwards. Graph labels of N-Quads and JSON-LD named graphs
// are dropped: the store holds a single default graph, and exact duplicate
// triples are kept once.
package store

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"

	"github.com/cayleygraph/quad"
)

// Store is an immutable set of triples indexed by subject, predicate and
// object.
type Store struct {
	quads       []quad.Quad
	seen        map[string]struct{}
	bySubject   map[string][]int
	byPredicate map[string][]int
	byObject    map[string][]int
}

func newStore() *Store {
	return &Store{
		seen:        make(map[string]struct{}),
		bySubject:   make(map[string][]int),
		byPredicate: make(map[string][]int),
		byObject:    make(map[string][]int),
	}
}

// ParseFile reads and parses a single ontology file.
func ParseFile(path string) (*Store, error) {
	return ParseFiles(path)
}

// ParseFiles reads every file fully into memory, detects its format and
// merges all triples into one store.
func ParseFiles(paths ...string) (*Store, error) {
	s := newStore()
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, NewParseError(path, "", err)
		}
		format := DetectFormat(path, content)
		if err := s.load(format.NewReader(bytes.NewReader(content))); err != nil {
			return nil, NewParseError(path, format.Name, err)
		}
	}
	return s, nil
}

// Parse builds a store from a reader. format is a format name such as
// "turtle" or a media type such as "text/turtle".
func Parse(r io.Reader, formatName string) (*Store, error) {
	format, ok := FormatByName(formatName)
	if !ok {
		format, ok = FormatByMIMEType(formatName)
	}
	if !ok {
		return nil, NewParseError("<reader>", formatName, fmt.Errorf("%w: %s", ErrUnknownFormat, formatName))
	}
	s := newStore()
	if err := s.load(format.NewReader(r)); err != nil {
		return nil, NewParseError("<reader>", format.Name, err)
	}
	return s, nil
}

// FromQuads builds a store from already decoded quads.
func FromQuads(quads []quad.Quad) *Store {
	s := newStore()
	for _, q := range quads {
		s.add(q)
	}
	return s
}

// load drains a reader into the store.
func (s *Store) load(r QuadReader) error {
	if closer, ok := r.(io.Closer); ok {
		defer closer.Close()
	}
	for {
		q, err := r.ReadQuad()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if q.Subject == nil || q.Predicate == nil || q.Object == nil {
			return fmt.Errorf("incomplete triple: %v", q)
		}
		s.add(q)
	}
}

func (s *Store) add(q quad.Quad) {
	q.Label = nil
	sk, pk, obk := key(q.Subject), key(q.Predicate), key(q.Object)

	id := sk + " " + pk + " " + obk
	if _, dup := s.seen[id]; dup {
		return
	}
	s.seen[id] = struct{}{}

	idx := len(s.quads)
	s.quads = append(s.quads, q)
	s.bySubject[sk] = append(s.bySubject[sk], idx)
	s.byPredicate[pk] = append(s.byPredicate[pk], idx)
	s.byObject[obk] = append(s.byObject[obk], idx)
}

// key returns the index key of a term; it is the N-Triples form, which is
// distinct for IRIs, blank nodes and each literal flavour.
func key(v quad.Value) string {
	return v.String()
}

// Len returns the number of distinct triples.
func (s *Store) Len() int {
	return len(s.quads)
}

// Query returns the triples matching the pattern; a nil position matches
// any value. The sequence is lazy and may be iterated more than once.
func (s *Store) Query(subject, predicate, object quad.Value) iter.Seq[quad.Quad] {
	candidates, all := s.candidates(subject, predicate, object)
	return func(yield func(quad.Quad) bool) {
		if all {
			for _, q := range s.quads {
				if !yield(q) {
					return
				}
			}
			return
		}
		for _, idx := range candidates {
			q := s.quads[idx]
			if !matches(q, subject, predicate, object) {
				continue
			}
			if !yield(q) {
				return
			}
		}
	}
}

// candidates picks the smallest index among the bound positions.
func (s *Store) candidates(subject, predicate, object quad.Value) ([]int, bool) {
	var best []int
	found := false
	consider := func(index map[string][]int, v quad.Value) {
		if v == nil {
			return
		}
		list := index[key(v)]
		if !found || len(list) < len(best) {
			best = list
			found = true
		}
	}
	consider(s.bySubject, subject)
	consider(s.byPredicate, predicate)
	consider(s.byObject, object)
	return best, !found
}

func matches(q quad.Quad, subject, predicate, object quad.Value) bool {
	if subject != nil && key(q.Subject) != key(subject) {
		return false
	}
	if predicate != nil && key(q.Predicate) != key(predicate) {
		return false
	}
	if object != nil && key(q.Object) != key(object) {
		return false
	}
	return true
}

// Subjects returns the subjects of triples matching (?, predicate, object).
func (s *Store) Subjects(predicate, object quad.Value) []quad.Value {
	var out []quad.Value
	for q := range s.Query(nil, predicate, object) {
		out = append(out, q.Subject)
	}
	return out
}

// Objects returns the objects of triples matching (subject, predicate, ?).
func (s *Store) Objects(subject, predicate quad.Value) []quad.Value {
	var out []quad.Value
	for q := range s.Query(subject, predicate, nil) {
		out = append(out, q.Object)
	}
	return out
}

// Predicates returns the distinct predicates in the store.
func (s *Store) Predicates() []quad.Value {
	out := make([]quad.Value, 0, len(s.byPredicate))
	for _, list := range s.byPredicate {
		out = append(out, s.quads[list[0]].Predicate)
	}
	return out
}

// LiteralText returns the lexical form of a literal value.
func LiteralText(v quad.Value) (string, bool) {
	switch lit := v.(type) {
	case quad.String:
		return string(lit), true
	case quad.LangString:
		return string(lit.Value), true
	case quad.TypedString:
		return string(lit.Value), true
	default:
		return "", false
	}
}
