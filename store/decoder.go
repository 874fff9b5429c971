package store

import (
	"io"
	"strings"

	"github.com/cayleygraph/quad"
	"github.com/knakk/rdf"
)

// tripleDecoderReader adapts a knakk/rdf triple decoder to QuadReader so
// Turtle and RDF/XML share the ingestion path of the quad readers.
type tripleDecoderReader struct {
	dec rdf.TripleDecoder
}

func newTripleDecoderReader(r io.Reader, format rdf.Format) *tripleDecoderReader {
	return &tripleDecoderReader{dec: rdf.NewTripleDecoder(r, format)}
}

// ReadQuad returns the next decoded triple as a quad without a label.
func (t *tripleDecoderReader) ReadQuad() (quad.Quad, error) {
	tr, err := t.dec.Decode()
	if err != nil {
		return quad.Quad{}, err
	}
	return quad.Quad{
		Subject:   termValue(tr.Subj),
		Predicate: termValue(tr.Pred),
		Object:    termValue(tr.Obj),
	}, nil
}

// termValue converts a knakk/rdf term into the equivalent quad value.
// Typed literals keep only their lexical form.
func termValue(term rdf.Term) quad.Value {
	switch v := term.(type) {
	case rdf.IRI:
		return quad.IRI(v.String())
	case rdf.Blank:
		return quad.BNode(strings.TrimPrefix(v.String(), "_:"))
	case rdf.Literal:
		if lang := v.Lang(); lang != "" {
			return quad.LangString{Value: quad.String(v.String()), Lang: lang}
		}
		return quad.String(v.String())
	default:
		return quad.String(term.String())
	}
}
