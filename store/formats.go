package store

import (
	"bytes"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cayleygraph/quad"
	"github.com/cayleygraph/quad/jsonld"
	"github.com/cayleygraph/quad/nquads"
	"github.com/knakk/rdf"
)

// QuadReader is the minimal reader contract shared by every format.
// ReadQuad returns io.EOF once the input is exhausted.
type QuadReader interface {
	ReadQuad() (quad.Quad, error)
}

// Format describes an RDF serialization the store can ingest.
type Format struct {
	// Name is the format identifier.
	Name string

	// MIMETypes are the media types that select this format.
	MIMETypes []string

	// Extensions are the file extensions (with dot) that select this format.
	Extensions []string

	// NewReader creates a reader over the serialized content.
	NewReader func(r io.Reader) QuadReader
}

// Format names.
const (
	FormatNTriples = "ntriples"
	FormatTurtle   = "turtle"
	FormatJSONLD   = "jsonld"
	FormatRDFXML   = "rdfxml"
)

// formats holds the supported formats keyed by name.
var formats = map[string]Format{
	FormatNTriples: {
		Name:       FormatNTriples,
		MIMETypes:  []string{"application/n-triples", "application/n-quads"},
		Extensions: []string{".nt", ".nq"},
		NewReader: func(r io.Reader) QuadReader {
			return nquads.NewReader(r, false)
		},
	},
	FormatJSONLD: {
		Name:       FormatJSONLD,
		MIMETypes:  []string{"application/ld+json"},
		Extensions: []string{".jsonld"},
		NewReader: func(r io.Reader) QuadReader {
			return jsonld.NewReader(r)
		},
	},
	FormatTurtle: {
		Name:       FormatTurtle,
		MIMETypes:  []string{"text/turtle"},
		Extensions: []string{".ttl"},
		NewReader: func(r io.Reader) QuadReader {
			return newTripleDecoderReader(r, rdf.Turtle)
		},
	},
	FormatRDFXML: {
		Name:       FormatRDFXML,
		MIMETypes:  []string{"application/rdf+xml"},
		Extensions: []string{".rdf", ".owl", ".xml"},
		NewReader: func(r io.Reader) QuadReader {
			return newTripleDecoderReader(r, rdf.RDFXML)
		},
	},
}

// FormatByName returns the format registered under name.
func FormatByName(name string) (Format, bool) {
	f, ok := formats[strings.ToLower(name)]
	return f, ok
}

// FormatByExtension returns the format for a file name's extension.
func FormatByExtension(filename string) (Format, bool) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return Format{}, false
	}
	for _, f := range formats {
		for _, e := range f.Extensions {
			if e == ext {
				return f, true
			}
		}
	}
	return Format{}, false
}

// FormatByMIMEType returns the format for a media type.
func FormatByMIMEType(mimeType string) (Format, bool) {
	mimeType = strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
	for _, f := range formats {
		for _, m := range f.MIMETypes {
			if m == mimeType {
				return f, true
			}
		}
	}
	return Format{}, false
}

// ListFormats returns the names of all supported formats, sorted.
func ListFormats() []string {
	names := make([]string, 0, len(formats))
	for name := range formats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Sniff guesses the format from the leading bytes of a document.
func Sniff(content []byte) Format {
	head := content
	if len(head) > 4096 {
		head = head[:4096]
	}
	trimmed := bytes.TrimSpace(bytes.TrimPrefix(head, []byte("\xef\xbb\xbf")))

	switch {
	case bytes.HasPrefix(trimmed, []byte("{")), bytes.HasPrefix(trimmed, []byte("[")):
		return formats[FormatJSONLD]
	case bytes.HasPrefix(trimmed, []byte("<?xml")), bytes.Contains(trimmed, []byte("<rdf:RDF")):
		return formats[FormatRDFXML]
	case bytes.Contains(trimmed, []byte("@prefix")), bytes.Contains(trimmed, []byte("@base")),
		bytes.Contains(trimmed, []byte("PREFIX ")):
		return formats[FormatTurtle]
	default:
		return formats[FormatNTriples]
	}
}

// DetectFormat resolves the format of a file from its extension, falling
// back to sniffing its content.
func DetectFormat(filename string, content []byte) Format {
	if f, ok := FormatByExtension(filename); ok {
		return f
	}
	return Sniff(content)
}
