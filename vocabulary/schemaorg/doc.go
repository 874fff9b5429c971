// Package schemaorg provides the schema.org vocabulary terms the schema
// compiler reads from an ontology graph.
//
// # Namespaces
//
// schema.org releases have been published under both http://schema.org/ and
// https://schema.org/. The input namespace is configurable (and detected from
// the graph when left empty); the canonical namespace is the one written into
// generated enum value annotations.
//
// # Term Tables
//
// Scalar primitives (Text, Number, Boolean, Integer, Float, URL) map directly
// to proto3 scalars. Datatypes (Date, DateTime, Time, Duration and the
// quantitative types) are emitted once as fixed messages in the schema
// preamble and never as regular classes.
package schemaorg
