// Package descriptor renders proto3 IDL for single vocabulary entities.
//
// Three builders cover the entity kinds of a vocabulary:
//
//   - Class renders a message with one repeated field per flattened
//     property, grouped by declaring class.
//   - Property renders a message wrapping a oneof over the property's
//     resolved range types.
//   - Enum renders the two-message enumeration idiom: an inner <Name>Class
//     message holding the constant enum and the properties, and an outer
//     <Name> wrapper whose oneof accepts either a constant or a full object.
//
// Builders are pure: they take resolved names and produce text. Ordering
// and numbering are fully determined by the inputs, so identical inputs
// always render identical output.
package descriptor
